package api

import (
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context key for the per-request id set by RequestLogger.
const ContextRequestIDKey = "requestID"

// apiError carries an explicit HTTP status for the error middleware.
type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return e.message
}

// fail records an error on the context and aborts the handler chain; the
// error middleware turns it into the response.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorMiddleware is the single terminal error stage. Every failure recorded
// via fail() ends here and is written as a plain-text body (clients parse
// error bodies as text, so this must never switch to JSON):
//
//	ValidationError          -> 400, the validation message
//	user/document not found  -> 404
//	apiError                 -> its attached status and message
//	anything else            -> 500 "Internal Server Error"
func ErrorMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var validationErr repository.ValidationError
		var attached apiError
		switch {
		case errors.As(err, &validationErr):
			c.String(http.StatusBadRequest, validationErr.Error())
		case errors.As(err, &attached):
			c.String(attached.status, attached.message)
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
			c.String(http.StatusNotFound, "user not found")
		default:
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(ContextRequestIDKey),
				"path":       c.Request.URL.Path,
			}).WithError(err).Error("request failed")
			c.String(http.StatusInternalServerError, "Internal Server Error")
		}
	}
}

// RequestLogger tags each request with a fresh id and logs method, path,
// status and latency once the request finishes.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set(ContextRequestIDKey, requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
		}).Info("request completed")
	}
}
