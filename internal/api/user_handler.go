package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateUserRequest binds the new-user body (form-encoded or JSON).
// Presence of the username is enforced by the persistence layer so that the
// error message comes from a single place.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

// AddExerciseRequest binds the add-exercise body. Duration arrives as text,
// the way an HTML form submits it, and is parsed by the service.
type AddExerciseRequest struct {
	UserID      string `form:"userId" json:"userId"`
	Description string `form:"description" json:"description"`
	Duration    string `form:"duration" json:"duration"`
	Date        string `form:"date" json:"date"`
}

// CreateUserResponse is the DTO returned by the new-user endpoint.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// UserResponse is the DTO for a full user dump, log included.
type UserResponse struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	Log      []domain.Exercise `json:"log"`
}

// AddExerciseResponse echoes the newly added entry plus the owner's identity;
// the full log is deliberately not returned.
type AddExerciseResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// LogResponse renames the identity field to userId, mirroring the request
// parameter. Count follows the pipeline in service.GetUserLog and can exceed
// the length of Log.
type LogResponse struct {
	UserID   string            `json:"userId"`
	Username string            `json:"username"`
	Log      []domain.Exercise `json:"log"`
	Count    int               `json:"count"`
}

// MapUserToResponse converts a domain.User to UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	log := user.Log
	if log == nil {
		log = []domain.Exercise{}
	}
	return UserResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Log:      log,
	}
}

// MapUsersToResponse converts a slice of domain.User to UserResponse DTOs.
func MapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateUser handles POST /api/exercise/new-user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, repository.ValidationError(err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{
		Username: user.Username,
		ID:       user.ID.Hex(),
	})
}

// ListUsers handles GET /api/exercise/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUsersToResponse(users))
}

// AddExercise handles POST /api/exercise/add.
func (h *UserHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, repository.ValidationError(err.Error()))
		return
	}

	user, exercise, err := h.userService.AddExercise(
		c.Request.Context(),
		req.UserID,
		req.Description,
		req.Duration,
		req.Date,
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, AddExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        exercise.Date,
		Duration:    exercise.Duration,
		Description: exercise.Description,
	})
}

// GetLog handles GET /api/exercise/log?userId=...[&from][&to][&limit].
func (h *UserHandler) GetLog(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		// Required parameter; short-circuit before any lookup.
		fail(c, apiError{http.StatusBadRequest, "userId parameter is missing"})
		return
	}

	filter := service.LogFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = &n
		}
	}

	userLog, err := h.userService.GetUserLog(c.Request.Context(), userID, filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, LogResponse{
		UserID:   userLog.UserID,
		Username: userLog.Username,
		Log:      userLog.Log,
		Count:    userLog.Count,
	})
}
