package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the exercise-tracker endpoints on the router.
func SetupRoutes(router *gin.Engine, userService service.UserService) {
	userHandler := NewUserHandler(userService)

	exerciseGroup := router.Group("/api/exercise")
	{
		exerciseGroup.POST("/new-user", userHandler.CreateUser)
		exerciseGroup.GET("/users", userHandler.ListUsers)
		exerciseGroup.POST("/add", userHandler.AddExercise)
		exerciseGroup.GET("/log", userHandler.GetLog)
	}

	// Unmatched routes get the same plain-text treatment as other failures.
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
}
