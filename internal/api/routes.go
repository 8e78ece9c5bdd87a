package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"justfit/tracker/internal/identity"
	"justfit/tracker/internal/service"
)

// SetupRoutes wires middleware and the resource handlers onto the engine.
// Every /api route sits behind the identity verifier.
func SetupRoutes(
	router *gin.Engine,
	verifier identity.Verifier,
	activityService service.ActivityService,
	goalService service.GoalService,
	userService service.UserService,
) {
	activityHandler := NewActivityHandler(activityService)
	goalHandler := NewGoalHandler(goalService)
	userHandler := NewUserHandler(userService)

	router.Use(RequestID())

	// Fully open CORS, mirroring what the mobile and web clients expect.
	// Known weakness; tightening it is a client-coordination problem.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	apiGroup.Use(AuthMiddleware(verifier))
	{
		apiGroup.POST("/activity", activityHandler.Create)
		apiGroup.GET("/activity", activityHandler.List)
		apiGroup.PUT("/activity/:id", activityHandler.Update)
		apiGroup.DELETE("/activity/:id", activityHandler.Delete)

		apiGroup.POST("/goal", goalHandler.Create)
		apiGroup.GET("/goal", goalHandler.List)
		apiGroup.PUT("/goal/:id", goalHandler.UpdateStatus)
		apiGroup.DELETE("/goal/:id", goalHandler.Delete)

		apiGroup.GET("/user", userHandler.Get)
		apiGroup.POST("/user", userHandler.Upsert)
	}
}
