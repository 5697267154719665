package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/controllers"
	"github.com/prop101/strataops/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	propertyController *controllers.PropertyController,
	reminderController *controllers.ReminderController,
	actionLogController *controllers.ActionLogController,
	contractorController *controllers.ContractorController,
	userController *controllers.UserController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Property routes, meetings nested under their owning property
	properties := v1.Group("/properties")
	{
		properties.GET("", propertyController.GetAllProperties)
		properties.POST("", propertyController.CreateProperty)
		properties.GET("/:id", propertyController.GetPropertyByID)
		properties.PUT("/:id", propertyController.UpdateProperty)
		properties.POST("/:id/archive", propertyController.ToggleArchive)
		properties.POST("/:id/manager", propertyController.AssignManager)

		properties.POST("/:id/meetings", propertyController.AddMeeting)
		properties.PUT("/:id/meetings/:meetingId", propertyController.UpdateMeeting)
		properties.DELETE("/:id/meetings/:meetingId", propertyController.DeleteMeeting)
	}

	// Reminder feed and its attached action log
	reminders := v1.Group("/reminders")
	{
		reminders.GET("", reminderController.GetReminders)
		reminders.POST("/recompute", reminderController.RecomputeReminders)
		reminders.GET("/:id", reminderController.GetReminderByID)
		reminders.GET("/:id/comments", actionLogController.ListComments)
		reminders.POST("/:id/comments", actionLogController.AddComment)
	}

	// Comment removal addresses the comment directly, not via its reminder
	v1.DELETE("/comments/:commentId", actionLogController.RemoveComment)

	// Contractor directory
	contractors := v1.Group("/contractors")
	{
		contractors.GET("", contractorController.GetAllContractors)
		contractors.POST("", contractorController.CreateContractor)
		contractors.GET("/:id", contractorController.GetContractorByID)
		contractors.PUT("/:id", contractorController.UpdateContractor)
		contractors.DELETE("/:id", contractorController.DeleteContractor)
	}

	// Operator directory (read-only)
	users := v1.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/managers", userController.GetManagers)
		users.GET("/:id", userController.GetUserByID)
	}

	// Health check endpoint
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
