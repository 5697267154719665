package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/middleware"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// ReminderController serves the derived reminder feed.
type ReminderController struct {
	reminderService services.ReminderService
	actionLog       services.ActionLogService
}

// NewReminderController creates a new ReminderController
func NewReminderController(reminderService services.ReminderService, actionLog services.ActionLogService) *ReminderController {
	return &ReminderController{
		reminderService: reminderService,
		actionLog:       actionLog,
	}
}

// GetReminders returns the current reminder set with comment badge counts
func (c *ReminderController) GetReminders(ctx *gin.Context) {
	counts, err := c.actionLog.CommentCounts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ReminderListResponse{
			Reminders:     c.reminderService.Reminders(),
			CommentCounts: counts,
		},
		Timestamp: time.Now(),
	})
}

// GetReminderByID returns a single reminder from the current set
func (c *ReminderController) GetReminderByID(ctx *gin.Context) {
	reminder, found := c.reminderService.Reminder(ctx.Param("id"))
	if !found {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("Reminder not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      reminder,
		Timestamp: time.Now(),
	})
}

// RecomputeReminders forces a wholesale rebuild of the reminder set
func (c *ReminderController) RecomputeReminders(ctx *gin.Context) {
	if err := c.reminderService.Recompute(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.reminderService.Reminders(),
		Timestamp: time.Now(),
	})
}
