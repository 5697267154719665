package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/middleware"
)

// ActionLogController handles the audit trail attached to reminders.
type ActionLogController struct {
	actionLogService services.ActionLogService
}

// NewActionLogController creates a new ActionLogController
func NewActionLogController(actionLogService services.ActionLogService) *ActionLogController {
	return &ActionLogController{
		actionLogService: actionLogService,
	}
}

// ListComments returns a reminder's comments. Soft-deleted records are
// included only when ?includeDeleted=true is set.
func (c *ActionLogController) ListComments(ctx *gin.Context) {
	reminderID := ctx.Param("id")
	includeDeleted := ctx.Query("includeDeleted") == "true"

	comments, err := c.actionLogService.ListComments(ctx, reminderID, includeDeleted)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CommentListResponse{
			ReminderID: reminderID,
			Comments:   comments,
		},
		Timestamp: time.Now(),
	})
}

// AddComment appends a comment to a reminder's audit trail
func (c *ActionLogController) AddComment(ctx *gin.Context) {
	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.actionLogService.AddComment(ctx, ctx.Param("id"), req.UserID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// RemoveComment soft-deletes a comment
func (c *ActionLogController) RemoveComment(ctx *gin.Context) {
	if err := c.actionLogService.RemoveComment(ctx, ctx.Param("commentId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Comment removed successfully"},
		Timestamp: time.Now(),
	})
}
