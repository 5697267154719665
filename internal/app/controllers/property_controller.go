package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/middleware"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// PropertyController handles portfolio and meeting operations.
type PropertyController struct {
	propertyService services.PropertyService
}

// NewPropertyController creates a new PropertyController
func NewPropertyController(propertyService services.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
	}
}

// CreateProperty handles property creation
func (c *PropertyController) CreateProperty(ctx *gin.Context) {
	var req dto.PropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	property, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.propertyService.CreateProperty(ctx, property); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      property,
		Timestamp: time.Now(),
	})
}

// GetAllProperties returns the full portfolio with meetings attached
func (c *PropertyController) GetAllProperties(ctx *gin.Context) {
	properties, err := c.propertyService.GetAllProperties(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      properties,
		Timestamp: time.Now(),
	})
}

// GetPropertyByID returns a single property with its meetings
func (c *PropertyController) GetPropertyByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	property, err := c.propertyService.GetPropertyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      property,
		Timestamp: time.Now(),
	})
}

// UpdateProperty handles property updates
func (c *PropertyController) UpdateProperty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	property, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	property.ID = id

	if err := c.propertyService.UpdateProperty(ctx, property); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.propertyService.GetPropertyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// ToggleArchive flips a property's archival flag
func (c *PropertyController) ToggleArchive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	archived, err := c.propertyService.ToggleArchive(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ArchiveResponse{ID: id, IsArchived: archived},
		Timestamp: time.Now(),
	})
}

// AssignManager sets the named manager on a property
func (c *PropertyController) AssignManager(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignManagerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.propertyService.AssignManager(ctx, id, req.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Manager assigned successfully"},
		Timestamp: time.Now(),
	})
}

// AddMeeting appends a meeting to a property
func (c *PropertyController) AddMeeting(ctx *gin.Context) {
	propertyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	meeting, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.propertyService.AddMeeting(ctx, propertyID, meeting)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// UpdateMeeting updates a meeting on a property
func (c *PropertyController) UpdateMeeting(ctx *gin.Context) {
	propertyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	meetingID, ok := parseIDParam(ctx, "meetingId")
	if !ok {
		return
	}

	var req dto.MeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	meeting, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	meeting.ID = meetingID

	if err := c.propertyService.UpdateMeeting(ctx, propertyID, meeting); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      meeting,
		Timestamp: time.Now(),
	})
}

// DeleteMeeting removes a meeting from a property
func (c *PropertyController) DeleteMeeting(ctx *gin.Context) {
	propertyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	meetingID, ok := parseIDParam(ctx, "meetingId")
	if !ok {
		return
	}

	if err := c.propertyService.DeleteMeeting(ctx, propertyID, meetingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Meeting deleted successfully"},
		Timestamp: time.Now(),
	})
}

// parseIDParam parses a positive integer path parameter, writing the error
// response itself when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
