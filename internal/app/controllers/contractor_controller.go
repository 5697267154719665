package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/middleware"
)

// ContractorController handles the contractor directory.
type ContractorController struct {
	contractorService services.ContractorService
}

// NewContractorController creates a new ContractorController
func NewContractorController(contractorService services.ContractorService) *ContractorController {
	return &ContractorController{
		contractorService: contractorService,
	}
}

// CreateContractor handles contractor creation
func (c *ContractorController) CreateContractor(ctx *gin.Context) {
	var req dto.ContractorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	contractor := req.ToModel()
	if _, err := c.contractorService.CreateContractor(ctx, contractor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      contractor,
		Timestamp: time.Now(),
	})
}

// GetAllContractors returns the contractor directory
func (c *ContractorController) GetAllContractors(ctx *gin.Context) {
	contractors, err := c.contractorService.GetAllContractors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      contractors,
		Timestamp: time.Now(),
	})
}

// GetContractorByID returns a single contractor
func (c *ContractorController) GetContractorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	contractor, err := c.contractorService.GetContractorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      contractor,
		Timestamp: time.Now(),
	})
}

// UpdateContractor handles contractor updates
func (c *ContractorController) UpdateContractor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ContractorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	contractor := req.ToModel()
	contractor.ID = id

	if err := c.contractorService.UpdateContractor(ctx, contractor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      contractor,
		Timestamp: time.Now(),
	})
}

// DeleteContractor removes a contractor
func (c *ContractorController) DeleteContractor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.contractorService.DeleteContractor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Contractor deleted successfully"},
		Timestamp: time.Now(),
	})
}
