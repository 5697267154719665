package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/app/services"
	"github.com/prop101/strataops/internal/middleware"
)

// UserController serves the operator directory.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetAllUsers returns every operator
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      users,
		Timestamp: time.Now(),
	})
}

// GetUserByID returns a single operator
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}

// GetManagers returns the operators eligible to manage properties
func (c *UserController) GetManagers(ctx *gin.Context) {
	managers, err := c.userService.GetManagers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      managers,
		Timestamp: time.Now(),
	})
}
