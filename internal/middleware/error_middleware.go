package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prop101/strataops/internal/app/models/dto"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call it
// with whatever a service returned; the sentinel wrapped inside decides the
// status code and a CustomError's message, when present, replaces the generic
// text.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPropertyNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Property not found", err)
	case errors.Is(err, apperrors.ErrMeetingNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Meeting not found", err)
	case errors.Is(err, apperrors.ErrCommentNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Comment not found", err)
	case errors.Is(err, apperrors.ErrContractorNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Contractor not found", err)
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "User not found", err)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found", err)
	case errors.Is(err, apperrors.ErrPropertyAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Property with this registration number already exists", err)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Resource already exists", err)
	case errors.Is(err, apperrors.ErrNotAManager):
		respondError(c, 422, dto.ErrorCodeResourceInvalid, "User cannot be assigned as a property manager", err)
	case errors.Is(err, apperrors.ErrInvalidDate):
		respondError(c, 400, dto.ErrorCodeInvalidDate, "Invalid date format", err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "Validation failed", err)
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "Bad request", err)
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error", nil)
	}
}

// respondError writes the error envelope, preferring a CustomError's message
// over the generic one.
func respondError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	} else if err != nil && status < 500 {
		// Wrapped sentinel errors carry field-level context worth surfacing.
		message = err.Error()
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
