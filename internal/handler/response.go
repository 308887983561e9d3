package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motorent/internal/repository"
	"motorent/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingBookingFields),
		errors.Is(err, service.ErrInvalidBookingWindow),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrMissingDeliveryFields),
		errors.Is(err, service.ErrInvalidDeliveryID),
		errors.Is(err, service.ErrInvalidDeliveryStatus),
		errors.Is(err, service.ErrInvalidTrackingNumber),
		errors.Is(err, service.ErrMissingCredentials):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrBookingLocked),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrInvalidPaymentTransition),
		errors.Is(err, service.ErrDeliveryExists),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
