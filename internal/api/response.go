package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError represents an error response
type APIError struct {
	Code    string `json:"code" example:"INVALID_PHONE_NUMBER"`
	Message string `json:"message" example:"Invalid phone number: Phone number is too short"`
	Details string `json:"details,omitempty" example:"too_short"`
}

// Standard error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInvalidPhone  = "INVALID_PHONE_NUMBER"
	ErrCodeMissingAPIKey = "MISSING_API_KEY"
	ErrCodeInvalidAPIKey = "INVALID_API_KEY"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// SendSuccess sends a successful response
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SendError sends an error response
func SendError(c *gin.Context, statusCode int, code, message, details string) {
	c.JSON(statusCode, errorResponse(code, message, details))
}

// AbortWithError sends an error response and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse(code, message, ""))
}

func errorResponse(code, message, details string) APIResponse {
	return APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// Convenience methods for common responses

func SendValidationError(c *gin.Context, message, details string) {
	SendError(c, http.StatusBadRequest, ErrCodeValidation, message, details)
}

// SendInvalidPhone reports a rejected phone number; details carries the rejection kind
func SendInvalidPhone(c *gin.Context, message, kind string) {
	SendError(c, http.StatusUnprocessableEntity, ErrCodeInvalidPhone, message, kind)
}

func SendNotFound(c *gin.Context, resource string) {
	SendError(c, http.StatusNotFound, ErrCodeNotFound, resource+" not found", "")
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", message)
}
