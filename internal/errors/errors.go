package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/dto"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError  = "INTERNAL_ERROR"
	ErrCodeUpstreamFailed = "UPSTREAM_FAILED"
)

// APIError represents a standardized API error
type APIError struct {
	Code    string
	Message string
	Details interface{}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error envelope. The envelope statusCode always
// matches the transport status.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	var data interface{} = gin.H{}
	if err.Details != nil {
		data = err.Details
	}
	c.JSON(statusCode, dto.Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    err.Message,
		Success:    false,
		Code:       err.Code,
	})
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized request"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// InvalidToken sends a 401 response for a token that failed verification
func InvalidToken(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid access token"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidToken, message))
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid credentials"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// BadGateway sends a 502 response for a failed call to an external collaborator
func BadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "Upstream service failed"
	}
	RespondWithError(c, http.StatusBadGateway, NewAPIError(ErrCodeUpstreamFailed, message))
}
