package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/dto"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/services"
)

// respond writes a success envelope
func respond(c *gin.Context, statusCode int, data interface{}, message string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(statusCode, dto.Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

// respondError maps service errors onto error envelopes. action names the
// operation in the log line and in the 500 message.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrTooManyImages):
		apierrors.BadRequest(c, fmt.Sprintf("At most %d images can be uploaded at once", constants.MaxIdeaImages))
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid status. Valid statuses are: Pending, Approved, Rejected")
	case errors.Is(err, services.ErrInvalidState):
		apierrors.BadRequest(c, "Invalid state. Valid states are: Todo, Inprogress, Completed")
	case errors.Is(err, services.ErrRegistrationFields),
		errors.Is(err, services.ErrLoginFields),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrIdeaFieldsRequired),
		errors.Is(err, services.ErrIdeaFieldEmpty),
		errors.Is(err, services.ErrCommentTextRequired),
		errors.Is(err, services.ErrIdeaIDRequired),
		errors.Is(err, services.ErrInvalidParent):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Password is incorrect")
	case errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.InvalidToken(c, err.Error())
	case errors.Is(err, services.ErrNotIdeaOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrIdeaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrImageUpload):
		slog.Error(action, "err", err)
		apierrors.BadGateway(c, "Failed to upload image")
	default:
		slog.Error(action, "err", err)
		apierrors.InternalError(c, "Failed to "+action)
	}
}

func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", gin.H{"error": err.Error()})
}
