package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yungbote/analogyai-backend/internal/pkg/errors"
	"github.com/yungbote/analogyai-backend/internal/platform/apierr"
	"github.com/yungbote/analogyai-backend/internal/platform/httpx"
	"github.com/yungbote/analogyai-backend/internal/services"
)

const providerErrorMessage = "AI service error. Please check your API key and try again."

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	Retryable *bool  `json:"retryable,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// FromError writes the envelope for a service error and returns the status used.
func FromError(c *gin.Context, err error) int {
	status, body := Describe(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{Error: body})
	return status
}

// Describe maps an error onto its HTTP status and envelope body.
func Describe(err error) (int, APIError) {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
		ferr *services.GenerationFormatError
		perr *services.GenerationProviderError
		aerr *apierr.Error
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError, APIError{Message: "unknown error", Code: "internal_error"}
	case errors.As(err, &verr):
		return http.StatusBadRequest, APIError{Message: "Invalid request data", Code: "validation_failed", Details: verr.Fields}
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, APIError{Message: err.Error(), Code: "invalid_argument"}
	case errors.As(err, &nf):
		return http.StatusNotFound, APIError{Message: nf.Error(), Code: "not_found"}
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, APIError{Message: "Not found", Code: "not_found"}
	case errors.As(err, &ferr):
		return http.StatusBadGateway, APIError{Message: "The AI service returned an unexpected response. Please try again.", Code: "generation_format_error", Details: ferr.Reason}
	case errors.As(err, &perr):
		retryable := httpx.IsRetryableError(perr.Cause)
		details := ""
		if perr.Cause != nil {
			details = perr.Cause.Error()
		}
		return http.StatusServiceUnavailable, APIError{Message: providerErrorMessage, Code: "generation_provider_error", Details: details, Retryable: &retryable}
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, APIError{Message: "Unauthorized", Code: "unauthorized"}
	case errors.As(err, &aerr):
		status := aerr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, APIError{Message: aerr.Error(), Code: aerr.Code}
	default:
		return http.StatusInternalServerError, APIError{Message: "Internal server error", Code: "internal_error"}
	}
}
