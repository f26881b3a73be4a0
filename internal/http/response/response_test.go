package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/platform/apierr"
	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/services"
)

func TestDescribe(t *testing.T) {
	status, body := Describe(&services.ValidationError{Fields: []services.FieldError{{Field: "topic", Message: "is required"}}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", body.Code)
	assert.NotNil(t, body.Details)

	status, body = Describe(fmt.Errorf("wrapped: %w", &services.NotFoundError{Resource: "analogy"}))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Analogy not found", body.Message)

	status, body = Describe(&services.GenerationFormatError{Reason: "missing field example"})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "generation_format_error", body.Code)

	status, body = Describe(&services.GenerationProviderError{
		Provider: "openai",
		Cause:    &llm.ProviderError{Provider: "openai", Status: 429, Err: errors.New("slow down")},
	})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "AI service error. Please check your API key and try again.", body.Message)
	require.NotNil(t, body.Retryable)
	assert.True(t, *body.Retryable)

	status, body = Describe(&services.GenerationProviderError{
		Provider: "openai",
		Cause:    &llm.ProviderError{Provider: "openai", Status: 401, Err: errors.New("bad key")},
	})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, *body.Retryable)

	status, _ = Describe(services.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = Describe(apierr.BadRequest(errors.New("bad json")))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body.Code)

	status, body = Describe(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
}
