package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/analogyai-backend/internal/http/response"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/services"
)

// bindJSON decodes the body into dst and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	msg := "must be a valid JSON object"
	if errors.Is(err, io.EOF) {
		msg = "is required"
	}
	response.FromError(c, &services.ValidationError{Fields: []services.FieldError{{Field: "body", Message: msg}}})
	return false
}

func requiredField(c *gin.Context, field string) {
	response.FromError(c, &services.ValidationError{Fields: []services.FieldError{{Field: field, Message: "is required"}}})
}

func callerID(c *gin.Context) string {
	return ctxutil.UserID(c.Request.Context())
}
