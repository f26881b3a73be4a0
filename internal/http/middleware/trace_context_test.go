package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
)

func traceRouter(seen **ctxutil.TraceData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		*seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := traceRouter(&td)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, td)
	assert.NotEmpty(t, td.TraceID)
	assert.NotEmpty(t, td.RequestID)
	assert.Equal(t, td.TraceID, w.Header().Get(headerTraceID))
	assert.Equal(t, td.RequestID, w.Header().Get(headerRequestID))
}

func TestAttachTraceContextHonoursClientIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := traceRouter(&td)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	req.Header.Set(headerTraceID, "trace.abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, td)
	assert.Equal(t, "req-123", td.RequestID)
	assert.Equal(t, "trace.abc", td.TraceID)
}

func TestAttachTraceContextRejectsJunkIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := traceRouter(&td)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "bad id\twith spaces")
	req.Header.Set(headerTraceID, strings.Repeat("a", maxClientIDLen+1))
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, td)
	assert.NotEqual(t, "bad id\twith spaces", td.RequestID)
	assert.Len(t, td.TraceID, 36)
}
