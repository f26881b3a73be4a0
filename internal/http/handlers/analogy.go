package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/analogyai-backend/internal/http/response"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
)

type AnalogyHandlerDeps struct {
	Log       *logger.Logger
	Analogies services.AnalogyService
}

type AnalogyHandler struct {
	log       *logger.Logger
	analogies services.AnalogyService
}

func NewAnalogyHandlerWithDeps(deps AnalogyHandlerDeps) *AnalogyHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &AnalogyHandler{
		log:       log.With("handler", "AnalogyHandler"),
		analogies: deps.Analogies,
	}
}

// POST /api/analogy
func (h *AnalogyHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.analogies.Generate(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.fail(c, "generate analogy failed", err)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/analogy/regenerate
func (h *AnalogyHandler) Regenerate(c *gin.Context) {
	var req services.RegenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.analogies.Regenerate(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.fail(c, "regenerate analogy failed", err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/analogy/:id
func (h *AnalogyHandler) Get(c *gin.Context) {
	a, err := h.analogies.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "get analogy failed", err)
		return
	}
	response.RespondOK(c, a)
}

// PUT /api/analogy/:id/favorite
// body: { "isFavorite": true }
func (h *AnalogyHandler) SetFavorite(c *gin.Context) {
	var req struct {
		IsFavorite *bool `json:"isFavorite"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.IsFavorite == nil {
		requiredField(c, "isFavorite")
		return
	}
	fav, err := h.analogies.SetFavorite(c.Request.Context(), callerID(c), c.Param("id"), *req.IsFavorite)
	if err != nil {
		h.fail(c, "update favorite failed", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "isFavorite": fav})
}

// POST /api/analogy/:id/feedback
// body: { "helpful": true }
func (h *AnalogyHandler) Feedback(c *gin.Context) {
	var req struct {
		Helpful *bool `json:"helpful"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Helpful == nil {
		requiredField(c, "helpful")
		return
	}
	msg, err := h.analogies.SubmitFeedback(c.Request.Context(), callerID(c), c.Param("id"), *req.Helpful)
	if err != nil {
		h.fail(c, "submit feedback failed", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": msg})
}

// DELETE /api/analogy/:id
func (h *AnalogyHandler) Delete(c *gin.Context) {
	if err := h.analogies.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.fail(c, "delete analogy failed", err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Analogy deleted successfully"})
}

// GET /api/history?limit=20&offset=0
func (h *AnalogyHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page, err := h.analogies.History(c.Request.Context(), callerID(c), limit, offset)
	if err != nil {
		h.fail(c, "list history failed", err)
		return
	}
	response.RespondOK(c, page)
}

func (h *AnalogyHandler) fail(c *gin.Context, msg string, err error) {
	status := response.FromError(c, err)
	fields := append(ctxutil.TraceFields(c.Request.Context()), "status", status, "error", err)
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Error(msg, fields...)
	case status == http.StatusNotFound || status == http.StatusBadRequest:
		h.log.Debug(msg, fields...)
	default:
		h.log.Warn(msg, fields...)
	}
}
