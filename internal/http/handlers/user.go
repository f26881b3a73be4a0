package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/analogyai-backend/internal/http/response"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), userService: userService}
}

// GET /api/profile
func (uh *UserHandler) GetProfile(c *gin.Context) {
	u, err := uh.userService.GetProfile(c.Request.Context(), callerID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// PUT /api/profile
// body: any subset of displayName, personalizationInterests, defaultKnowledgeLevel,
// analogyStyle, saveHistory. Other fields are rejected.
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	in, err := services.DecodeProfileUpdate(c.Request.Body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u, err := uh.userService.UpdateProfile(c.Request.Context(), callerID(c), in)
	if err != nil {
		if status := response.FromError(c, err); status >= 500 {
			uh.log.Error("update profile failed", "error", err)
		}
		return
	}
	response.RespondOK(c, u)
}
