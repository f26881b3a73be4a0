package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/analogyai-backend/internal/http/response"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

type AuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	userService  services.UserService
	secureCookie bool
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, userService services.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		log:          log.With("handler", "AuthHandler"),
		authService:  authService,
		userService:  userService,
		secureCookie: secureCookie,
	}
}

// POST /api/auth/google
// body: { "idToken": "..." }
func (ah *AuthHandler) GoogleLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ah.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		status := response.FromError(c, err)
		if status >= http.StatusInternalServerError {
			ah.log.Error("google login failed", "error", err)
		}
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(identity.SessionCookie, res.SessionID, int(res.SessionTTL.Seconds()), "/", "", ah.secureCookie, true)
	response.RespondOK(c, res)
}

// GET /api/auth/user
// Answers 401 with a null body when nobody is signed in.
func (ah *AuthHandler) CurrentUser(c *gin.Context) {
	uid := callerID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, nil)
		return
	}
	u, err := ah.userService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, nil)
		return
	}
	response.RespondOK(c, u)
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	sid := ""
	if id := ctxutil.GetIdentity(c.Request.Context()); id != nil {
		sid = id.SessionID
	}
	if sid == "" {
		sid, _ = c.Cookie(identity.SessionCookie)
	}
	if err := ah.authService.Logout(c.Request.Context(), sid); err != nil {
		ah.log.Warn("logout failed", "session_id", sid, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "logout_failed", err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(identity.SessionCookie, "", -1, "/", "", ah.secureCookie, true)
	response.RespondOK(c, gin.H{"message": "Logged out successfully"})
}
