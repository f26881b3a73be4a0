package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/analogyai-backend/internal/http/response"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

type AuthMiddleware struct {
	log         *logger.Logger
	resolver    identity.Resolver
	userService services.UserService
}

func NewAuthMiddleware(log *logger.Logger, resolver identity.Resolver, userService services.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		resolver:    resolver,
		userService: userService,
	}
}

// RequireAuth rejects the request with 401 unless a caller can be resolved.
// Failures behind the check (session or user store) answer 5xx instead.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := am.attach(c)
		switch {
		case err == nil:
			c.Next()
		case isAuthFailure(err):
			c.Abort()
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("Unauthorized"))
		default:
			am.fail(c, err)
		}
	}
}

// OptionalAuth attaches the caller when one can be resolved and lets
// anonymous requests through. Store failures still abort.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := am.attach(c); err != nil && !isAuthFailure(err) {
			am.fail(c, err)
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) fail(c *gin.Context, err error) {
	am.log.Error("caller lookup failed", append(ctxutil.TraceFields(c.Request.Context()), "error", err)...)
	c.Abort()
	response.FromError(c, err)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, identity.ErrNoIdentity) || errors.Is(err, services.ErrUnauthorized)
}

// attach resolves the caller, ensures its user row and stores the identity on
// the request.
func (am *AuthMiddleware) attach(c *gin.Context) error {
	if am.resolver == nil {
		return identity.ErrNoIdentity
	}
	ctx := c.Request.Context()
	id, err := am.resolver.Resolve(c.Request)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			am.log.Debug("identity rejected", append(ctxutil.TraceFields(ctx), "error", err)...)
		}
		return err
	}
	u, err := am.userService.EnsureUser(ctx, id)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	id.UserID = u.ID
	c.Request = c.Request.WithContext(ctxutil.WithIdentity(ctx, id))
	c.Set("user_id", u.ID)
	return nil
}
