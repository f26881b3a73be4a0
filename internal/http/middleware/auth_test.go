package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/data/repos/memory"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

func newAuthRouter(resolver identity.Resolver) (*gin.Engine, services.UserService) {
	gin.SetMode(gin.TestMode)
	users := services.NewUserService(logger.Nop(), memory.NewUserRepo())
	am := NewAuthMiddleware(logger.Nop(), resolver, users)

	r := gin.New()
	r.Use(AttachTraceContext())
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": ctxutil.UserID(c.Request.Context())})
	}
	r.GET("/private", am.RequireAuth(), whoami)
	r.GET("/public", am.OptionalAuth(), whoami)
	return r, users
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r, _ := newAuthRouter(identity.Chain{identity.HeaderResolver{}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Unauthorized","code":"unauthorized"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":""}`, rec.Body.String())
}

func TestRequireAuthEnsuresUser(t *testing.T) {
	r, users := newAuthRouter(identity.Chain{identity.HeaderResolver{}})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(identity.HeaderGoogleUserID, "accounts.google.com:777")
	req.Header.Set(identity.HeaderGoogleUserEmail, "accounts.google.com:p@example.com")
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"777"}`, rec.Body.String())
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))

	u, err := users.GetProfile(req.Context(), "777")
	require.NoError(t, err)
	assert.Equal(t, "p@example.com", u.Email)
}

func TestStaticIdentity(t *testing.T) {
	r, _ := newAuthRouter(identity.Chain{identity.StaticResolver{Identity: identity.DevIdentity}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"local-dev-user"}`, rec.Body.String())
}

type brokenUsers struct {
	services.UserService
	err error
}

func (b brokenUsers) EnsureUser(context.Context, *ctxutil.Identity) (*types.User, error) {
	return nil, b.err
}

type brokenSessions struct{ err error }

func (b brokenSessions) Create(dbctx.Context, *types.Session) error { return b.err }
func (b brokenSessions) Get(dbctx.Context, string) (*types.Session, error) {
	return nil, b.err
}
func (b brokenSessions) Delete(dbctx.Context, string) error { return b.err }

func TestStoreFailuresAreNotUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	outage := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	whoami := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": ctxutil.UserID(c.Request.Context())}) }

	cases := map[string]*AuthMiddleware{
		"user store": NewAuthMiddleware(logger.Nop(),
			identity.Chain{identity.StaticResolver{Identity: identity.GuestIdentity}},
			brokenUsers{err: outage}),
		"session store": NewAuthMiddleware(logger.Nop(),
			identity.Chain{identity.SessionResolver{Sessions: brokenSessions{err: outage}}},
			services.NewUserService(logger.Nop(), memory.NewUserRepo())),
	}
	for name, am := range cases {
		r := gin.New()
		r.GET("/private", am.RequireAuth(), whoami)
		r.GET("/public", am.OptionalAuth(), whoami)

		for _, path := range []string{"/private", "/public"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(&http.Cookie{Name: identity.SessionCookie, Value: "sid-1"})
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code, name+" "+path)
			assert.JSONEq(t, `{"error":{"message":"Internal server error","code":"internal_error"}}`, rec.Body.String(), name+" "+path)
		}
	}
}

func TestRejectedTokenIsUnauthorized(t *testing.T) {
	r, _ := newAuthRouter(identity.Chain{identity.JWTResolver{Parser: rejectAll{}}})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":""}`, rec.Body.String())
}

type rejectAll struct{}

func (rejectAll) ParseAccessToken(context.Context, string) (*ctxutil.Identity, error) {
	return nil, fmt.Errorf("%w: invalid access token", services.ErrUnauthorized)
}
