package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/data/repos/memory"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
)

type fakeParser struct {
	want string
	err  error
}

func (f fakeParser) ParseAccessToken(_ context.Context, tok string) (*ctxutil.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if tok != f.want {
		return nil, errors.New("bad token")
	}
	return &ctxutil.Identity{UserID: "u-jwt", Strategy: StrategyJWT}, nil
}

func TestJWTResolver(t *testing.T) {
	res := JWTResolver{Parser: fakeParser{want: "tok"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := res.Resolve(req)
	assert.ErrorIs(t, err, ErrNoIdentity)

	req.Header.Set("Authorization", "bearer tok")
	id, err := res.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "u-jwt", id.UserID)

	req = httptest.NewRequest(http.MethodGet, "/?token=tok", nil)
	id, err = res.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "u-jwt", id.UserID)
}

func TestSessionResolver(t *testing.T) {
	sessions := memory.NewSessionRepo()
	require.NoError(t, sessions.Create(dbctx.New(context.Background()), &types.Session{
		ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour),
	}))
	res := SessionResolver{Sessions: sessions}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := res.Resolve(req)
	assert.ErrorIs(t, err, ErrNoIdentity)

	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "missing"})
	_, err = res.Resolve(req)
	assert.ErrorIs(t, err, ErrNoIdentity)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s1"})
	id, err := res.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "s1", id.SessionID)
}

func TestHeaderResolverStripsPrefix(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderGoogleUserID, "accounts.google.com:1234")
	req.Header.Set(HeaderGoogleUserEmail, "accounts.google.com:a@b.c")

	id, err := HeaderResolver{}.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "1234", id.UserID)
	assert.Equal(t, "a@b.c", id.Email)
}

func TestChainOrderAndErrors(t *testing.T) {
	static := StaticResolver{Identity: GuestIdentity}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id, err := Chain{JWTResolver{Parser: fakeParser{want: "tok"}}, static}.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "public-guest-user", id.UserID)
	assert.Equal(t, StrategyStatic, id.Strategy)

	// a rejected token does not block later strategies
	req.Header.Set("Authorization", "Bearer nope")
	id, err = Chain{JWTResolver{Parser: fakeParser{want: "tok"}}, static}.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "public-guest-user", id.UserID)

	_, err = Chain{JWTResolver{Parser: fakeParser{want: "tok"}}, HeaderResolver{}}.Resolve(req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoIdentity)

	_, err = Chain{HeaderResolver{}}.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoIdentity)
}
