package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
)

const (
	SessionCookie = "sid"

	HeaderGoogleUserID    = "X-Goog-Authenticated-User-Id"
	HeaderGoogleUserEmail = "X-Goog-Authenticated-User-Email"

	googleAccountsPrefix = "accounts.google.com:"
)

type TokenParser interface {
	ParseAccessToken(ctx context.Context, token string) (*ctxutil.Identity, error)
}

// JWTResolver reads a bearer token from the Authorization header, falling
// back to the token query parameter.
type JWTResolver struct {
	Parser TokenParser
}

func (JWTResolver) Name() string { return StrategyJWT }

func (j JWTResolver) Resolve(r *http.Request) (*ctxutil.Identity, error) {
	tok := BearerToken(r)
	if tok == "" {
		return nil, ErrNoIdentity
	}
	return j.Parser.ParseAccessToken(r.Context(), tok)
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// SessionResolver looks up the sid cookie in the session store.
type SessionResolver struct {
	Sessions repos.SessionRepo
}

func (SessionResolver) Name() string { return StrategySession }

func (s SessionResolver) Resolve(r *http.Request) (*ctxutil.Identity, error) {
	ck, err := r.Cookie(SessionCookie)
	if err != nil || strings.TrimSpace(ck.Value) == "" {
		return nil, ErrNoIdentity
	}
	sess, err := s.Sessions.Get(dbctx.New(r.Context()), ck.Value)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoIdentity
	}
	return &ctxutil.Identity{UserID: sess.UserID, SessionID: sess.ID, Strategy: StrategySession}, nil
}

// HeaderResolver trusts the identity headers set by an authenticating proxy.
// Only enable it behind such a proxy.
type HeaderResolver struct{}

func (HeaderResolver) Name() string { return StrategyHeader }

func (HeaderResolver) Resolve(r *http.Request) (*ctxutil.Identity, error) {
	uid := stripAccountsPrefix(r.Header.Get(HeaderGoogleUserID))
	if uid == "" {
		return nil, ErrNoIdentity
	}
	return &ctxutil.Identity{
		UserID:   uid,
		Email:    stripAccountsPrefix(r.Header.Get(HeaderGoogleUserEmail)),
		Strategy: StrategyHeader,
	}, nil
}

func stripAccountsPrefix(v string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), googleAccountsPrefix))
}

// StaticResolver always yields the configured identity.
type StaticResolver struct {
	Identity ctxutil.Identity
}

func (StaticResolver) Name() string { return StrategyStatic }

func (s StaticResolver) Resolve(*http.Request) (*ctxutil.Identity, error) {
	if s.Identity.UserID == "" {
		return nil, ErrNoIdentity
	}
	id := s.Identity
	id.Strategy = StrategyStatic
	return &id, nil
}

// DevIdentity and GuestIdentity are the stock static identities.
var (
	DevIdentity = ctxutil.Identity{
		UserID:    "local-dev-user",
		Email:     "dev@analogy.ai",
		FirstName: "Local",
		LastName:  "Developer",
	}
	GuestIdentity = ctxutil.Identity{
		UserID:    "public-guest-user",
		Email:     "guest@analogy.ai",
		FirstName: "Public",
		LastName:  "User",
	}
)
