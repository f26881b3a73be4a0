package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/apierr"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

const StrategyJWT = "jwt"

type LoginResult struct {
	User        *types.User   `json:"user"`
	AccessToken string        `json:"accessToken"`
	ExpiresIn   int64         `json:"expiresIn"`
	SessionID   string        `json:"-"`
	SessionTTL  time.Duration `json:"-"`
}

type AuthService interface {
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	IssueAccessToken(u *types.User, sessionID string) (string, error)
	ParseAccessToken(ctx context.Context, token string) (*ctxutil.Identity, error)
	AccessTTL() time.Duration
	SessionTTL() time.Duration
}

type accessClaims struct {
	Email     string `json:"email,omitempty"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

type authService struct {
	log        *logger.Logger
	users      UserService
	sessions   repos.SessionRepo
	verifier   GoogleVerifier
	jwtSecret  []byte
	accessTTL  time.Duration
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(
	log *logger.Logger,
	users UserService,
	sessions repos.SessionRepo,
	verifier GoogleVerifier,
	jwtSecretKey string,
	accessTTL time.Duration,
	sessionTTL time.Duration,
) AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	return &authService{
		log:        log.With("service", "AuthService"),
		users:      users,
		sessions:   sessions,
		verifier:   verifier,
		jwtSecret:  []byte(jwtSecretKey),
		accessTTL:  accessTTL,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (as *authService) AccessTTL() time.Duration  { return as.accessTTL }
func (as *authService) SessionTTL() time.Duration { return as.sessionTTL }

func (as *authService) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "idToken", Message: "is required"}}}
	}
	if as.verifier == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "google_signin_disabled", errors.New("google sign-in is not configured"))
	}
	profile, err := as.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		as.log.Warn("google token rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	u, err := as.users.EnsureUser(ctx, &ctxutil.Identity{
		UserID:          profile.Subject,
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ProfileImageURL: profile.Picture,
		Strategy:        "google",
	})
	if err != nil {
		return nil, err
	}

	sess := &types.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: as.now().Add(as.sessionTTL).UTC(),
	}
	if err := as.sessions.Create(dbctx.New(ctx), sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	token, err := as.IssueAccessToken(u, sess.ID)
	if err != nil {
		return nil, err
	}
	as.log.Info("user signed in", "user_id", u.ID)
	return &LoginResult{
		User:        u,
		AccessToken: token,
		ExpiresIn:   int64(as.accessTTL.Seconds()),
		SessionID:   sess.ID,
		SessionTTL:  as.sessionTTL,
	}, nil
}

func (as *authService) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := as.sessions.Delete(dbctx.New(ctx), sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (as *authService) IssueAccessToken(u *types.User, sessionID string) (string, error) {
	if u == nil || u.ID == "" {
		return "", errors.New("user required")
	}
	if len(as.jwtSecret) == 0 {
		return "", errors.New("JWT_SECRET_KEY is not configured")
	}
	now := as.now()
	claims := accessClaims{
		Email:     u.Email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies token and returns its caller. A token bound to a
// session (sid claim) stops resolving once that session is logged out or expires.
func (as *authService) ParseAccessToken(ctx context.Context, token string) (*ctxutil.Identity, error) {
	if len(as.jwtSecret) == 0 {
		return nil, errors.New("JWT_SECRET_KEY is not configured")
	}
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return as.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}
	if claims.SessionID != "" && as.sessions != nil {
		sess, err := as.sessions.Get(dbctx.New(ctx), claims.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if sess == nil || sess.UserID != claims.Subject {
			return nil, fmt.Errorf("%w: session ended", ErrUnauthorized)
		}
	}
	return &ctxutil.Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		SessionID: claims.SessionID,
		Strategy:  StrategyJWT,
	}, nil
}
