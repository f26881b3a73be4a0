package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// GoogleProfile is the subset of a verified Google ID token the app uses.
type GoogleProfile struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type googleVerifier struct {
	validator *idtoken.Validator
	audience  string
}

func NewGoogleVerifier(ctx context.Context, httpClient *http.Client, audience string) (GoogleVerifier, error) {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		return nil, fmt.Errorf("GOOGLE_OIDC_CLIENT_ID is required")
	}
	var opts []option.ClientOption
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("idtoken validator: %w", err)
	}
	return &googleVerifier{validator: v, audience: audience}, nil
}

func (g *googleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error) {
	payload, err := g.validator.Validate(ctx, idToken, g.audience)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", err)
	}
	switch payload.Issuer {
	case "accounts.google.com", "https://accounts.google.com":
	default:
		return nil, fmt.Errorf("unexpected token issuer %q", payload.Issuer)
	}
	claim := func(k string) string {
		s, _ := payload.Claims[k].(string)
		return strings.TrimSpace(s)
	}
	return &GoogleProfile{
		Subject:   payload.Subject,
		Email:     claim("email"),
		FirstName: claim("given_name"),
		LastName:  claim("family_name"),
		Picture:   claim("picture"),
	}, nil
}
