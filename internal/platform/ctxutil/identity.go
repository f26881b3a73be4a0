package ctxutil

import "context"

type identityKey struct{}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	// SessionID is set when the identity came from a server-side session.
	SessionID string
	// Strategy names the resolver that produced the identity.
	Strategy string
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}

// UserID returns the caller's id or "" when unauthenticated.
func UserID(ctx context.Context) string {
	if id := GetIdentity(ctx); id != nil {
		return id.UserID
	}
	return ""
}
