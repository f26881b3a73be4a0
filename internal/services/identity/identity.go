// Package identity resolves the caller of an HTTP request. Each Resolver
// implements one authentication strategy; Chain tries them in order.
package identity

import (
	"errors"
	"net/http"

	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
)

// ErrNoIdentity means the strategy does not apply to the request.
var ErrNoIdentity = errors.New("no identity")

const (
	StrategyJWT     = "jwt"
	StrategySession = "session"
	StrategyHeader  = "header"
	StrategyStatic  = "static"
)

type Resolver interface {
	Name() string
	Resolve(r *http.Request) (*ctxutil.Identity, error)
}

// Chain returns the first identity produced by its resolvers. Resolvers that
// fail with anything other than ErrNoIdentity do not stop the chain, but the
// first such error is reported if nobody succeeds.
type Chain []Resolver

func (c Chain) Name() string { return "chain" }

func (c Chain) Resolve(r *http.Request) (*ctxutil.Identity, error) {
	var firstErr error
	for _, res := range c {
		if res == nil {
			continue
		}
		id, err := res.Resolve(r)
		if err == nil && id != nil && id.UserID != "" {
			if id.Strategy == "" {
				id.Strategy = res.Name()
			}
			return id, nil
		}
		if err != nil && !errors.Is(err, ErrNoIdentity) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNoIdentity
}
