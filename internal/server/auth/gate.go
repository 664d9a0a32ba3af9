package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/models"
)

// IdentityLoader looks up an enabled user by the subject of a token.
type IdentityLoader interface {
	FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error)
}

// Gate turns a bearer token into an Identity on the request context. It never
// rejects a request: every failure leaves the request unauthenticated and
// access decisions are made further down the chain.
type Gate struct {
	tokens     *TokenService
	identities IdentityLoader
	logger     logging.Logger
	now        func() time.Time
}

type GateOption func(*Gate)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

func NewGate(tokens *TokenService, identities IdentityLoader, logger logging.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		tokens:     tokens,
		identities: identities,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Attach returns the context the rest of the chain should see for r.
func (g *Gate) Attach(r *http.Request) context.Context {
	ctx := r.Context()
	id, ok := g.Authenticate(ctx, r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		return ctx
	}
	ctx = WithIdentity(ctx, id)
	return logging.WithFields(ctx, "subject", id.Subject)
}

// Authenticate resolves an Authorization header value to an identity. An
// identity already present on ctx is left untouched and ok is false.
func (g *Gate) Authenticate(ctx context.Context, header string) (*Identity, bool) {
	token, found := strings.CutPrefix(header, common.BearerPrefix)
	if !found {
		return nil, false
	}

	subject, ok := g.tokens.ExtractSubject(token)
	if !ok {
		g.logger.Debug(ctx, "bearer token rejected", "reason", "unparseable")
		return nil, false
	}

	if FromContext(ctx) != nil {
		return nil, false
	}

	user, err := g.identities.FindByEmailAndEnabled(ctx, subject, true)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			g.logger.Debug(ctx, "bearer token rejected", "reason", "unknown subject")
		} else {
			g.logger.Warn(ctx, "identity lookup failed", "err", err)
		}
		return nil, false
	}

	if !g.tokens.Verify(token, user.Email, g.now()) {
		g.logger.Debug(ctx, "bearer token rejected", "reason", "verification failed")
		return nil, false
	}

	return &Identity{
		Subject:     user.Email,
		Authorities: []string{common.DefaultAuthority},
	}, true
}

// Middleware runs Attach and always forwards to next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(g.Attach(r)))
	})
}
