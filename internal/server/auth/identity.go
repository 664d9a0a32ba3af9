package auth

import (
	"context"
	"slices"
)

// Identity is the authenticated caller of one request. It lives in that
// request's context only and is never cached or shared.
type Identity struct {
	Subject     string
	Authorities []string
}

// HasAuthority reports whether the identity was granted authority.
func (i *Identity) HasAuthority(authority string) bool {
	return i != nil && slices.Contains(i.Authorities, authority)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity attached to ctx, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
