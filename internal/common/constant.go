package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the literal prefix that must precede the token in the
// Authorization header.
const BearerPrefix = "Bearer "

// DefaultAuthority is granted to every authenticated identity.
const DefaultAuthority = "USER"
