package http

import (
	"net/http"
	"strings"

	"github.com/vmtecnologia/usersvc/internal/server/auth"
)

// PublicPaths is the set of routes reachable without an identity.
var PublicPaths = []string{
	"/swagger-ui.html",
	"/swagger-ui/**",
	"/v3/api-docs/**",
	"/v1/api-docs/**",
	"/auth/**",
	"/user/api/v1/save",
	"/health",
	"/metrics",
}

// PathMatcher matches request paths against exact patterns and "/base/**"
// patterns, the latter covering /base itself and everything beneath it.
type PathMatcher struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewPathMatcher(patterns ...string) *PathMatcher {
	m := &PathMatcher{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		if base, ok := strings.CutSuffix(p, "/**"); ok {
			m.prefixes = append(m.prefixes, base)
			continue
		}
		m.exact[p] = struct{}{}
	}
	return m
}

func (m *PathMatcher) Match(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}
	for _, base := range m.prefixes {
		if path == base || strings.HasPrefix(path, base+"/") {
			return true
		}
	}
	return false
}

// Authorize lets public paths through and answers 401 for any other path
// whose context carries no identity.
func Authorize(public *PathMatcher) Step {
	return Step{Name: "authorize", Wrap: func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.Match(r.URL.Path) || auth.FromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, r, http.StatusUnauthorized, "full authentication is required to access this resource")
		})
	}}
}
