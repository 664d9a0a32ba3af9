// Package http is the REST transport of usersvc: the ordered middleware
// chain, the public-route policy, handlers and the chi router.
package http

import (
	"context"
	"net/http"
)

// Step is one named stage of the request pipeline.
type Step struct {
	Name string
	Wrap func(http.Handler) http.Handler
}

// Chain runs its steps in order; the first step sees the request first.
type Chain []Step

// ContextStep adapts a function that derives a request context into a Step.
func ContextStep(name string, derive func(*http.Request) context.Context) Step {
	return Step{
		Name: name,
		Wrap: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(derive(r)))
			})
		},
	}
}

// Then wraps h with every step of the chain.
func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		h = c[i].Wrap(h)
	}
	return h
}

// Middlewares returns the wrappers in chain order, for routers that install
// middleware themselves.
func (c Chain) Middlewares() []func(http.Handler) http.Handler {
	out := make([]func(http.Handler) http.Handler, len(c))
	for i, s := range c {
		out[i] = s.Wrap
	}
	return out
}

func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.Name
	}
	return out
}
