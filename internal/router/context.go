package router

import "context"

type matchKey struct{}

// WithMatch returns a copy of ctx carrying m.
func WithMatch(ctx context.Context, m *MatchedRoute) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// FromContext returns the match stored by WithMatch, or nil.
func FromContext(ctx context.Context) *MatchedRoute {
	m, _ := ctx.Value(matchKey{}).(*MatchedRoute)
	return m
}
