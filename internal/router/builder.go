package router

import "strings"

// WildcardParam is the parameter name under which a trailing "*" capture is
// also stored in MatchedRoute.Params.
const WildcardParam = "*"

// NewBuilder creates an empty route builder.
//
//	table, err := router.NewBuilder().
//		AddMany(router.Get("/"), router.Get("/posts/:id")).
//		Build()
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a route. Duplicates are kept. Add panics if the builder has
// already been built.
func (b *Builder) Add(route Route) *Builder {
	b.mustNotBeBuilt()
	b.routes = append(b.routes, route)
	return b
}

// AddMany appends routes in the given order.
func (b *Builder) AddMany(routes ...Route) *Builder {
	b.mustNotBeBuilt()
	b.routes = append(b.routes, routes...)
	return b
}

// Build validates the accumulated routes and returns the table. Static routes
// are placed before routes containing dynamic or wildcard segments; relative
// order within each group is the insertion order.
//
// The builder is spent afterwards: Add panics and Build returns
// ErrBuilderConsumed.
func (b *Builder) Build() (*Table, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	b.built = true

	routes := b.routes
	b.routes = nil

	static := make([]*routeEntry, 0, len(routes))
	var dynamic []*routeEntry

	for _, route := range routes {
		entry, err := compile(route)
		if err != nil {
			return nil, err
		}
		if entry.dynamic {
			dynamic = append(dynamic, entry)
		} else {
			static = append(static, entry)
		}
	}

	return &Table{entries: append(static, dynamic...)}, nil
}

func (b *Builder) mustNotBeBuilt() {
	if b.built {
		panic("router: route added to a builder that was already built")
	}
}

// compile parses a route pattern into segments and validates it.
func compile(route Route) (*routeEntry, error) {
	parts := splitPath(route.Path)
	entry := &routeEntry{
		route:    route,
		segments: make([]segment, len(parts)),
	}

	names := make(map[string]struct{})

	for i, part := range parts {
		switch {
		case part == "*":
			if i != len(parts)-1 {
				return nil, newPatternError(route, "wildcard must be the last segment")
			}
			entry.segments[i] = segment{value: part, kind: segmentWildcard}
			entry.wildcard = true
			entry.dynamic = true
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, newPatternError(route, "parameter in segment %d has no name", i+1)
			}
			if _, dup := names[name]; dup {
				return nil, newPatternError(route, "duplicate parameter %q", name)
			}
			names[name] = struct{}{}
			entry.segments[i] = segment{value: name, kind: segmentParam}
			entry.dynamic = true
		default:
			entry.segments[i] = segment{value: part}
		}
	}

	return entry, nil
}

// splitPath splits a path on "/" and drops empty segments, so leading,
// trailing and repeated slashes are ignored.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
