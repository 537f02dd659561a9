package router

import (
	"net/http"
	"strings"
)

// Match finds the first route in table order whose method equals method and
// whose pattern matches path. It returns nil when nothing matches.
func (t *Table) Match(method Method, path string) *MatchedRoute {
	parts := splitPath(path)

	for _, entry := range t.entries {
		if entry.route.Method != method {
			continue
		}

		// Quick length check before walking segments
		if entry.wildcard {
			if len(parts) < len(entry.segments) {
				continue
			}
		} else if len(parts) != len(entry.segments) {
			continue
		}

		if matched, ok := matchPath(entry, parts); ok {
			return matched
		}
	}

	return nil
}

// MatchRequest matches the method and URL path of r.
func (t *Table) MatchRequest(r *http.Request) *MatchedRoute {
	return t.Match(ParseMethod(r.Method), r.URL.Path)
}

// matchPath walks pattern and request segments pairwise.
func matchPath(entry *routeEntry, parts []string) (*MatchedRoute, bool) {
	var params map[string]string
	matched := &MatchedRoute{Route: entry.route}

	for i, seg := range entry.segments {
		switch seg.kind {
		case segmentWildcard:
			// Needs at least one segment to capture
			if i >= len(parts) {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, 1)
			}
			matched.Wildcard = strings.Join(parts[i:], "/")
			params[WildcardParam] = matched.Wildcard
			matched.Params = params
			return matched, true

		case segmentParam:
			if i >= len(parts) {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, len(entry.segments))
			}
			params[seg.value] = parts[i]

		default:
			if i >= len(parts) || parts[i] != seg.value {
				return nil, false
			}
		}
	}

	// No implicit prefix matching
	if len(parts) != len(entry.segments) {
		return nil, false
	}

	if params == nil {
		params = make(map[string]string)
	}
	matched.Params = params
	return matched, true
}

// Routes returns the table's routes in matching order.
func (t *Table) Routes() []Route {
	routes := make([]Route, len(t.entries))
	for i, entry := range t.entries {
		routes[i] = entry.route
	}
	return routes
}

// Len returns the number of routes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Param returns the value captured for name, or "" if there is none.
func (m *MatchedRoute) Param(name string) string {
	return m.Params[name]
}
