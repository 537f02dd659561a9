package router

// Route declares one addressable endpoint: a method and a path pattern.
//
// Pattern segments are separated by "/". A segment starting with ":" captures
// the request segment under that name, and a final "*" segment captures the
// rest of the path.
type Route struct {
	Method Method
	Path   string
}

// MatchedRoute is the result of a successful match.
type MatchedRoute struct {
	Route  Route
	Params map[string]string
	// Wildcard holds the path captured by a trailing "*", without a leading slash.
	Wildcard string
}

// Table is an immutable, ordered route table produced by Builder.Build.
type Table struct {
	entries []*routeEntry
}

// Builder accumulates routes for a Table.
type Builder struct {
	routes []Route
	built  bool
}

type routeEntry struct {
	route    Route
	segments []segment
	dynamic  bool
	wildcard bool
}

type segmentKind uint8

const (
	segmentLiteral segmentKind = iota
	segmentParam
	segmentWildcard
)

type segment struct {
	value string
	kind  segmentKind
}
