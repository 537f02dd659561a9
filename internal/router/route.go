package router

// NewRoute creates a route for any method, including non-standard ones.
// The path is stored as given; it is validated when the table is built.
func NewRoute(method Method, path string) Route {
	return Route{Method: method, Path: path}
}

// Get creates a new GET route.
func Get(path string) Route { return NewRoute(MethodGet, path) }

// Post creates a new POST route.
func Post(path string) Route { return NewRoute(MethodPost, path) }

// Put creates a new PUT route.
func Put(path string) Route { return NewRoute(MethodPut, path) }

// Patch creates a new PATCH route.
func Patch(path string) Route { return NewRoute(MethodPatch, path) }

// Delete creates a new DELETE route.
func Delete(path string) Route { return NewRoute(MethodDelete, path) }

// Head creates a new HEAD route.
func Head(path string) Route { return NewRoute(MethodHead, path) }

// Options creates a new OPTIONS route.
func Options(path string) Route { return NewRoute(MethodOptions, path) }

// String renders the route as "METHOD /path".
func (r Route) String() string {
	return r.Method.String() + " " + r.Path
}
