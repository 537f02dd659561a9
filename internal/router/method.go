package router

// Method is an HTTP request method. Verbs outside the standard set are
// carried verbatim and compared by exact string.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var standardMethods = map[Method]struct{}{
	MethodGet:     {},
	MethodHead:    {},
	MethodPost:    {},
	MethodPut:     {},
	MethodDelete:  {},
	MethodConnect: {},
	MethodOptions: {},
	MethodTrace:   {},
	MethodPatch:   {},
}

// ParseMethod returns the Method for a verb. No case folding is applied, so
// "get" is a non-standard method distinct from MethodGet.
func ParseMethod(verb string) Method {
	return Method(verb)
}

// IsStandard reports whether m is one of the nine standard HTTP methods.
func (m Method) IsStandard() bool {
	_, ok := standardMethods[m]
	return ok
}

func (m Method) String() string {
	return string(m)
}
