// Package router resolves request paths against a declared set of routes.
//
// Routes are declared with a method and a path pattern. Pattern segments are
// literals, named parameters (":id") or a trailing wildcard ("*") that
// captures one or more remaining segments.
//
// # Usage
//
//	table, err := router.NewBuilder().
//		AddMany(
//			router.Get("/posts"),
//			router.Get("/posts/:id"),
//			router.Get("/static/*"),
//		).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if m := table.Match(router.MethodGet, "/posts/3"); m != nil {
//		id := m.Param("id") // "3"
//	}
//
// A Table is immutable once built and may be shared by any number of
// goroutines. Matching is a linear, first-match-wins scan; Build places
// static routes ahead of dynamic ones so that "/posts/1" wins over
// "/posts/:id" regardless of declaration order.
package router
