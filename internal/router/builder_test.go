package router

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SortsStaticBeforeDynamic(t *testing.T) {
	t.Parallel()

	table, err := NewBuilder().
		AddMany(Get("/posts/:id"), Get("/posts/1")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, []Route{Get("/posts/1"), Get("/posts/:id")}, table.Routes())
}

func TestBuilder_PartitionIsStable(t *testing.T) {
	t.Parallel()

	table, err := NewBuilder().
		Add(Get("/a/:x")).
		Add(Get("/b")).
		Add(Get("/c/*")).
		Add(Post("/d")).
		Add(Get("/e/:y")).
		Add(Get("/f")).
		Build()
	require.NoError(t, err)

	expected := []Route{
		Get("/b"),
		Post("/d"),
		Get("/f"),
		Get("/a/:x"),
		Get("/c/*"),
		Get("/e/:y"),
	}
	assert.Equal(t, expected, table.Routes())
	assert.Equal(t, len(expected), table.Len())
}

func TestBuilder_KeepsDuplicates(t *testing.T) {
	t.Parallel()

	table, err := NewBuilder().
		AddMany(Get("/"), Get("/")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
}

func TestBuilder_AddManyEqualsRepeatedAdd(t *testing.T) {
	t.Parallel()

	routes := []Route{Get("/"), Get("/posts/:id"), Post("/posts"), Get("/posts")}

	viaMany, err := NewBuilder().AddMany(routes...).Build()
	require.NoError(t, err)

	single := NewBuilder()
	for _, r := range routes {
		single.Add(r)
	}
	viaAdd, err := single.Build()
	require.NoError(t, err)

	assert.Equal(t, viaAdd.Routes(), viaMany.Routes())
}

func TestBuilder_Consumed(t *testing.T) {
	t.Parallel()

	b := NewBuilder().Add(Get("/"))

	table, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)

	assert.Panics(t, func() { b.Add(Get("/late")) })
	assert.Panics(t, func() { b.AddMany(Get("/late")) })

	// The published table is unaffected
	assert.Equal(t, []Route{Get("/")}, table.Routes())
}

func TestBuilder_RoutesReturnsCopy(t *testing.T) {
	t.Parallel()

	table, err := NewBuilder().Add(Get("/posts")).Build()
	require.NoError(t, err)

	routes := table.Routes()
	routes[0] = Get("/hijacked")

	assert.NotNil(t, table.Match(MethodGet, "/posts"))
	assert.Nil(t, table.Match(MethodGet, "/hijacked"))
}

func TestBuilder_InvalidPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		route  Route
		reason string
	}{
		{"empty param name", Get("/posts/:"), "has no name"},
		{"duplicate param", Get("/a/:id/b/:id"), "duplicate parameter"},
		{"mid-path wildcard", Get("/files/*/meta"), "wildcard must be the last segment"},
		{"two wildcards", Get("/files/*/*"), "wildcard must be the last segment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuilder().
				AddMany(Get("/ok"), tc.route).
				Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPattern)
			assert.Contains(t, err.Error(), tc.reason)

			var pe *PatternError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.route, pe.Route)
		})
	}
}

func TestBuilder_LiteralLookalikes(t *testing.T) {
	t.Parallel()

	// Only a leading ':' or a bare '*' is special
	table, err := NewBuilder().
		AddMany(Get("/a*b"), Get("/time/12:30"), Get("/**")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, []Route{Get("/a*b"), Get("/time/12:30"), Get("/**")}, table.Routes())
	assert.NotNil(t, table.Match(MethodGet, "/a*b"))
	assert.NotNil(t, table.Match(MethodGet, "/time/12:30"))
	assert.Nil(t, table.Match(MethodGet, "/anything"))
}

func TestPatternError_Is(t *testing.T) {
	t.Parallel()

	err := newPatternError(Get("/x"), "bad %s", "thing")
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	// Field-level inspection goes through errors.As, not Is
	assert.False(t, errors.Is(err, &PatternError{Route: Get("/x"), Reason: "bad thing"}))
	var pe *PatternError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &pe))
	assert.Equal(t, "bad thing", pe.Reason)
	assert.False(t, errors.Is(err, ErrBuilderConsumed))
	assert.Equal(t, `invalid route pattern "/x" for GET: bad thing`, err.Error())
}
