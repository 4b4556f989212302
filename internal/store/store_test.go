package store

import (
	"testing"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) graph.Store[string, string] {
	t.Helper()

	return NewMemoryStore[string, string]()
}

func TestAddVertex(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{}))

	err := s.AddVertex("a", "a", graph.VertexProperties{})
	assert.ErrorIs(t, err, graph.ErrVertexAlreadyExists)

	count, err := s.VertexCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = s.Vertex("missing")
	assert.ErrorIs(t, err, graph.ErrVertexNotFound)
}

func TestEdges(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("b", "b", graph.VertexProperties{}))

	_, err := s.Edge("a", "b")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)

	require.NoError(t, s.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))

	edge, err := s.Edge("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", edge.Source)
	assert.Equal(t, "b", edge.Target)

	edges, err := s.ListEdges()
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	require.NoError(t, s.RemoveEdge("a", "b"))
	_, err = s.Edge("a", "b")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
}

func TestRemoveVertexWithEdges(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("b", "b", graph.VertexProperties{}))
	require.NoError(t, s.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))

	err := s.RemoveVertex("b")
	assert.ErrorIs(t, err, graph.ErrVertexHasEdges)

	require.NoError(t, s.RemoveEdge("a", "b"))
	require.NoError(t, s.RemoveVertex("b"))
}

func TestCreatesCycle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore[string, string]().(*MemoryStore[string, string])
	require.NoError(t, s.AddVertex("a", "a", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("b", "b", graph.VertexProperties{}))
	require.NoError(t, s.AddVertex("c", "c", graph.VertexProperties{}))
	require.NoError(t, s.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))
	require.NoError(t, s.AddEdge("b", "c", graph.Edge[string]{Source: "b", Target: "c"}))

	creates, err := s.CreatesCycle("c", "a")
	require.NoError(t, err)
	assert.True(t, creates)

	creates, err = s.CreatesCycle("a", "c")
	require.NoError(t, err)
	assert.False(t, creates)

	creates, err = s.CreatesCycle("a", "a")
	require.NoError(t, err)
	assert.True(t, creates)

	_, err = s.CreatesCycle("missing", "a")
	assert.Error(t, err)
}

func TestPreventCyclesThroughGraph(t *testing.T) {
	t.Parallel()

	g := graph.NewWithStore(graph.StringHash, NewMemoryStore[string, string](), graph.Directed(), graph.PreventCycles())
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))
	require.NoError(t, g.AddEdge("a", "b"))

	err := g.AddEdge("b", "a")
	assert.ErrorIs(t, err, graph.ErrEdgeCreatesCycle)
}
