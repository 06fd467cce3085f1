package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haileyok/threadview/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenEdgeStore(filepath.Join(t.TempDir(), "edges.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &thread.Graph{Edges: []thread.Edge{
		{ChildID: 4, ParentID: 1},
		{ChildID: 6, ParentID: 4},
		{ChildID: 9, ParentID: 1},
	}}
	require.NoError(t, store.Record(ctx, "a", g))
	require.NoError(t, store.Record(ctx, "b", &thread.Graph{Edges: []thread.Edge{{ChildID: 2, ParentID: 1}}}))

	replies, err := store.Replies(ctx, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 9}, replies)

	edges, err := store.Edges(ctx, "a")
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, 6, edges[1].CommentID)
	assert.Equal(t, 4, edges[1].ParentID)

	// recording again replaces the source's edges
	require.NoError(t, store.Record(ctx, "a", &thread.Graph{}))
	edges, err = store.Edges(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, edges)

	edges, err = store.Edges(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}
