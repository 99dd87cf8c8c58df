package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

func TestChunkLinksByParent(t *testing.T) {
	_, links, _, _ := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, links.AddLinks(ctx,
		&core.ChunkLink{ParentID: 1, VectorID: "v1"},
		&core.ChunkLink{ParentID: 1, VectorID: "v2"},
		&core.ChunkLink{ParentID: 2, VectorID: "v3"},
	))

	got, err := links.GetLinksByParent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, link := range got {
		assert.Equal(t, core.ParentID(1), link.ParentID)
	}

	other, err := links.GetLinksByParent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "v3", other[0].VectorID)
}

func TestGetLinksByParentEmpty(t *testing.T) {
	_, links, _, _ := setupRepos(t)

	got, err := links.GetLinksByParent(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteLinksByParent(t *testing.T) {
	_, links, _, _ := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, links.AddLinks(ctx,
		&core.ChunkLink{ParentID: 5, VectorID: "v1"},
		&core.ChunkLink{ParentID: 5, VectorID: "v2"},
		&core.ChunkLink{ParentID: 6, VectorID: "v3"},
	))

	require.NoError(t, links.DeleteLinksByParent(ctx, 5))
	// Deleting an already-empty parent is not an error
	require.NoError(t, links.DeleteLinksByParent(ctx, 5))

	got, err := links.GetLinksByParent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	kept, err := links.GetLinksByParent(ctx, 6)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestParentChunkRoundtrip(t *testing.T) {
	_, _, parents, _ := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, parents.PutParentChunks(ctx, &core.ParentChunk{
		Key:  "key-1",
		Text: "original text",
	}))

	got, err := parents.GetParentChunk(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "original text", got.Text)

	_, err = parents.GetParentChunk(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
