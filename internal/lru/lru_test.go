package lru

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/arena"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/partition"
)

func newTestCache(t *testing.T, capacity int) *Cache[string] {
	t.Helper()
	nodes, err := arena.New[Node[string]](capacity)
	require.NoError(t, err)
	c, err := New[string](nodes)
	require.NoError(t, err)
	return c
}

func leaf() *partition.Node {
	return &partition.Node{}
}

func TestInsertAndOrder(t *testing.T) {
	c := newTestCache(t, 8)
	require.NoError(t, c.Insert(leaf(), "a", 64, 64))
	require.NoError(t, c.Insert(leaf(), "b", 64, 64))
	require.NoError(t, c.Insert(leaf(), "c", 64, 64))

	require.Equal(t, []string{"c", "b", "a"}, c.MostRecentFirst())
	require.Equal(t, 3, c.Len())
	require.NoError(t, c.CheckBijection())
}

func TestInsertExistingMovesToFront(t *testing.T) {
	c := newTestCache(t, 8)
	require.NoError(t, c.Insert(leaf(), "a", 64, 64))
	require.NoError(t, c.Insert(leaf(), "b", 64, 64))
	require.NoError(t, c.Insert(leaf(), "a", 64, 64))

	require.Equal(t, []string{"a", "b"}, c.MostRecentFirst())
	require.Equal(t, 2, c.Len())
}

func TestEvictRemovesTail(t *testing.T) {
	c := newTestCache(t, 8)
	l1, l2 := leaf(), leaf()
	require.NoError(t, c.Insert(l1, "a", 64, 64))
	require.NoError(t, c.Insert(l2, "b", 64, 64))

	evicted := c.Evict()
	require.NotNil(t, evicted)
	require.Equal(t, "a", evicted.Image)
	require.False(t, l1.IsUsed)
	require.Equal(t, partition.DirNone, l1.SplitDir)
	require.Equal(t, 1, c.Len())
	require.NoError(t, c.CheckBijection())
}

func TestEvictEmptyReturnsNil(t *testing.T) {
	c := newTestCache(t, 8)
	require.Nil(t, c.Evict())
}

func TestRemoveDemotesLeafParent(t *testing.T) {
	c := newTestCache(t, 8)
	l := leaf()
	l.Left = leaf()
	l.Right = leaf()
	require.NoError(t, c.Insert(l, "a", 64, 64))

	n, ok := c.lookup["a"]
	require.True(t, ok)
	c.Remove(n)

	require.Nil(t, l.Left)
	require.Nil(t, l.Right)
	require.Equal(t, partition.DirNone, l.SplitDir)
	require.Equal(t, 0, c.Len())
}

func TestContractStopsAfterFirstRemoval(t *testing.T) {
	c := newTestCache(t, 8)
	positions := map[string][2]int{
		"a": {70, 10},
		"b": {80, 10},
	}
	require.NoError(t, c.Insert(leaf(), "a", 100, 100))
	require.NoError(t, c.Insert(leaf(), "b", 100, 100))
	c.AtlasWidth, c.AtlasHeight = 100, 100

	located := func(img string) (int, int) {
		p := positions[img]
		return p[0], p[1]
	}
	c.Contract(64, 64, located)

	// Only one of the two out-of-bounds entries is removed, whichever
	// the walk reaches first (list order is most-recent-first: b, a).
	require.Equal(t, 1, c.Len())
	require.NoError(t, c.CheckBijection())
}

func TestClearResetsState(t *testing.T) {
	c := newTestCache(t, 8)
	require.NoError(t, c.Insert(leaf(), "a", 64, 64))
	c.Clear()
	require.Equal(t, 0, c.Len())
	require.Equal(t, 0, c.AtlasWidth)
	require.Equal(t, 0, c.AtlasHeight)
	require.Equal(t, []string{}, c.MostRecentFirst())
}
