package partition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/arena"
)

func newTestTree(t *testing.T, capacity, seedW, seedH, maxW, maxH int) *Tree {
	t.Helper()
	nodes, err := arena.New[Node](capacity)
	require.NoError(t, err)
	tree, err := New(nodes, seedW, seedH, maxW, maxH)
	require.NoError(t, err)
	return tree
}

func noopFill(*Node) {}

func TestTraverseExactFit(t *testing.T) {
	tree := newTestTree(t, 16, 16, 16, 64, 64)
	leaf, _, err := tree.Traverse(16, 16, noopFill)
	require.NoError(t, err)
	require.NotNil(t, leaf)
	require.True(t, leaf.IsUsed)
	require.Equal(t, 16, leaf.Block.Width())
	require.Equal(t, 16, leaf.Block.Height())
}

func TestTraversePartiallyExactSplit(t *testing.T) {
	tree := newTestTree(t, 16, 32, 32, 64, 64)
	leaf, _, err := tree.Traverse(32, 16, noopFill)
	require.NoError(t, err)
	require.NotNil(t, leaf)
	require.Equal(t, 32, leaf.Block.Width())
	require.Equal(t, 16, leaf.Block.Height())
	require.Equal(t, DirVertical, tree.Root.SplitDir)
}

func TestTraverseInteriorFitLShape(t *testing.T) {
	tree := newTestTree(t, 16, 32, 32, 64, 64)
	leaf, _, err := tree.Traverse(10, 8, noopFill)
	require.NoError(t, err)
	require.NotNil(t, leaf)
	require.Equal(t, 10, leaf.Block.Width())
	require.Equal(t, 8, leaf.Block.Height())
	require.Equal(t, tree.Root.Left.Left, leaf)
}

func TestTraverseNoFitReturnsNil(t *testing.T) {
	tree := newTestTree(t, 16, 8, 8, 64, 64)
	leaf, _, err := tree.Traverse(32, 32, noopFill)
	require.NoError(t, err)
	require.Nil(t, leaf)
}

func TestExpandVerticallyGrowsBelow(t *testing.T) {
	tree := newTestTree(t, 16, 32, 32, 64, 64)
	require.NoError(t, tree.ExpandVertically(16))
	require.Equal(t, DirVertical, tree.Root.SplitDir)
	require.Equal(t, 32, tree.Root.Block.Width())
	require.Equal(t, 48, tree.Root.Block.Height())
	require.Equal(t, 32, tree.Root.Right.Block.Top)
}

func TestExpandHorizontallyGrowsRight(t *testing.T) {
	tree := newTestTree(t, 16, 32, 32, 64, 64)
	require.NoError(t, tree.ExpandHorizontally(16))
	require.Equal(t, DirHorizontal, tree.Root.SplitDir)
	require.Equal(t, 48, tree.Root.Block.Width())
	require.Equal(t, 32, tree.Root.Block.Height())
	require.Equal(t, 32, tree.Root.Right.Block.Left)
}

func TestFreeFillIsIdempotent(t *testing.T) {
	// Seed smaller than what we ask to place so the root leaf never
	// fits and is never split; it stays the same leaf across calls.
	tree := newTestTree(t, 16, 16, 16, 64, 64)
	var fillCount int
	fill := func(*Node) { fillCount++ }

	leaf, _, err := tree.Traverse(32, 32, fill)
	require.NoError(t, err)
	require.Nil(t, leaf)
	require.Equal(t, 1, fillCount)

	leaf, _, err = tree.Traverse(48, 48, fill)
	require.NoError(t, err)
	require.Nil(t, leaf)
	require.Equal(t, 1, fillCount, "a leaf must only be filled once across the whole run")
}

func TestSplitConsistency(t *testing.T) {
	tree := newTestTree(t, 16, 32, 32, 64, 64)
	_, _, err := tree.Traverse(10, 30, noopFill)
	require.NoError(t, err)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			return
		}
		switch n.SplitDir {
		case DirVertical:
			require.Equal(t, n.Block.Height(), n.Left.Block.Height()+n.Right.Block.Height())
			require.Equal(t, n.Block.Width(), n.Left.Block.Width())
			require.Equal(t, n.Block.Width(), n.Right.Block.Width())
		case DirHorizontal:
			require.Equal(t, n.Block.Width(), n.Left.Block.Width()+n.Right.Block.Width())
			require.Equal(t, n.Block.Height(), n.Left.Block.Height())
			require.Equal(t, n.Block.Height(), n.Right.Block.Height())
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(tree.Root)
}
