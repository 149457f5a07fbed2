// Package partition implements the growing binary space-partitioning
// tree at the heart of the atlas packer: leaves are free or occupied
// axis-aligned blocks, splits carve a fitting leaf down to an image's
// exact extent, and root expansion grows the tree along its shorter
// axis when nothing fits. Every node is owned by the caller-supplied
// arena.Arena[Node]; a Tree only ever holds non-owning pointers into
// it.
package partition

import (
	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/arena"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
)

// Tree is the BSP tree rooted at Root, backed by Nodes.
type Tree struct {
	Nodes               *arena.Arena[Node]
	Root                *Node
	MaxWidth, MaxHeight int
}

// New seeds a tree whose root is a single free leaf sized to the
// first image, per the packer's "first image seeds the atlas" rule.
func New(nodes *arena.Arena[Node], seedWidth, seedHeight, maxWidth, maxHeight int) (*Tree, error) {
	block, err := NewRect(0, 0, seedWidth-1, seedHeight-1)
	if err != nil {
		return nil, err
	}
	_, root, err := nodes.Push()
	if err != nil {
		return nil, err
	}
	root.Block = block
	return &Tree{Nodes: nodes, Root: root, MaxWidth: maxWidth, MaxHeight: maxHeight}, nil
}

// splitHorizontal introduces a vertical cut at left+w-1: a left child
// holding the image-sized column and a right child holding the
// remainder, side by side.
func splitHorizontal(nodes *arena.Arena[Node], node *Node, w int) error {
	left, err := NewRect(node.Block.Left, node.Block.Top, node.Block.Left+w-1, node.Block.Bottom)
	if err != nil {
		return err
	}
	right, err := NewRect(left.Right+1, node.Block.Top, node.Block.Right, node.Block.Bottom)
	if err != nil {
		return err
	}
	_, leftNode, err := nodes.Push()
	if err != nil {
		return err
	}
	_, rightNode, err := nodes.Push()
	if err != nil {
		return err
	}
	leftNode.Block = left
	rightNode.Block = right
	node.SplitDir = DirHorizontal
	node.Left = leftNode
	node.Right = rightNode
	return nil
}

// splitVertical introduces a horizontal cut at top+h-1: a left child
// holding the image-sized row and a right child holding the
// remainder, stacked top to bottom.
func splitVertical(nodes *arena.Arena[Node], node *Node, h int) error {
	left, err := NewRect(node.Block.Left, node.Block.Top, node.Block.Right, node.Block.Top+h-1)
	if err != nil {
		return err
	}
	right, err := NewRect(node.Block.Left, left.Bottom+1, node.Block.Right, node.Block.Bottom)
	if err != nil {
		return err
	}
	_, leftNode, err := nodes.Push()
	if err != nil {
		return err
	}
	_, rightNode, err := nodes.Push()
	if err != nil {
		return err
	}
	leftNode.Block = left
	rightNode.Block = right
	node.SplitDir = DirVertical
	node.Left = leftNode
	node.Right = rightNode
	return nil
}

// findFirstFreeBlock resolves a fitting leaf n against an image of
// extent (w,h): exact fit uses n directly, a partially-exact fit
// splits once, and a strict interior fit splits twice to carve an
// L-shaped remainder, always returning the image-sized leaf marked
// used.
func findFirstFreeBlock(nodes *arena.Arena[Node], n *Node, w, h int) (*Node, error) {
	if !n.Block.Fit(w, h) {
		return nil, nil
	}

	switch {
	case n.Block.Exact(w, h):
		n.IsUsed = true
		return n, nil

	case n.Block.PartiallyExact(w, h):
		if n.Block.WidthExact(w) {
			if err := splitVertical(nodes, n, h); err != nil {
				return nil, err
			}
		} else {
			if err := splitHorizontal(nodes, n, w); err != nil {
				return nil, err
			}
		}
		n.Left.IsUsed = true
		return n.Left, nil

	default:
		if h > w {
			if err := splitHorizontal(nodes, n, w); err != nil {
				return nil, err
			}
			if err := splitVertical(nodes, n.Left, h); err != nil {
				return nil, err
			}
		} else {
			if err := splitVertical(nodes, n, h); err != nil {
				return nil, err
			}
			if err := splitHorizontal(nodes, n.Left, w); err != nil {
				return nil, err
			}
		}
		n.Left.Left.IsUsed = true
		return n.Left.Left, nil
	}
}

// Traverse walks the tree depth-first, left-biased, looking for a
// leaf that fits (w,h). onFreeLeaf is invoked at most once per free,
// undrawn leaf encountered along the way (the diagnostic free-fill),
// even if that leaf is later split and overwritten. The returned path
// records the internal nodes descended into; no caller outside this
// package uses it.
func (t *Tree) Traverse(w, h int, onFreeLeaf func(*Node)) (*Node, []*Node, error) {
	var path []*Node
	result, err := t.traverse(t.Root, w, h, onFreeLeaf, &path)
	return result, path, err
}

func (t *Tree) traverse(node *Node, w, h int, onFreeLeaf func(*Node), path *[]*Node) (*Node, error) {
	for node != nil {
		if node.IsLeaf() && !node.IsUsed && !node.IsDrawn {
			onFreeLeaf(node)
			node.IsDrawn = true
		}

		if node.IsLeaf() {
			if node.IsUsed {
				return nil, nil
			}
			return findFirstFreeBlock(t.Nodes, node, w, h)
		}

		if node.Left == nil || node.Right == nil {
			return nil, errors.Wrap(atlaserr.ErrInvariant, "internal node has exactly one child")
		}

		var result *Node
		var err error
		switch node.SplitDir {
		case DirVertical:
			atlaserr.Assert(node.Block.Height() == node.Left.Block.Height()+node.Right.Block.Height(),
				"vertical split height mismatch")
			if h <= node.Left.Block.Height() {
				*path = append(*path, node)
				result, err = t.traverse(node.Left, w, h, onFreeLeaf, path)
				if err != nil {
					return nil, err
				}
			}
		case DirHorizontal:
			atlaserr.Assert(node.Block.Width() == node.Left.Block.Width()+node.Right.Block.Width(),
				"horizontal split width mismatch")
			if w <= node.Left.Block.Width() {
				*path = append(*path, node)
				result, err = t.traverse(node.Left, w, h, onFreeLeaf, path)
				if err != nil {
					return nil, err
				}
			}
		}

		if result != nil {
			return result, nil
		}
		node = node.Right
	}

	return nil, nil
}

// ExpandVertically grows the root by height along the vertical axis:
// the new root is a VERTICAL-split internal node whose left is the
// old root and whose right is a free leaf of the old root's width,
// placed below it.
func (t *Tree) ExpandVertically(height int) error {
	oldRoot := t.Root
	free, err := NewRect(oldRoot.Block.Left, oldRoot.Block.Height(), oldRoot.Block.Right, oldRoot.Block.Height()+height-1)
	if err != nil {
		return err
	}
	grown, err := NewRect(oldRoot.Block.Left, oldRoot.Block.Top, oldRoot.Block.Right, oldRoot.Block.Top+oldRoot.Block.Height()+height-1)
	if err != nil {
		return err
	}

	_, root, err := t.Nodes.Push()
	if err != nil {
		return err
	}
	_, right, err := t.Nodes.Push()
	if err != nil {
		return err
	}

	right.Block = free
	root.Block = grown
	root.SplitDir = DirVertical
	root.Left = oldRoot
	root.Right = right

	t.Root = root
	return nil
}

// ExpandHorizontally grows the root by width along the horizontal
// axis: the new root is a HORIZONTAL-split internal node whose right
// is a free leaf of the old root's height, placed to the right of it.
func (t *Tree) ExpandHorizontally(width int) error {
	oldRoot := t.Root
	free, err := NewRect(oldRoot.Block.Width(), oldRoot.Block.Top, oldRoot.Block.Width()+width-1, oldRoot.Block.Bottom)
	if err != nil {
		return err
	}
	grown, err := NewRect(oldRoot.Block.Left, oldRoot.Block.Top, oldRoot.Block.Left+oldRoot.Block.Width()+width-1, oldRoot.Block.Bottom)
	if err != nil {
		return err
	}

	_, root, err := t.Nodes.Push()
	if err != nil {
		return err
	}
	_, right, err := t.Nodes.Push()
	if err != nil {
		return err
	}

	right.Block = free
	root.Block = grown
	root.SplitDir = DirHorizontal
	root.Left = oldRoot
	root.Right = right

	t.Root = root
	return nil
}
