// Package lru implements the intrusive, sentinel-anchored recency
// list that records insertion order of packed placements: the same
// list doubles as the ordered enumeration used for metadata output.
// Nodes are allocated from a caller-supplied arena.Arena and are
// never individually freed — eviction and removal only unlink a node
// from the list and release its tree leaf; the arena slot itself is
// abandoned but retained for the run.
package lru

import (
	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/arena"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/partition"
)

// Item is the constraint on values a Cache can track: comparable so
// it can key the lookup map. An item's placed origin is not part of
// the constraint; Contract asks for it through its located callback.
type Item interface {
	comparable
}

// Node holds one placement: the tree leaf it occupies and the image
// it was assigned to. Both references are non-owning.
type Node[I Item] struct {
	Leaf  *partition.Node
	Image I
	prev  *Node[I]
	next  *Node[I]
}

// Cache is the sentinel-anchored LRU list plus its O(1) lookup.
// Cache.sentinel.next is the most-recently-touched entry;
// Cache.sentinel.prev is the least-recently-touched.
type Cache[I Item] struct {
	nodes       *arena.Arena[Node[I]]
	sentinel    *Node[I]
	lookup      map[I]*Node[I]
	AtlasWidth  int
	AtlasHeight int
}

// New builds an empty cache backed by nodes, which must have room for
// at least one element (the sentinel).
func New[I Item](nodes *arena.Arena[Node[I]]) (*Cache[I], error) {
	_, sentinel, err := nodes.Push()
	if err != nil {
		return nil, errors.Wrap(err, "lru: allocating sentinel")
	}
	sentinel.next = sentinel
	sentinel.prev = sentinel
	return &Cache[I]{
		nodes:    nodes,
		sentinel: sentinel,
		lookup:   make(map[I]*Node[I]),
	}, nil
}

func (c *Cache[I]) insertFirst(n *Node[I]) {
	n.prev = c.sentinel
	n.next = c.sentinel.next
	c.sentinel.next = n
	n.next.prev = n
}

func (c *Cache[I]) unlink(n *Node[I]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

// Insert records that image was placed in leaf. If image is already
// present, it is moved to the front instead of inserting a duplicate
// node. curW/curH are the atlas extent at the moment of insertion.
func (c *Cache[I]) Insert(leaf *partition.Node, image I, curW, curH int) error {
	if existing, ok := c.lookup[image]; ok {
		c.unlink(existing)
		c.insertFirst(existing)
		return nil
	}

	_, n, err := c.nodes.Push()
	if err != nil {
		return errors.Wrap(err, "lru: inserting node")
	}
	n.Leaf = leaf
	n.Image = image
	leaf.IsUsed = true
	c.insertFirst(n)
	c.lookup[image] = n

	c.AtlasWidth = curW
	c.AtlasHeight = curH
	return nil
}

// Evict removes the tail (least-recent) node, freeing its leaf for
// reuse on the next traversal pass, but does not re-merge sibling
// leaves — ancestor merging is explicitly out of scope (see Remove).
// Returns nil if the cache is empty.
func (c *Cache[I]) Evict() *Node[I] {
	if len(c.lookup) == 0 {
		return nil
	}
	tail := c.sentinel.prev
	delete(c.lookup, tail.Image)
	tail.Leaf.IsUsed = false
	tail.Leaf.SplitDir = partition.DirNone
	c.unlink(tail)
	return tail
}

// Remove targets a specific node for eviction, additionally clearing
// its leaf's children — this forcibly collapses what was an internal
// node back into a leaf, which Evict deliberately does not do.
func (c *Cache[I]) Remove(n *Node[I]) {
	if n == nil {
		return
	}
	if _, ok := c.lookup[n.Image]; !ok {
		return
	}
	delete(c.lookup, n.Image)
	n.Leaf.IsUsed = false
	n.Leaf.Left = nil
	n.Leaf.Right = nil
	n.Leaf.SplitDir = partition.DirNone
	c.unlink(n)
}

// Contract walks the list once and removes the first node whose
// image's placed origin lies outside (maxW, maxH), adjusting the
// tracked extent. It stops after the first removal — this is the
// documented behavior, not a bug to "complete" into a full sweep.
func (c *Cache[I]) Contract(maxW, maxH int, located func(I) (x, y int)) {
	for n := c.sentinel.next; n != c.sentinel; n = n.next {
		x, y := located(n.Image)
		if x >= maxW || y >= maxH {
			if x >= maxW {
				c.AtlasWidth -= n.Leaf.Block.Width()
			}
			if y >= maxH {
				c.AtlasHeight -= n.Leaf.Block.Height()
			}
			c.Remove(n)
			return
		}
	}
}

// Clear empties the cache and resets the tracked extent. The
// underlying arena is not released — its slots are simply abandoned,
// matching Evict/Remove's abandon-don't-free policy.
func (c *Cache[I]) Clear() {
	c.lookup = make(map[I]*Node[I])
	c.sentinel.next = c.sentinel
	c.sentinel.prev = c.sentinel
	c.AtlasWidth = 0
	c.AtlasHeight = 0
}

// Len returns the number of entries currently tracked.
func (c *Cache[I]) Len() int {
	return len(c.lookup)
}

// MostRecentFirst returns the cache's images in insertion/touch
// order, most-recent first — the same order the metadata writer
// consumes.
func (c *Cache[I]) MostRecentFirst() []I {
	out := make([]I, 0, len(c.lookup))
	for n := c.sentinel.next; n != c.sentinel; n = n.next {
		out = append(out, n.Image)
	}
	return out
}

// CheckBijection asserts the lookup map and the linked list agree on
// membership. It is a test/debug aid, not called on the hot path.
func (c *Cache[I]) CheckBijection() error {
	seen := make(map[I]struct{}, len(c.lookup))
	count := 0
	for n := c.sentinel.next; n != c.sentinel; n = n.next {
		seen[n.Image] = struct{}{}
		count++
	}
	if count != len(c.lookup) {
		return errors.Wrapf(atlaserr.ErrInvariant, "lru: list has %d entries but lookup has %d", count, len(c.lookup))
	}
	for img := range c.lookup {
		if _, ok := seen[img]; !ok {
			return errors.Wrapf(atlaserr.ErrInvariant, "lru: image %v in lookup but not in list", img)
		}
	}
	return nil
}
