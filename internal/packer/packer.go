// Package packer drives the BSP tree, the LRU eviction cache, and the
// renderer to place a batch of decoded images into a single atlas.
package packer

import (
	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/arena"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/lru"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/partition"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/render"
)

// Result is the output of one Pack run: the atlas pixel buffer (sized
// to cfg.TextureWidth x cfg.TextureHeight regardless of how much of
// it ended up used), the final clamped extent, and the images in the
// order the metadata writer should emit them.
type Result struct {
	AtlasPixels []byte
	AtlasStride int
	AtlasWidth  int
	AtlasHeight int
	BPP         int

	// Placed holds every non-duplicate image still holding a leaf when
	// packing ends (evicted and dropped images are absent),
	// most-recently-touched first — the same order the LRU list
	// tracks internally.
	Placed []*Image

	// Duplicates holds every image merged onto an existing placement,
	// in input order, each carrying a non-nil DuplicateOf.
	Duplicates []*Image
}

// Pack places images into a single atlas per cfg. It mutates each
// Image's X/Y in place as a side effect and never rotates or resizes
// source pixels.
func Pack(images []*Image, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(images) == 0 {
		return nil, errors.Wrap(atlaserr.ErrUsage, "packer: no images to pack")
	}

	bpp := images[0].BPP
	for _, img := range images[1:] {
		if img.BPP != bpp {
			return nil, errors.Wrapf(atlaserr.ErrData, "packer: bytes-per-pixel mismatch: %q has %d, expected %d", img.Name, img.BPP, bpp)
		}
	}
	if bpp != cfg.BytesPerPixel {
		return nil, errors.Wrapf(atlaserr.ErrData, "packer: images are %d bytes per pixel, config expects %d", bpp, cfg.BytesPerPixel)
	}

	if cfg.Merge {
		markDuplicates(images)
	}

	placeable := make([]*Image, 0, len(images))
	duplicates := make([]*Image, 0)
	for _, img := range images {
		if img.duplicateOf != nil {
			duplicates = append(duplicates, img)
		} else {
			placeable = append(placeable, img)
		}
	}
	if len(placeable) == 0 {
		return nil, errors.Wrap(atlaserr.ErrUsage, "packer: no unique images to pack")
	}

	sortForPacking(placeable)

	n := len(placeable)
	nodeArena, err := arena.New[partition.Node](arena.TreeNodeArenaSize(n))
	if err != nil {
		return nil, errors.Wrap(err, "packer: allocating node arena")
	}
	lruNodeArena, err := arena.New[lru.Node[*Image]](arena.LRUArenaSize(n))
	if err != nil {
		return nil, errors.Wrap(err, "packer: allocating lru arena")
	}
	cache, err := lru.New[*Image](lruNodeArena)
	if err != nil {
		return nil, errors.Wrap(err, "packer: building lru cache")
	}

	atlasStride := cfg.TextureWidth * bpp
	atlasPixels := make([]byte, atlasStride*cfg.TextureHeight)

	seed := placeable[0]
	tree, err := partition.New(nodeArena, seed.Width, seed.Height, cfg.TextureWidth, cfg.TextureHeight)
	if err != nil {
		return nil, errors.Wrap(err, "packer: seeding tree")
	}

	fill := func(node *partition.Node) {
		_ = render.FillBlock(atlasPixels, cfg.TextureWidth, bpp, node.Block)
	}

	for i := 0; i < len(placeable); {
		img := placeable[i]

		leaf, _, err := tree.Traverse(img.Width, img.Height, fill)
		if err != nil {
			return nil, errors.Wrap(err, "packer: traversing tree")
		}

		if leaf != nil {
			img.X, img.Y = leaf.Block.Left, leaf.Block.Top
			if err := cache.Insert(leaf, img, tree.Root.Block.Width(), tree.Root.Block.Height()); err != nil {
				return nil, errors.Wrap(err, "packer: inserting into lru")
			}
			i++
			continue
		}

		if expanded, err := expandRoot(tree, img, cfg); err != nil {
			return nil, err
		} else if expanded {
			continue
		}

		if cache.Len() == 0 {
			// Nowhere to place this image and nothing left to evict:
			// drop it silently, matching the documented behavior.
			i++
			continue
		}
		cache.Evict()
	}

	atlasWidth := min(tree.Root.Block.Width(), cfg.TextureWidth)
	atlasHeight := min(tree.Root.Block.Height(), cfg.TextureHeight)
	cache.AtlasWidth = atlasWidth
	cache.AtlasHeight = atlasHeight

	for _, img := range cache.MostRecentFirst() {
		if err := render.Blit(atlasPixels, cfg.TextureWidth, bpp, img.X, img.Y, img.Pixels, img.Width, img.Height); err != nil {
			return nil, errors.Wrap(err, "packer: blitting placed image")
		}
	}

	for _, dup := range duplicates {
		dup.X, dup.Y = dup.duplicateOf.X, dup.duplicateOf.Y
	}

	return &Result{
		AtlasPixels: atlasPixels,
		AtlasStride: atlasStride,
		AtlasWidth:  atlasWidth,
		AtlasHeight: atlasHeight,
		BPP:         bpp,
		Placed:      cache.MostRecentFirst(),
		Duplicates:  duplicates,
	}, nil
}

// expandRoot attempts root growth for img against tree, honoring
// cfg.CorrectedExpansionCaps. Returns (true, nil) if the root grew and
// the caller should retry the same image without advancing.
func expandRoot(tree *partition.Tree, img *Image, cfg *Config) (bool, error) {
	vNew := tree.Root.Block.Height() + img.Height
	hNew := tree.Root.Block.Width() + img.Width

	// Vnew is compared against maxWidth and Hnew against maxHeight, a
	// dimensionally crossed pairing. CorrectedExpansionCaps swaps the
	// two caps back to their matching axes.
	capForVertical, capForHorizontal := cfg.TextureWidth, cfg.TextureHeight
	if cfg.CorrectedExpansionCaps {
		capForVertical, capForHorizontal = cfg.TextureHeight, cfg.TextureWidth
	}

	switch {
	case vNew < hNew && vNew <= capForVertical:
		if err := tree.ExpandVertically(img.Height); err != nil {
			return false, errors.Wrap(err, "packer: expanding vertically")
		}
		return true, nil
	case vNew >= hNew && hNew <= capForHorizontal:
		if err := tree.ExpandHorizontally(img.Width); err != nil {
			return false, errors.Wrap(err, "packer: expanding horizontally")
		}
		return true, nil
	}
	return false, nil
}
