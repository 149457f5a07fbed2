package packer

import "github.com/Vivaldi101/SimpleTextureAtlas/internal/imageio"

// Image is one source texture going into an atlas: its decoded
// pixels, its assigned position once packed, and the bookkeeping
// duplicate detection needs.
type Image struct {
	Name   string
	Pixels []byte
	Width  int
	Height int
	BPP    int

	X, Y int

	hash        uint64
	duplicateOf *Image
}

// NewImage wraps a decoded source image under name, computing its
// content hash up front so duplicate detection never re-hashes.
func NewImage(name string, src imageio.Image) *Image {
	return &Image{
		Name:   name,
		Pixels: src.Pixels,
		Width:  src.Width,
		Height: src.Height,
		BPP:    src.BPP,
		hash:   imageio.HashBytes(src.Pixels),
	}
}

// Position satisfies the lru.Cache Contract callback signature.
func (img *Image) Position() (int, int) {
	return img.X, img.Y
}

// IsDuplicate reports whether img was merged onto another placed
// image rather than occupying a tree leaf of its own.
func (img *Image) IsDuplicate() bool {
	return img.duplicateOf != nil
}

// DuplicateOf returns the image this one was merged onto, or nil.
func (img *Image) DuplicateOf() *Image {
	return img.duplicateOf
}
