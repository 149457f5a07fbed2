package partition

import (
	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
)

// Rect is an axis-aligned, inclusive-bounds block: Right and Bottom
// are the last column/row inside the block, not one-past-the-end.
type Rect struct {
	Left, Top, Right, Bottom int
}

// NewRect builds a Rect, requiring both dimensions to be strictly
// positive.
func NewRect(left, top, right, bottom int) (Rect, error) {
	r := Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	if r.Width() <= 0 || r.Height() <= 0 {
		return Rect{}, errors.Wrapf(atlaserr.ErrInvariant, "rect %v has non-positive extent", r)
	}
	return r, nil
}

// Width returns right-left+1.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Height returns bottom-top+1.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Fit reports whether an image of extent (w,h) fits inside r.
func (r Rect) Fit(w, h int) bool {
	return r.Width() >= w && r.Height() >= h
}

// Exact reports whether r's extent matches (w,h) exactly.
func (r Rect) Exact(w, h int) bool {
	return r.Width() == w && r.Height() == h
}

// WidthExact reports whether r's width matches w exactly.
func (r Rect) WidthExact(w int) bool {
	return r.Width() == w
}

// HeightExact reports whether r's height matches h exactly.
func (r Rect) HeightExact(h int) bool {
	return r.Height() == h
}

// PartiallyExact reports width-exact or height-exact.
func (r Rect) PartiallyExact(w, h int) bool {
	return r.WidthExact(w) || r.HeightExact(h)
}
