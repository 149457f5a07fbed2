// Package render blits packed pixel data into the atlas buffer and
// paints the diagnostic free-fill color into unused leaves as the
// packer discovers them. It knows nothing about images or the LRU
// cache — only raw pixel buffers, pitches, and the partition blocks
// the packer hands it.
package render

import (
	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/partition"
)

// FreeFillColor is the solid diagnostic color painted into free,
// undrawn leaves: 0xFFFF00FF interpreted as packed BGRA/RGBA bytes.
var FreeFillColor = [4]byte{0xFF, 0x00, 0xFF, 0xFF}

// FillBlock paints FreeFillColor into every pixel of block within
// atlas, a bpp-interleaved buffer whose rows are atlasWidth*bpp bytes.
func FillBlock(atlas []byte, atlasWidth, bpp int, block partition.Rect) error {
	pitch := atlasWidth * bpp
	for row := 0; row < block.Height(); row++ {
		rowStart := (block.Top+row)*pitch + block.Left*bpp
		for col := 0; col < block.Width(); col++ {
			dst := atlas[rowStart+col*bpp : rowStart+col*bpp+bpp]
			copyColor(dst, bpp)
		}
	}
	return nil
}

func copyColor(dst []byte, bpp int) {
	for i := 0; i < bpp && i < len(FreeFillColor); i++ {
		dst[i] = FreeFillColor[i]
	}
	for i := len(FreeFillColor); i < bpp; i++ {
		dst[i] = 0xFF
	}
}

// Blit copies src (width srcW, height srcH, bpp bytes per pixel,
// tightly packed rows) into atlas at (x,y). Row stride is
// atlasWidth*bpp for the destination and srcW*bpp for the source; no
// colorspace conversion or premultiplication is performed.
func Blit(atlas []byte, atlasWidth, bpp int, x, y int, src []byte, srcW, srcH int) error {
	atlasPitch := atlasWidth * bpp
	srcPitch := srcW * bpp

	if len(src) < srcPitch*srcH {
		return errors.Wrapf(atlaserr.ErrInvariant, "render: source buffer too small for %dx%d at %d bpp", srcW, srcH, bpp)
	}

	for row := 0; row < srcH; row++ {
		dstOffset := (y+row)*atlasPitch + x*bpp
		srcOffset := row * srcPitch
		if dstOffset+srcPitch > len(atlas) {
			return errors.Wrapf(atlaserr.ErrInvariant, "render: blit at (%d,%d) size %dx%d exceeds atlas bounds", x, y, srcW, srcH)
		}
		copy(atlas[dstOffset:dstOffset+srcPitch], src[srcOffset:srcOffset+srcPitch])
	}
	return nil
}
