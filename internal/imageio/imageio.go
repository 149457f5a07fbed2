// Package imageio decodes source textures and encodes the packed
// atlas, plus the content hash the packer uses for duplicate
// detection. It knows nothing about partitioning or the LRU cache —
// only bytes in, bytes out.
package imageio

import (
	"hash/crc64"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Blank-imported so image.Decode can round-trip the formats the
	// ecosystem commonly produces, beyond the PNG the core path needs.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
)

var crcTable = crc64.MakeTable(crc64.ECMA)

// Image is a decoded, 8-bit-per-channel RGBA pixel buffer. Rows are
// tightly packed (no padding between scanlines) unless Stride says
// otherwise.
type Image struct {
	Pixels []byte
	Width  int
	Height int
	BPP    int
	// Stride is the byte distance between scanlines. Zero means
	// tightly packed (Width*BPP) — set explicitly when Pixels backs a
	// larger buffer than Width x Height, as the packer's atlas does.
	Stride int
}

// Decode reads r and normalizes it to an RGBA Image regardless of the
// source format's native color model.
func Decode(r io.Reader) (Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Image{}, errors.Wrap(atlaserr.ErrData, "imageio: "+err.Error())
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return Image{}, errors.Wrapf(atlaserr.ErrData, "imageio: degenerate image %dx%d", width, height)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return Image{
		Pixels: rgba.Pix,
		Width:  width,
		Height: height,
		BPP:    4,
	}, nil
}

// EncodeAtlas writes img as a PNG. img.Pixels must hold RGBA rows
// img.Stride bytes apart (Width*BPP when Stride is zero), at least
// Stride*Height bytes in all; only the Width x Height region is
// encoded.
func EncodeAtlas(w io.Writer, img Image) error {
	if img.BPP != 4 {
		return errors.Wrapf(atlaserr.ErrInvariant, "imageio: EncodeAtlas only supports 4 bytes per pixel, got %d", img.BPP)
	}
	stride := img.Stride
	if stride == 0 {
		stride = img.Width * img.BPP
	}
	want := stride * img.Height
	if len(img.Pixels) < want {
		return errors.Wrapf(atlaserr.ErrInvariant, "imageio: pixel buffer too small: have %d want %d", len(img.Pixels), want)
	}

	rgba := &image.RGBA{
		Pix:    img.Pixels,
		Stride: stride,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	if err := png.Encode(w, rgba); err != nil {
		return errors.Wrap(atlaserr.ErrIO, "imageio: encoding atlas: "+err.Error())
	}
	return nil
}

// HashBytes returns the CRC-64/ECMA checksum of pixels, used to detect
// byte-identical source images for merging.
func HashBytes(pixels []byte) uint64 {
	return crc64.Checksum(pixels, crcTable)
}

// RotateDiagnostic90 rotates img 90 degrees counter-clockwise. It
// exists for the CLI's optional rotated-diagnostic output only — the
// core packer never rotates a placed image.
func RotateDiagnostic90(img Image) Image {
	stride := img.Stride
	if stride == 0 {
		stride = img.Width * img.BPP
	}
	src := &image.RGBA{
		Pix:    img.Pixels,
		Stride: stride,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	rotated := imaging.Rotate90(src)
	b := rotated.Bounds()
	return Image{
		Pixels: rotated.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		BPP:    img.BPP,
		Stride: rotated.Stride,
	}
}
