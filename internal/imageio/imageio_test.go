package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: byte(x), G: byte(y), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeNormalizesToRGBA(t *testing.T) {
	raw := encodeTestPNG(t, 3, 2)
	img, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 3, img.Width)
	require.Equal(t, 2, img.Height)
	require.Equal(t, 4, img.BPP)
	require.Len(t, img.Pixels, 3*2*4)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a png")))
	require.Error(t, err)
}

func TestEncodeAtlasRoundTrips(t *testing.T) {
	src := Image{
		Pixels: make([]byte, 4*4*4),
		Width:  4,
		Height: 4,
		BPP:    4,
	}
	for i := range src.Pixels {
		src.Pixels[i] = byte(i)
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeAtlas(&buf, src))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 4, decoded.Width)
	require.Equal(t, 4, decoded.Height)
}

func TestEncodeAtlasHonorsStride(t *testing.T) {
	const capW, capH, bpp = 8, 8, 4
	buf := make([]byte, capW*capH*bpp)
	// Paint a 2x2 region in the top-left so cropping to 2x2 is verifiable.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			off := (y*capW + x) * bpp
			buf[off] = 0xAB
			buf[off+3] = 0xFF
		}
	}

	cropped := Image{Pixels: buf, Width: 2, Height: 2, BPP: bpp, Stride: capW * bpp}
	var out bytes.Buffer
	require.NoError(t, EncodeAtlas(&out, cropped))

	decoded, err := Decode(&out)
	require.NoError(t, err)
	require.Equal(t, 2, decoded.Width)
	require.Equal(t, 2, decoded.Height)
	require.Equal(t, byte(0xAB), decoded.Pixels[0])
}

func TestHashBytesStable(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	c := []byte{1, 2, 3, 5}
	require.Equal(t, HashBytes(a), HashBytes(b))
	require.NotEqual(t, HashBytes(a), HashBytes(c))
}

func TestRotateDiagnostic90SwapsDimensions(t *testing.T) {
	src := Image{Pixels: make([]byte, 3*2*4), Width: 3, Height: 2, BPP: 4}
	rotated := RotateDiagnostic90(src)
	require.Equal(t, 2, rotated.Width)
	require.Equal(t, 3, rotated.Height)
}
