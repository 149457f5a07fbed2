package imageio

// CropToContent trims fully-transparent border rows/columns from img,
// keeping only the bounding box of pixels whose alpha exceeds
// threshold. An image with no pixel above threshold is returned
// unchanged (cropping it to zero size would leave nothing to pack).
func CropToContent(img Image, threshold byte) Image {
	stride := img.Stride
	if stride == 0 {
		stride = img.Width * img.BPP
	}

	alphaAt := func(x, y int) byte {
		return img.Pixels[y*stride+x*img.BPP+3]
	}

	minX, minY, maxX, maxY := img.Width, img.Height, -1, -1
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if alphaAt(x, y) <= threshold {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return img
	}

	croppedW := maxX - minX + 1
	croppedH := maxY - minY + 1
	out := make([]byte, croppedW*img.BPP*croppedH)
	for row := 0; row < croppedH; row++ {
		srcOff := (minY+row)*stride + minX*img.BPP
		dstOff := row * croppedW * img.BPP
		copy(out[dstOff:dstOff+croppedW*img.BPP], img.Pixels[srcOff:srcOff+croppedW*img.BPP])
	}

	return Image{Pixels: out, Width: croppedW, Height: croppedH, BPP: img.BPP}
}
