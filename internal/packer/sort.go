package packer

import "sort"

// sortForPacking orders images by the longer aggregate side: if the
// batch's maximum width exceeds its maximum height, images are sorted
// width-descending; otherwise height-descending (including the tie
// case, where width equals height). Packing tall or wide outliers
// first gives the tree its best chance at placing everything without
// backtracking through eviction.
func sortForPacking(images []*Image) {
	var maxW, maxH int
	for _, img := range images {
		if img.Width > maxW {
			maxW = img.Width
		}
		if img.Height > maxH {
			maxH = img.Height
		}
	}

	if maxW > maxH {
		sort.SliceStable(images, func(i, j int) bool {
			return images[i].Width > images[j].Width
		})
		return
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Height > images[j].Height
	})
}
