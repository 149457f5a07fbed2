package packer

// markDuplicates compares every image's content hash and extent
// against every image before it, O(n^2) the same way the hash lookup
// it replaces once did. The first image with a given (hash, width,
// height) is the canonical placement; every later match is marked as
// a duplicate of it and never reaches the tree.
func markDuplicates(images []*Image) {
	for i, img := range images {
		for j := 0; j < i; j++ {
			other := images[j]
			if other.duplicateOf != nil {
				continue
			}
			if other.hash == img.hash && other.Width == img.Width && other.Height == img.Height {
				img.duplicateOf = other
				break
			}
		}
	}
}
