package arena

// The functions below are pure capacity calculators: they answer "how
// many elements must this arena reserve for n images", matching the
// fixed-reservation sizing contract. Go's slice allocator doesn't need
// these numbers to be correct to avoid corruption the way a raw
// byte-stack allocator would, but the packer uses them to size
// arena.New calls up front rather than growing
// arenas on demand, keeping the no-relocation guarantee meaningful.

// ImageArenaSize returns the element count needed for a table of n
// decoded images, expressed in image-table slots. The atlas pixel
// buffer is not included; the caller sizes it separately (see
// TreeNodeArenaSize and LRUArenaSize for the other two tables).
func ImageArenaSize(n int) int {
	return n
}

// TreeNodeArenaSize returns the node reservation for a BSP tree packing
// n images: one split introduces exactly two new nodes, so four nodes
// per image cover the two nested splits of a strict interior fit (or
// one root expansion followed by one split), plus the root itself.
func TreeNodeArenaSize(n int) int {
	return 1 + 4*n
}

// FilenameArenaSize returns the byte budget for n image names capped
// at maxNameLen bytes each. Go's decoder hands back strings already
// owned by the runtime's GC, so nothing actually carves slots out of
// this budget — it exists so a driver can report whether a batch of
// names fits the same envelope the original byte-stack allocator would
// have required.
func FilenameArenaSize(n, maxNameLen int) int {
	return n * maxNameLen
}

// LRUArenaSize returns the node count an LRU cache needs for n
// placeable images plus its sentinel.
func LRUArenaSize(n int) int {
	return n + 1
}
