package application

// pageOffset rounds a from offset down to the page boundary implied by size:
// floor(from/size)*size. This re-aligns arbitrary offsets to whole pages, a
// behavior deliberately preserved for compatibility with the existing API
// callers; from must be treated as a page-aligned offset, not a free cursor.
func pageOffset(from, size int) int {
	return from / size * size
}
