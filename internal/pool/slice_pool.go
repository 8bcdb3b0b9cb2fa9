package pool

import "sync"

// int32SlicePool reuses the hash-head and chain tables of the match finder.
// A 32KiB window needs a 32Ki-entry prev table per compression call, which is
// worth pooling when the engine runs many small tasks back to back.
var int32SlicePool = sync.Pool{
	New: func() any { return &[]int32{} },
}

// GetInt32Slice retrieves an int32 slice of the requested length from the
// pool, filling every element with fillValue.
//
// The caller must call the returned cleanup function (typically with defer)
// to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//   - fillValue: Value assigned to every element
//
// Returns:
//   - []int32: A slice with length equal to size
//   - func(): Cleanup function returning the slice to the pool
func GetInt32Slice(size int, fillValue int32) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	for i := range slice {
		slice[i] = fillValue
	}

	return slice, func() { int32SlicePool.Put(ptr) }
}
