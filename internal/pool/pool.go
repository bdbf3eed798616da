// Package pool holds the sync.Pools used on the render path. A frame is
// redrawn on every key press, so the per-frame scratch values are reused
// instead of allocated.
package pool

import (
	"strings"
	"sync"
)

const rowSliceCap = 64

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

var rowSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, rowSliceCap)
		return &s
	},
}

// GetStringBuilder returns an empty builder.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool. Strings already
// taken from sb stay valid.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// GetRowSlice returns an empty slice for the rows of one frame.
func GetRowSlice() *[]string {
	return rowSlicePool.Get().(*[]string)
}

// PutRowSlice clears rows and returns it to the pool.
func PutRowSlice(rows *[]string) {
	clear(*rows)
	*rows = (*rows)[:0]
	rowSlicePool.Put(rows)
}
