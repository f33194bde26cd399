package blk

import (
	"sync"
	"sync/atomic"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
)

// Each class allocates +4 for the size word and +4 for a checksum so a
// staged block can carry its wire framing without a second buffer.
const (
	szOverhead   = 8
	szAlloc64KB  = 64<<10 + szOverhead
	szAlloc256KB = 256<<10 + szOverhead
	szAlloc1MB   = 1<<20 + szOverhead
	szAlloc4MB   = 4<<20 + szOverhead
)

var (
	pool64KB  = sync.Pool{New: func() any { return &BlkT{data: make([]byte, szAlloc64KB)} }}
	pool256KB = sync.Pool{New: func() any { return &BlkT{data: make([]byte, szAlloc256KB)} }}
	pool1MB   = sync.Pool{New: func() any { return &BlkT{data: make([]byte, szAlloc1MB)} }}
	pool4MB   = sync.Pool{New: func() any { return &BlkT{data: make([]byte, szAlloc4MB)} }}
)

var cntBorrowed int64

// CntBorrowed reports blocks currently out of the pools; tests use it
// to catch leaks.
func CntBorrowed() int64 {
	return atomic.LoadInt64(&cntBorrowed)
}

// Borrow takes a block sized for the given class. The returned block
// is trimmed to zero length; capacity includes the wire overhead.
func Borrow(id descriptor.BlockSizeIdT) *BlkT {
	atomic.AddInt64(&cntBorrowed, 1)

	var b *BlkT
	switch id.Bytes() {
	case 64 << 10:
		b = pool64KB.Get().(*BlkT)
	case 256 << 10:
		b = pool256KB.Get().(*BlkT)
	case 1 << 20:
		b = pool1MB.Get().(*BlkT)
	case 4 << 20:
		b = pool4MB.Get().(*BlkT)
	default:
		panic("bad block size")
	}

	b.Trim(0)
	return b
}

func Return(b *BlkT) {
	if b == nil {
		return
	}
	atomic.AddInt64(&cntBorrowed, -1)

	b.data = b.data[:cap(b.data)]
	switch cap(b.data) {
	case szAlloc64KB:
		pool64KB.Put(b)
	case szAlloc256KB:
		pool256KB.Put(b)
	case szAlloc1MB:
		pool1MB.Put(b)
	case szAlloc4MB:
		pool4MB.Put(b)
	default:
		panic("bad block size")
	}
}
