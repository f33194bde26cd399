package frame

import (
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/header"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/trailer"
)

// blockWireSz is the wire size of one block carrying n payload bytes.
func blockWireSz(n int, checksum bool) int {
	if checksum {
		return n + 8
	}
	return n + 4
}

// OptimalBlockId picks the smallest size class covering a one-shot
// payload, matching the reference library's choice.
func OptimalBlockId(n int) descriptor.BlockSizeIdT {
	switch {
	case n <= 64<<10:
		return descriptor.BlockId64KB
	case n <= 256<<10:
		return descriptor.BlockId256KB
	case n <= 1<<20:
		return descriptor.BlockId1MB
	}
	return descriptor.BlockId4MB
}

// FrameBound is a worst case frame size for n source bytes: full
// header, incompressible payload, per-block overhead, trailer.
func FrameBound(n int, o *opts.OptsT) int {
	var (
		bsz    = o.BlockSizeId.Bytes()
		blocks = (n + bsz - 1) / bsz
	)
	return header.MaxSz + n + blocks*blockWireSz(0, o.BlockChecksum) + trailer.EndMarkSz + trailer.HashSz
}

// extend grows dst by n bytes of writable space.
func extend(dst []byte, n int) []byte {
	if cap(dst)-len(dst) >= n {
		return dst[:len(dst)+n]
	}
	return append(dst, make([]byte, n)...)
}
