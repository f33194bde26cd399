package header

import (
	"encoding/binary"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/xxh32"
)

// AppendHeader appends the frame header for the given preferences and
// returns the extended slice. The block size id must already be
// resolved; Default never reaches the wire.
func AppendHeader(dst []byte, o *opts.OptsT) []byte {
	start := len(dst)
	dst = append(dst, Magic[:]...)

	var (
		flags descriptor.Flags
		bd    descriptor.Block
	)

	flags.SetVersion(descriptor.Version1)
	bd.SetId(o.BlockSizeId)

	if !o.BlockLinked {
		flags.SetBlockIndependence()
	}
	if o.BlockChecksum {
		flags.SetBlockChecksum()
	}
	if o.ContentChecksum {
		flags.SetContentChecksum()
	}
	if o.ContentSz != nil {
		flags.SetContentSize()
	}

	dst = append(dst, byte(flags), byte(bd))

	if o.ContentSz != nil {
		dst = binary.LittleEndian.AppendUint64(dst, *o.ContentSz)
	}

	hc := byte(xxh32.Checksum(dst[start+4:]) >> 8)
	return append(dst, hc)
}
