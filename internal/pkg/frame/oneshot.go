package frame

import (
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// Compress writes src as one complete frame. A Default block size
// resolves to the smallest class covering src, and the true content
// length is always declared in the header.
func Compress(src []byte, o *opts.OptsT) (dst []byte, err error) {
	oo := *o
	if oo.BlockSizeId == descriptor.BlockIdDefault {
		oo.BlockSizeId = OptimalBlockId(len(src))
	}
	csz := uint64(len(src))
	oo.ContentSz = &csz

	enc := NewEncoder()
	defer enc.Close()

	dst = make([]byte, 0, FrameBound(len(src), &oo))

	if dst, err = enc.Begin(dst, &oo); err != nil {
		return nil, err
	}
	if dst, err = enc.Update(dst, src); err != nil {
		return nil, err
	}
	return enc.End(dst)
}

// Decompress decodes the first frame in src, ignoring anything after
// its end mark. The output buffer is sized from the declared content
// length when present, otherwise it starts from the configured
// estimate and doubles.
func Decompress(src []byte, o *opts.OptsT) ([]byte, error) {
	var (
		dec = NewDecoder(o)
		dst = newBufDst(o)
	)
	defer dec.Close()

	hint, err := dec.Update(src, dst)
	switch {
	case err != nil:
		return nil, err
	case hint > 0:
		return nil, zerr.ErrFrameIncomplete
	}

	return dst.Bytes(), nil
}
