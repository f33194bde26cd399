package lz4framed

import (
	"github.com/Iotic-Labs/lz4framed/internal/pkg/frame"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/guard"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// FrameInfoT is a frame header snapshot: declared content size (zero
// when the header omits it), block size class, block linkage, content
// checksum presence, and the current input hint.
type FrameInfoT = frame.InfoT

// DecompressionContext is a reusable streaming decompressor fed by
// Update in arbitrary slices. Frame parameters come from the frame
// header, not from preferences; once a frame drains the context is
// ready for the next one.
//
// Methods serialize on an internal lock, so concurrent calls are safe
// but block one another. Close releases pooled buffers mid-frame if
// necessary; it blocks until an in-flight operation finishes.
type DecompressionContext struct {
	grd guard.GuardT
	dec *frame.DecoderT
	o   *opts.OptsT
}

func NewDecompressionContext() *DecompressionContext {
	o := opts.New()
	return &DecompressionContext{dec: frame.NewDecoder(o), o: o}
}

// Update consumes src and returns the decompressed output sliced into
// WithChunkLen pieces (the last possibly shorter), plus the input
// hint: bytes needed for further progress, zero once the frame has
// drained. Input past the frame end mark within one call is
// discarded. Empty input fails with ErrNoData. A decode fault latches
// until the context is closed.
func (d *DecompressionContext) Update(src []byte, options ...OptT) ([][]byte, int, error) {
	if err := d.grd.Acquire(); err != nil {
		return nil, 0, err
	}
	defer d.grd.Release()

	if len(src) == 0 {
		return nil, 0, zerr.ErrNoData
	}
	if err := applyOpts(d.o, options); err != nil {
		return nil, 0, err
	}

	dst := frame.NewChunkDst(d.o.ChunkLen)
	defer dst.Close()

	var (
		err  error
		hint int
	)
	guard.Offload(d.o.Pool, len(src), func() {
		hint, err = d.dec.Update(src, dst)
	})
	if err != nil {
		return nil, 0, err
	}

	return dst.Take(), hint, nil
}

// FrameInfo reports the current frame's header. Until Update has seen
// the complete header it fails with ErrHeaderIncomplete; feed more
// input and retry.
func (d *DecompressionContext) FrameInfo() (FrameInfoT, error) {
	if err := d.grd.Acquire(); err != nil {
		return FrameInfoT{}, err
	}
	defer d.grd.Release()

	return d.dec.FrameInfo()
}

// Close releases the context's pooled buffers, mid-frame if need be.
// Further operations fail with ErrClosed. Safe to call more than
// once.
func (d *DecompressionContext) Close() error {
	return d.grd.CloseOnce(func() {
		d.dec.Close()
	})
}
