package lz4framed

import (
	"github.com/Iotic-Labs/lz4framed/internal/pkg/frame"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/guard"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// CompressionContext is a reusable streaming compressor. Begin opens a
// frame and returns its header bytes, Update returns compressed output
// as block boundaries fill, End flushes the staged remainder plus the
// trailer and returns the context to idle for another Begin.
//
// Methods serialize on an internal lock, so concurrent calls are safe
// but block one another. Close discards any open frame and releases
// pooled buffers; it blocks until an in-flight operation finishes.
type CompressionContext struct {
	grd guard.GuardT
	enc *frame.EncoderT
	o   *opts.OptsT
}

func NewCompressionContext() *CompressionContext {
	return &CompressionContext{enc: frame.NewEncoder()}
}

// Begin opens a frame with the given preferences and returns its
// header. Fails with ErrBegun while a frame is already open. The
// preferences are pinned until End; the next Begin may change them.
func (c *CompressionContext) Begin(options ...OptT) ([]byte, error) {
	if err := c.grd.Acquire(); err != nil {
		return nil, err
	}
	defer c.grd.Release()

	o, err := parseOpts(options...)
	if err != nil {
		return nil, err
	}

	dst, err := c.enc.Begin(nil, o)
	if err != nil {
		return nil, err
	}

	c.o = o
	return dst, nil
}

// Update consumes src and returns the compressed bytes produced.
// Input short of a block boundary is staged for the next call, so the
// returned slice may be empty unless autoflush is on. Empty input
// fails with ErrNoData, an idle context with ErrNotBegun.
func (c *CompressionContext) Update(src []byte) ([]byte, error) {
	if err := c.grd.Acquire(); err != nil {
		return nil, err
	}
	defer c.grd.Release()

	if len(src) == 0 {
		return nil, zerr.ErrNoData
	}
	if !c.enc.Open() {
		return nil, zerr.ErrNotBegun
	}

	var (
		err error
		dst = make([]byte, 0, c.enc.UpdateBound(len(src)))
	)
	guard.Offload(c.o.Pool, len(src), func() {
		dst, err = c.enc.Update(dst, src)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// End flushes the staged remainder, appends the end mark and optional
// content checksum, and returns the context to idle. A declared
// content length that does not match the bytes written fails with
// ErrFrameSize; the frame is abandoned but the context stays usable.
func (c *CompressionContext) End() ([]byte, error) {
	if err := c.grd.Acquire(); err != nil {
		return nil, err
	}
	defer c.grd.Release()

	if !c.enc.Open() {
		return nil, zerr.ErrNotBegun
	}

	var (
		err   error
		bound = c.enc.EndBound()
		dst   = make([]byte, 0, bound)
	)
	guard.Offload(c.o.Pool, bound, func() {
		dst, err = c.enc.End(dst)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Close releases the context's pooled buffers, discarding any open
// frame. Further operations fail with ErrClosed. Safe to call more
// than once.
func (c *CompressionContext) Close() error {
	return c.grd.CloseOnce(func() {
		c.enc.Close()
	})
}
