package lz4framed

import (
	"io"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// Compressor writes one frame to an underlying writer, a file-like
// wrapper over a CompressionContext. The frame header goes out at
// construction, blocks as Write fills them, the trailer on Close.
//
// Close *MUST* be called to complete the frame; until then the stream
// lacks its end mark and staged input.
type Compressor struct {
	wr  io.Writer
	ctx *CompressionContext
	err error
}

// NewCompressor opens a frame with the given preferences and writes
// its header to 'wr'.
func NewCompressor(wr io.Writer, options ...OptT) (*Compressor, error) {
	ctx := NewCompressionContext()

	hdr, err := ctx.Begin(options...)
	if err != nil {
		ctx.Close()
		return nil, err
	}
	if _, err = wr.Write(hdr); err != nil {
		ctx.Close()
		return nil, err
	}

	return &Compressor{wr: wr, ctx: ctx}, nil
}

// Write compresses 'src' into the frame; return number of bytes
// consumed. Input staged short of a block boundary counts as
// consumed.
func (c *Compressor) Write(src []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if len(src) == 0 {
		return 0, nil
	}

	out, err := c.ctx.Update(src)
	if err != nil {
		c.err = err
		return 0, err
	}
	if len(out) > 0 {
		if _, err = c.wr.Write(out); err != nil {
			c.err = err
			return 0, err
		}
	}

	return len(src), nil
}

// Close flushes staged input, writes the frame trailer, and releases
// the context. A Compressor that already failed releases the context
// and reports the earlier error.
func (c *Compressor) Close() error {
	if c.err != nil {
		c.ctx.Close()
		if c.err == zerr.ErrClosed {
			return nil
		}
		return c.err
	}
	c.err = zerr.ErrClosed

	out, err := c.ctx.End()
	if err == nil && len(out) > 0 {
		_, err = c.wr.Write(out)
	}

	if cerr := c.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}
