package lz4framed

import (
	"io"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

const readStageSz = 32 << 10

// Decompressor reads one frame from an underlying reader, a file-like
// wrapper over a DecompressionContext. Read reports io.EOF at the
// frame end mark; staged input past the end mark is discarded.
type Decompressor struct {
	rd     io.Reader
	ctx    *DecompressionContext
	chunks [][]byte
	buf    []byte
	done   bool
	err    error
}

// NewDecompressor wraps 'rd', which must yield a complete frame.
func NewDecompressor(rd io.Reader, options ...OptT) (*Decompressor, error) {
	ctx := NewDecompressionContext()
	if err := applyOpts(ctx.o, options); err != nil {
		ctx.Close()
		return nil, err
	}

	return &Decompressor{
		rd:  rd,
		ctx: ctx,
		buf: make([]byte, readStageSz),
	}, nil
}

// Read decompressed data into 'dst'. Return number bytes read. An
// underlying reader that dries up mid-frame fails with
// ErrFrameIncomplete.
func (d *Decompressor) Read(dst []byte) (int, error) {
	for {
		if n := d.fill(dst); n > 0 {
			return n, nil
		}
		if d.err != nil {
			return 0, d.err
		}
		if d.done {
			return 0, io.EOF
		}
		d.advance()
	}
}

// fill drains pending chunks into dst.
func (d *Decompressor) fill(dst []byte) (n int) {
	for len(dst) > 0 && len(d.chunks) > 0 {
		c := copy(dst, d.chunks[0])
		n += c
		dst = dst[c:]

		if c == len(d.chunks[0]) {
			d.chunks = d.chunks[1:]
		} else {
			d.chunks[0] = d.chunks[0][c:]
		}
	}
	return n
}

// advance pulls more input from the reader through the context.
func (d *Decompressor) advance() {
	n, rerr := d.rd.Read(d.buf)
	if n > 0 {
		chunks, hint, err := d.ctx.Update(d.buf[:n])
		if err != nil {
			d.err = err
			return
		}
		d.chunks = append(d.chunks, chunks...)
		if hint == 0 {
			d.done = true
		}
	}

	switch {
	case rerr == io.EOF:
		if n == 0 && !d.done {
			d.err = zerr.ErrFrameIncomplete
		}
	case rerr != nil:
		d.err = rerr
	}
}

// Close releases the context. Close *MUST* be called on completion
// whether or not the Decompressor is in an error state.
func (d *Decompressor) Close() error {
	if d.err == nil {
		d.err = zerr.ErrClosed
	}
	return d.ctx.Close()
}
