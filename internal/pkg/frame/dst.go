package frame

import (
	"go.uber.org/zap"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/blk"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/codec"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/growbuf"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/header"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// bufDst collects a whole frame into one growth-policy buffer. A
// declared content length reserves exactly that much and blocks decode
// straight into the reservation; otherwise the buffer starts from an
// estimate and doubles.
type bufDst struct {
	g     *growbuf.GrowBufT
	log   *zap.Logger
	bufSz int
}

func newBufDst(o *opts.OptsT) *bufDst {
	return &bufDst{log: o.Log, bufSz: o.BufferSz}
}

func (b *bufDst) Open(hdr header.HeaderT, remaining int) error {
	if hdr.Flags.ContentSize() {
		n := int(hdr.ContentSz)
		if n < 0 || uint64(n) != hdr.ContentSz {
			return zerr.ErrAllocation
		}
		b.g = growbuf.NewExact(n)
		return nil
	}

	est := b.bufSz
	if remaining > est {
		est = remaining
	}
	b.g = growbuf.NewEstimate(est)
	return nil
}

func (b *bufDst) Block(dc codec.DecompressorI, id descriptor.BlockSizeIdT, src []byte) ([]byte, error) {
	bsz := id.Bytes()

	if !b.g.Exact() && b.g.Free() < bsz {
		b.g.Grow(bsz)
	}

	n, err := dc.Decompress(src, b.g.Tail())
	if err == nil {
		out := b.g.Tail()[:n]
		b.g.Commit(n)
		return out, nil
	}

	if !b.g.Exact() {
		// Room was guaranteed, so the payload itself is bad.
		return nil, err
	}

	// The exact reservation may be the lie; retry with full block room
	// to tell a short buffer apart from corrupt data.
	scratch := blk.Borrow(id)
	defer blk.Return(scratch)
	scratch.Trim(bsz)

	n, rerr := dc.Decompress(src, scratch.Data())
	if rerr != nil {
		return nil, err
	}

	b.loosen(n)
	copy(b.g.Tail(), scratch.Prefix(n))
	out := b.g.Tail()[:n]
	b.g.Commit(n)
	return out, nil
}

func (b *bufDst) Raw(src []byte) error {
	n := len(src)
	if b.g.Free() < n {
		if b.g.Exact() {
			b.loosen(n)
		} else {
			b.g.Grow(n)
		}
	}
	copy(b.g.Tail(), src)
	b.g.Commit(n)
	return nil
}

// loosen abandons the exact reservation and makes room for n bytes.
func (b *bufDst) loosen(n int) {
	b.log.Warn("frame declares a short content length, growing buffer",
		zap.Int("have", b.g.Len()),
		zap.Int("need", n))
	b.g.Loosen()
	b.g.Grow(n)
}

func (b *bufDst) Bytes() []byte {
	return b.g.Bytes()
}

// ChunkDstT slices a frame's output into chunkLen pieces, the
// incremental decompression surface. Blocks decode into a pooled
// scratch and spread across chunk boundaries from there; every
// returned chunk owns its bytes.
type ChunkDstT struct {
	chunks   [][]byte
	cur      []byte
	scratch  *blk.BlkT
	chunkLen int
}

func NewChunkDst(chunkLen int) *ChunkDstT {
	return &ChunkDstT{chunkLen: chunkLen}
}

func (c *ChunkDstT) Open(hdr header.HeaderT, remaining int) error {
	return nil
}

func (c *ChunkDstT) Block(dc codec.DecompressorI, id descriptor.BlockSizeIdT, src []byte) ([]byte, error) {
	if c.scratch == nil {
		c.scratch = blk.Borrow(id)
	}
	c.scratch.Trim(id.Bytes())

	n, err := dc.Decompress(src, c.scratch.Data())
	if err != nil {
		return nil, err
	}

	data := c.scratch.Prefix(n)
	c.spread(data)
	return data, nil
}

func (c *ChunkDstT) Raw(src []byte) error {
	c.spread(src)
	return nil
}

func (c *ChunkDstT) spread(data []byte) {
	for len(data) > 0 {
		if c.cur == nil {
			c.cur = make([]byte, 0, c.chunkLen)
		}

		n := c.chunkLen - len(c.cur)
		if n > len(data) {
			n = len(data)
		}
		c.cur = append(c.cur, data[:n]...)
		data = data[n:]

		if len(c.cur) == c.chunkLen {
			c.chunks = append(c.chunks, c.cur)
			c.cur = nil
		}
	}
}

// Take finishes the call, appending a trailing partial chunk.
func (c *ChunkDstT) Take() [][]byte {
	if len(c.cur) > 0 {
		c.chunks = append(c.chunks, c.cur)
		c.cur = nil
	}
	return c.chunks
}

// Close releases the decode scratch. The taken chunks stay valid.
func (c *ChunkDstT) Close() {
	blk.Return(c.scratch)
	c.scratch = nil
}
