package frame

import (
	"encoding/binary"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/blk"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/codec"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/header"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/trailer"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/xxh32"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// EncoderT drives one frame at a time: Begin appends the header,
// Update consumes source bytes and appends complete blocks, End
// flushes the staged remainder and the trailer. All three extend the
// caller's dst slice. The encoder returns to idle after End and may
// begin another frame.
type EncoderT struct {
	o       opts.OptsT
	cmp     codec.CompressorI
	hasher  xxh32.DigestT
	pending *blk.BlkT
	bsz     int
	written uint64
	open    bool
}

func NewEncoder() *EncoderT {
	return &EncoderT{}
}

func (e *EncoderT) Open() bool {
	return e.open
}

// Begin pins a copy of the preferences and appends the frame header.
// A Default block size resolves to the 64KB class.
func (e *EncoderT) Begin(dst []byte, o *opts.OptsT) ([]byte, error) {
	if e.open {
		return dst, zerr.ErrBegun
	}

	e.o = *o
	if e.o.BlockSizeId == descriptor.BlockIdDefault {
		e.o.BlockSizeId = descriptor.BlockId64KB
	}

	e.cmp = e.o.NewCompressor()
	e.bsz = e.o.BlockSizeId.Bytes()
	e.pending = blk.Borrow(e.o.BlockSizeId)
	e.hasher.Reset()
	e.written = 0
	e.open = true

	return header.AppendHeader(dst, &e.o), nil
}

// Update stages src into block-sized pieces and appends each complete
// block. With AutoFlush the partial remainder is emitted too instead
// of waiting for the next call.
func (e *EncoderT) Update(dst, src []byte) ([]byte, error) {
	if !e.open {
		return dst, zerr.ErrNotBegun
	}

	if e.o.ContentChecksum {
		e.hasher.Write(src)
	}
	e.written += uint64(len(src))

	if e.pending.Len() > 0 {
		n := e.pending.Fill(e.bsz, src)
		src = src[n:]

		if e.pending.Len() == e.bsz {
			dst = e.appendBlock(dst, e.pending.Data())
			e.pending.Trim(0)
		}
	}

	for len(src) >= e.bsz {
		// Full blocks compress straight from src, skipping the stage.
		dst = e.appendBlock(dst, src[:e.bsz])
		src = src[e.bsz:]
	}

	if len(src) > 0 {
		e.pending.Fill(e.bsz, src)
	}

	if e.o.AutoFlush && e.pending.Len() > 0 {
		dst = e.appendBlock(dst, e.pending.Data())
		e.pending.Trim(0)
	}

	return dst, nil
}

// End flushes the staged remainder, validates a declared content size
// against the bytes written, and appends the end mark plus the
// optional content checksum. The encoder returns to idle either way.
func (e *EncoderT) End(dst []byte) ([]byte, error) {
	if !e.open {
		return dst, zerr.ErrNotBegun
	}

	if e.pending.Len() > 0 {
		dst = e.appendBlock(dst, e.pending.Data())
		e.pending.Trim(0)
	}

	if e.o.ContentSz != nil && e.written != *e.o.ContentSz {
		e.reset()
		return dst, zerr.ErrFrameSize
	}

	if e.o.ContentChecksum {
		dst = trailer.AppendEndMarkWithHash(dst, e.hasher.Sum32())
	} else {
		dst = trailer.AppendEndMark(dst)
	}

	e.reset()
	return dst, nil
}

// Close releases the stage of an unfinished frame.
func (e *EncoderT) Close() {
	if e.open {
		e.reset()
	}
}

func (e *EncoderT) reset() {
	blk.Return(e.pending)
	e.pending = nil
	e.written = 0
	e.open = false
}

// UpdateBound returns a dst reserve sufficient for Update(n) given the
// current stage.
func (e *EncoderT) UpdateBound(n int) int {
	blocks := (e.pending.Len() + n + e.bsz - 1) / e.bsz
	return blocks * blockWireSz(e.bsz, e.o.BlockChecksum)
}

// EndBound covers the staged remainder plus the trailer.
func (e *EncoderT) EndBound() int {
	return blockWireSz(e.pending.Len(), e.o.BlockChecksum) + trailer.EndMarkSz + trailer.HashSz
}

// appendBlock compresses src into a block appended to dst. The
// compression slot is exactly len(src) bytes, so data that does not
// shrink is stored uncompressed with the high bit set on the size
// word.
func (e *EncoderT) appendBlock(dst, src []byte) []byte {
	var (
		pos  = len(dst)
		need = blockWireSz(len(src), e.o.BlockChecksum)
	)
	dst = extend(dst, need)
	slot := dst[pos+4 : pos+4+len(src)]

	n, err := e.cmp.Compress(src, slot)

	var word descriptor.DataBlockSize
	if err != nil || n == 0 || n >= len(src) {
		word.SetUncompressed()
		n = copy(slot, src)
	}
	word.SetSize(n)
	binary.LittleEndian.PutUint32(dst[pos:], uint32(word))

	end := pos + 4 + n
	if e.o.BlockChecksum {
		binary.LittleEndian.PutUint32(dst[end:], xxh32.Checksum(dst[pos+4:end]))
		end += 4
	}

	return dst[:end]
}
