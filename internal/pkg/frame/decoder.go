package frame

import (
	"bytes"
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/blk"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/codec"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/header"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/xxh32"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

type stateT int

const (
	stHeader stateT = iota
	stSkipLen
	stSkipData
	stBlockLen
	stBlockData
	stContentHash
	stDone
)

// InfoT is a frame header snapshot plus the current input hint.
type InfoT struct {
	ContentSize     uint64
	BlockSizeId     descriptor.BlockSizeIdT
	BlockLinked     bool
	ContentChecksum bool
	InputHint       int
}

// dstI receives decoded output. Open fires once per frame when the
// header completes; Block decodes one compressed block through dc and
// returns a view of the produced bytes valid until the next call; Raw
// stores an uncompressed block.
type dstI interface {
	Open(hdr header.HeaderT, remaining int) error
	Block(dc codec.DecompressorI, id descriptor.BlockSizeIdT, src []byte) ([]byte, error)
	Raw(src []byte) error
}

// DecoderT consumes a frame byte stream in arbitrary slices, pushed
// through Update. Wire items that straddle a push are staged: small
// items (header, size words, checksums) in a fixed accumulator, block
// payloads in a pooled block. Complete blocks inside a single push
// decode zero-copy from the caller's slice.
//
// After the end mark the decoder parks on a done state; the next
// Update starts a fresh frame. A decode error latches and is returned
// from every later call.
type DecoderT struct {
	o        *opts.OptsT
	hdr      header.HeaderT
	dc       codec.DecompressorI
	stage    *blk.BlkT
	hasher   xxh32.DigestT
	err      error
	word     descriptor.DataBlockSize
	id       descriptor.BlockSizeIdT
	bsz      int
	produced uint64
	skipLeft int
	state    stateT
	accLen   int
	hashOn   bool
	acc      [header.MaxSz]byte
}

func NewDecoder(o *opts.OptsT) *DecoderT {
	return &DecoderT{o: o}
}

// Update consumes as much of src as possible, delivering decoded
// blocks to dst. It returns the input hint: the byte count needed to
// make further progress, or zero once the frame has drained. Input
// after the end mark within one push is discarded.
func (d *DecoderT) Update(src []byte, dst dstI) (int, error) {
	if d.err != nil {
		return 0, d.err
	}

	if d.state == stDone {
		d.resetFrame()
	}

	for len(src) > 0 && d.state != stDone {
		var err error
		if src, err = d.step(src, dst); err != nil {
			d.err = err
			return 0, err
		}
	}

	return d.hint(), nil
}

// FrameInfo reports the parsed header once enough input has arrived,
// zerr.ErrHeaderIncomplete before that.
func (d *DecoderT) FrameInfo() (InfoT, error) {
	if d.err != nil {
		return InfoT{}, d.err
	}

	switch d.state {
	case stHeader, stSkipLen, stSkipData:
		return InfoT{}, zerr.ErrHeaderIncomplete
	}

	return InfoT{
		ContentSize:     d.hdr.ContentSz,
		BlockSizeId:     d.id,
		BlockLinked:     !d.hdr.Flags.BlockIndependence(),
		ContentChecksum: d.hdr.Flags.ContentChecksum(),
		InputHint:       d.hint(),
	}, nil
}

// Close releases the payload stage. Safe to call repeatedly.
func (d *DecoderT) Close() {
	blk.Return(d.stage)
	d.stage = nil
}

func (d *DecoderT) step(src []byte, dst dstI) ([]byte, error) {
	switch d.state {
	case stHeader:
		src = d.fillAcc(src, 4)
		if d.accLen < 4 {
			return src, nil
		}
		if header.IsSkippable(d.acc[:4]) {
			d.state = stSkipLen
			return src, nil
		}
		if !bytes.Equal(d.acc[:4], header.Magic[:]) {
			return src, zerr.WrapCorrupted(zerr.ErrFrameType)
		}

		src = d.fillAcc(src, 6)
		if d.accLen < 6 {
			return src, nil
		}
		if err := header.Sanity(descriptor.Flags(d.acc[4]), descriptor.Block(d.acc[5])); err != nil {
			return src, err
		}

		need := header.Need(d.acc[:d.accLen])
		src = d.fillAcc(src, need)
		if d.accLen < need {
			return src, nil
		}

		hdr, err := header.Parse(d.acc[:need])
		if err != nil {
			return src, err
		}
		if err := dst.Open(hdr, len(src)); err != nil {
			return src, err
		}
		d.begin(hdr)

	case stSkipLen:
		// Magic already sits in acc[:4]; the length word follows.
		src = d.fillAcc(src, header.SkipSz)
		if d.accLen < header.SkipSz {
			return src, nil
		}
		d.skipLeft = int(binary.LittleEndian.Uint32(d.acc[4:8]))
		d.accLen = 0
		d.state = stSkipData

	case stSkipData:
		n := len(src)
		if n > d.skipLeft {
			n = d.skipLeft
		}
		src = src[n:]
		d.skipLeft -= n
		if d.skipLeft == 0 {
			d.state = stHeader
		}

	case stBlockLen:
		src = d.fillAcc(src, 4)
		if d.accLen < 4 {
			return src, nil
		}
		d.word = descriptor.DataBlockSize(binary.LittleEndian.Uint32(d.acc[:4]))
		d.accLen = 0

		switch {
		case d.word.EndMark():
			if d.hdr.Flags.ContentChecksum() {
				d.state = stContentHash
			} else {
				d.finishFrame()
			}
		case d.word.Size() > d.bsz:
			return src, zerr.WrapCorrupted(zerr.ErrBlockSizeOverflow)
		default:
			d.state = stBlockData
		}

	case stBlockData:
		need := d.word.Size()
		if d.hdr.Flags.BlockChecksum() {
			need += 4
		}

		var payload []byte
		if d.stage.Len() == 0 && len(src) >= need {
			// Complete block in the pushed slice; skip the stage.
			payload = src[:need]
			src = src[need:]
		} else {
			n := d.stage.Fill(need, src)
			src = src[n:]
			if d.stage.Len() < need {
				return src, nil
			}
			payload = d.stage.Data()
		}

		err := d.block(payload, dst)
		d.stage.Trim(0)
		if err != nil {
			return src, err
		}
		d.state = stBlockLen

	case stContentHash:
		src = d.fillAcc(src, 4)
		if d.accLen < 4 {
			return src, nil
		}
		want := binary.LittleEndian.Uint32(d.acc[:4])
		d.accLen = 0
		if d.hasher.Sum32() != want {
			return src, zerr.WrapCorrupted(zerr.ErrContentChecksum)
		}
		d.finishFrame()
	}

	return src, nil
}

// block verifies the optional block checksum, routes the payload to
// dst, and keeps the content hash and produced count current.
func (d *DecoderT) block(payload []byte, dst dstI) error {
	if d.hdr.Flags.BlockChecksum() {
		var (
			n    = len(payload) - 4
			want = binary.LittleEndian.Uint32(payload[n:])
		)
		if xxh32.Checksum(payload[:n]) != want {
			return zerr.WrapCorrupted(zerr.ErrBlockChecksum)
		}
		payload = payload[:n]
	}

	if d.word.Uncompressed() {
		if err := dst.Raw(payload); err != nil {
			return err
		}
		d.dc.Raw(payload)
		d.account(payload)
		return nil
	}

	data, err := dst.Block(d.dc, d.id, payload)
	if err != nil {
		return zerr.WrapCorrupted(err)
	}
	d.account(data)
	return nil
}

func (d *DecoderT) account(data []byte) {
	if d.hashOn {
		d.hasher.Write(data)
	}
	d.produced += uint64(len(data))
}

func (d *DecoderT) begin(hdr header.HeaderT) {
	d.hdr = hdr
	d.id = hdr.BlockDesc.Id()
	d.bsz = d.id.Bytes()
	d.dc = codec.NewDecompressor(!hdr.Flags.BlockIndependence())
	d.stage = blk.Borrow(d.id)
	d.hashOn = hdr.Flags.ContentChecksum()
	d.hasher.Reset()
	d.accLen = 0
	d.state = stBlockLen
}

func (d *DecoderT) finishFrame() {
	if d.hdr.Flags.ContentSize() && d.produced != d.hdr.ContentSz {
		// The reference library treats a lying length as a warning,
		// not a fault; the real output has already been delivered.
		d.o.Log.Warn("frame content length mismatch",
			zap.Uint64("declared", d.hdr.ContentSz),
			zap.Uint64("produced", d.produced))
	}

	blk.Return(d.stage)
	d.stage = nil
	d.dc = nil
	d.state = stDone
}

func (d *DecoderT) resetFrame() {
	d.hdr = header.HeaderT{}
	d.word = 0
	d.produced = 0
	d.accLen = 0
	d.skipLeft = 0
	d.state = stHeader
}

func (d *DecoderT) fillAcc(src []byte, need int) []byte {
	if d.accLen >= need {
		return src
	}
	n := copy(d.acc[d.accLen:need], src)
	d.accLen += n
	return src[n:]
}

func (d *DecoderT) hint() int {
	switch d.state {
	case stHeader:
		return header.Need(d.acc[:d.accLen]) - d.accLen
	case stSkipLen:
		return header.SkipSz - d.accLen
	case stSkipData:
		return d.skipLeft + header.MinSz
	case stBlockLen:
		return 4 - d.accLen
	case stBlockData:
		need := d.word.Size()
		if d.hdr.Flags.BlockChecksum() {
			need += 4
		}
		return need - d.stage.Len() + 4
	case stContentHash:
		return 4 - d.accLen
	}
	return 0
}
