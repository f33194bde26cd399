package header

import (
	"bytes"
	"encoding/binary"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/xxh32"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// IsSkippable reports whether the first four bytes carry a skippable
// frame magic. Any value from 0x184D2A50 to 0x184D2A5F qualifies.
func IsSkippable(magic []byte) bool {
	return binary.LittleEndian.Uint32(magic)>>4 == skipMagic>>4
}

// Need returns the total header size once enough of the prefix is
// buffered to read the FLG byte, MinSz before that.
func Need(buf []byte) int {
	if len(buf) < 5 {
		return MinSz
	}

	n := MinSz
	flags := descriptor.Flags(buf[4])
	if flags.ContentSize() {
		n += 8
	}
	if flags.DictId() {
		n += 4
	}
	return n
}

// Sanity validates the descriptor bytes. It applies as soon as MinSz
// bytes are buffered, before any extended fields arrive.
func Sanity(flags descriptor.Flags, bd descriptor.Block) error {
	switch {
	case flags.Version() != descriptor.Version1:
		return zerr.ErrHeaderVersion
	case flags.Reserved():
		return zerr.WrapCorrupted(zerr.ErrReservedFlag)
	case !bd.Valid():
		return zerr.WrapCorrupted(zerr.ErrMaxBlockSize)
	}
	return nil
}

// Parse decodes a complete header; buf must hold at least Need(buf)
// bytes. The checksum byte covers FLG through the last extended field.
func Parse(buf []byte) (hdr HeaderT, err error) {
	if !bytes.Equal(buf[:4], Magic[:]) {
		err = zerr.WrapCorrupted(zerr.ErrFrameType)
		return
	}

	hdr.Flags = descriptor.Flags(buf[4])
	hdr.BlockDesc = descriptor.Block(buf[5])

	if err = Sanity(hdr.Flags, hdr.BlockDesc); err != nil {
		return
	}

	pos := 6
	if hdr.Flags.ContentSize() {
		hdr.ContentSz = binary.LittleEndian.Uint64(buf[pos:])
		pos += 8
	}
	if hdr.Flags.DictId() {
		hdr.DictId = binary.LittleEndian.Uint32(buf[pos:])
		pos += 4
	}

	if calc := byte(xxh32.Checksum(buf[4:pos]) >> 8); calc != buf[pos] {
		err = zerr.WrapCorrupted(zerr.ErrHeaderChecksum)
		return
	}

	hdr.Sz = pos + 1
	return
}
