package lz4framed

import (
	"errors"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

//  Forward declare internal errors

const (
	ErrNoData          = zerr.ErrNoData
	ErrOption          = zerr.ErrOption
	ErrClosed          = zerr.ErrClosed
	ErrCorrupted       = zerr.ErrCorrupted
	ErrFrameIncomplete = zerr.ErrFrameIncomplete
	ErrNotBegun        = zerr.ErrNotBegun
	ErrBegun           = zerr.ErrBegun
)

// Frame faults carry a stable code from the reference lz4frame error
// enumeration; errors.Is matches by code.

var (
	ErrMagic             = zerr.ErrFrameType
	ErrVersion           = zerr.ErrHeaderVersion
	ErrHeaderHash        = zerr.ErrHeaderChecksum
	ErrBlockHash         = zerr.ErrBlockChecksum
	ErrContentHash       = zerr.ErrContentChecksum
	ErrReserveBitSet     = zerr.ErrReservedFlag
	ErrBlockDescriptor   = zerr.ErrMaxBlockSize
	ErrBlockSizeOverflow = zerr.ErrBlockSizeOverflow
	ErrHeaderIncomplete  = zerr.ErrHeaderIncomplete
	ErrFrameSize         = zerr.ErrFrameSize
	ErrDecompress        = zerr.ErrDecompressFail
	ErrAllocation        = zerr.ErrAllocation
)

// FrameError is a frame format fault; Code is stable across releases.
type FrameError = zerr.FrameError

// CodeT enumerates the frame fault codes.
type CodeT = zerr.CodeT

// Returns true if 'err' indicates the input is corrupted, as opposed
// to incomplete input or a misused call.
func Corrupted(err error) bool {
	return errors.Is(err, zerr.ErrCorrupted)
}
