package zerr

import "fmt"

type constError string

func (err constError) Error() string {
	return string(err)
}

const (
	ErrNoData          constError = "lz4 no data"
	ErrOption          constError = "lz4 invalid option"
	ErrClosed          constError = "lz4 closed"
	ErrCorrupted       constError = "lz4 corrupted"
	ErrFrameIncomplete constError = "lz4 frame incomplete"
	ErrNotBegun        constError = "lz4 frame not begun"
	ErrBegun           constError = "lz4 frame already begun"
)

// CodeT is a frame fault code. Values mirror the reference lz4frame
// error enumeration and are stable across releases.
type CodeT int

const (
	CodeGeneric CodeT = iota + 1
	CodeMaxBlockSizeInvalid
	CodeBlockModeInvalid
	CodeContentChecksumFlagInvalid
	CodeCompressionLevelInvalid
	CodeHeaderVersionWrong
	CodeBlockChecksumInvalid
	CodeReservedFlagSet
	CodeAllocationFailed
	CodeSrcSizeTooLarge
	CodeDstMaxSizeTooSmall
	CodeFrameHeaderIncomplete
	CodeFrameTypeUnknown
	CodeFrameSizeWrong
	CodeSrcPtrWrong
	CodeDecompressionFailed
	CodeHeaderChecksumInvalid
	CodeContentChecksumInvalid
	CodeFrameDecodingAlreadyStarted
)

func (c CodeT) Str() string {
	switch c {
	case CodeGeneric:
		return "generic failure"
	case CodeMaxBlockSizeInvalid:
		return "max block size invalid"
	case CodeBlockModeInvalid:
		return "block mode invalid"
	case CodeContentChecksumFlagInvalid:
		return "content checksum flag invalid"
	case CodeCompressionLevelInvalid:
		return "compression level invalid"
	case CodeHeaderVersionWrong:
		return "header version wrong"
	case CodeBlockChecksumInvalid:
		return "block checksum invalid"
	case CodeReservedFlagSet:
		return "reserved flag set"
	case CodeAllocationFailed:
		return "allocation failed"
	case CodeSrcSizeTooLarge:
		return "src size too large"
	case CodeDstMaxSizeTooSmall:
		return "dst max size too small"
	case CodeFrameHeaderIncomplete:
		return "frame header incomplete"
	case CodeFrameTypeUnknown:
		return "frame type unknown"
	case CodeFrameSizeWrong:
		return "frame size wrong"
	case CodeSrcPtrWrong:
		return "src pointer wrong"
	case CodeDecompressionFailed:
		return "decompression failed"
	case CodeHeaderChecksumInvalid:
		return "header checksum invalid"
	case CodeContentChecksumInvalid:
		return "content checksum invalid"
	case CodeFrameDecodingAlreadyStarted:
		return "frame decoding already started"
	}
	return "unknown"
}

// FrameError is a frame format fault carrying a stable CodeT.
// errors.Is matches any two FrameErrors with equal codes, so call sites
// may compare against the canonical instances below or construct their own.
type FrameError struct {
	Code CodeT
}

func (e *FrameError) Error() string {
	return "lz4 " + e.Code.Str()
}

func (e *FrameError) Is(target error) bool {
	t, ok := target.(*FrameError)
	return ok && t.Code == e.Code
}

var (
	ErrGeneric          = &FrameError{CodeGeneric}
	ErrMaxBlockSize     = &FrameError{CodeMaxBlockSizeInvalid}
	ErrCompressionLevel = &FrameError{CodeCompressionLevelInvalid}
	ErrHeaderVersion    = &FrameError{CodeHeaderVersionWrong}
	ErrBlockChecksum    = &FrameError{CodeBlockChecksumInvalid}
	ErrReservedFlag     = &FrameError{CodeReservedFlagSet}
	ErrAllocation       = &FrameError{CodeAllocationFailed}
	ErrHeaderIncomplete = &FrameError{CodeFrameHeaderIncomplete}
	ErrFrameType        = &FrameError{CodeFrameTypeUnknown}
	ErrFrameSize        = &FrameError{CodeFrameSizeWrong}
	ErrDecompressFail   = &FrameError{CodeDecompressionFailed}
	ErrHeaderChecksum   = &FrameError{CodeHeaderChecksumInvalid}
	ErrContentChecksum  = &FrameError{CodeContentChecksumInvalid}

	// A data block longer than the frame's declared maximum reports the
	// same code the reference library uses for the condition.
	ErrBlockSizeOverflow = &FrameError{CodeMaxBlockSizeInvalid}
)

func WrapCorrupted(err error) error {
	return fmt.Errorf("%w: %w", ErrCorrupted, err)
}
