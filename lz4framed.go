// Package lz4framed implements the LZ4 frame format: a magic word and
// descriptor header, a sequence of independently or chain-linked
// compressed blocks with optional checksums, and an end mark trailer.
//
// It offers one-shot Compress/Decompress over whole buffers, reusable
// streaming contexts (CompressionContext, DecompressionContext), and
// io.WriteCloser/io.ReadCloser wrappers over those contexts. The LZ4
// block primitive is github.com/pierrec/lz4/v4; this package supplies
// the frame protocol around it.
package lz4framed

import (
	"fmt"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/frame"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/guard"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// Compress encodes src as one complete frame. The header always
// declares len(src) as the content length, and BlockSizeDefault
// resolves to the smallest class covering src. Empty input fails with
// ErrNoData.
func Compress(src []byte, options ...OptT) ([]byte, error) {
	if len(src) == 0 {
		return nil, zerr.ErrNoData
	}

	o, err := parseOpts(options...)
	if err != nil {
		return nil, err
	}

	var dst []byte
	guard.Offload(o.Pool, len(src), func() {
		dst, err = frame.Compress(src, o)
	})
	return dst, err
}

// Decompress decodes the first frame in src, ignoring any input after
// its end mark. A declared content length sizes the output buffer
// exactly; otherwise the buffer starts at max(WithBufferSize, input
// remaining after the header) and doubles as needed. Truncated input
// fails with ErrFrameIncomplete, empty input with ErrNoData.
func Decompress(src []byte, options ...OptT) ([]byte, error) {
	if len(src) == 0 {
		return nil, zerr.ErrNoData
	}

	o, err := parseOpts(options...)
	if err != nil {
		return nil, err
	}

	var dst []byte
	guard.Offload(o.Pool, len(src), func() {
		dst, err = frame.Decompress(src, o)
	})
	return dst, err
}

// GetBlockSize returns the payload capacity in bytes of a block size
// class; BlockSizeDefault reports the 64 KiB class.
func GetBlockSize(id BlockSizeIdT) (int, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("%w: block size id (%d)", zerr.ErrOption, id)
	}
	return id.Bytes(), nil
}
