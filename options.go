package lz4framed

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/codec"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// OptT is a function that sets a preference on a codec call or
// context. Out-of-range values are rejected with ErrOption, never
// clamped.
type OptT func(*opts.OptsT) error

// WorkerPool is an interface for a worker pool implementation.
type WorkerPool = opts.WorkerPool

// BlockSizeIdT is a type for the maximum block size class.
type BlockSizeIdT = descriptor.BlockSizeIdT

// LevelT is a type for compression level.
type LevelT = codec.LevelT

const (
	// Pick the block size class at frame start
	BlockSizeDefault = descriptor.BlockIdDefault

	// 64 KiB block size
	BlockSizeMax64KB = descriptor.BlockId64KB

	// 256 KiB block size
	BlockSizeMax256KB = descriptor.BlockId256KB

	// 1 MiB block size
	BlockSizeMax1MB = descriptor.BlockId1MB

	// 4 MiB block size
	BlockSizeMax4MB = descriptor.BlockId4MB
)

const (
	// Fastest compression
	CompressionMin = codec.LevelMin

	// Lowest level routed to the high-compression compressor
	CompressionMinHC = codec.LevelMinHC

	// Highest accepted level
	CompressionMax = codec.LevelMax
)

// Specify the maximum block size class. Defaults to BlockSizeDefault,
// which resolves to the smallest class covering the payload on
// one-shot compression and to BlockSizeMax64KB on a streaming Begin.
func WithBlockSizeId(id BlockSizeIdT) OptT {
	return func(o *opts.OptsT) error {
		if !id.Valid() {
			return fmt.Errorf("%w: block size id (%d)", zerr.ErrOption, id)
		}
		o.BlockSizeId = id
		return nil
	}
}

// Enable linked blocks on compression, letting each block reference
// the 64 KiB of output before it. Defaults to enabled.
func WithBlockLinked(enable bool) OptT {
	return func(o *opts.OptsT) error {
		o.BlockLinked = enable
		return nil
	}
}

// Enable the whole-content checksum trailer on compression. Defaults
// to disabled.
func WithContentChecksum(enable bool) OptT {
	return func(o *opts.OptsT) error {
		o.ContentChecksum = enable
		return nil
	}
}

// Enable per-block checksums on compression. Defaults to disabled.
func WithBlockChecksum(enable bool) OptT {
	return func(o *opts.OptsT) error {
		o.BlockChecksum = enable
		return nil
	}
}

// Specify compression level [CompressionMin-CompressionMax]. Defaults
// to CompressionMin. Levels below CompressionMinHC select the fast
// block compressor, the rest the high-compression one.
func WithLevel(lvl LevelT) OptT {
	return func(o *opts.OptsT) error {
		if !lvl.Valid() {
			return fmt.Errorf("%w: level (%d) out of range", zerr.ErrOption, lvl)
		}
		o.Level = lvl
		return nil
	}
}

// Emit a block for every Update call instead of staging input until a
// full block accumulates. Defaults to disabled.
func WithAutoFlush(enable bool) OptT {
	return func(o *opts.OptsT) error {
		o.AutoFlush = enable
		return nil
	}
}

// Declare the frame content length in the header. End fails with
// ErrFrameSize if the bytes written differ. One-shot Compress always
// declares the source length and ignores this option.
func WithContentSize(sz uint64) OptT {
	return func(o *opts.OptsT) error {
		o.ContentSz = &sz
		return nil
	}
}

// Specify the initial output buffer size for one-shot decompression
// of a frame that does not declare its content length. Defaults to
// 1024.
func WithBufferSize(sz int) OptT {
	return func(o *opts.OptsT) error {
		if sz <= 0 {
			return fmt.Errorf("%w: buffer size (%d)", zerr.ErrOption, sz)
		}
		o.BufferSz = sz
		return nil
	}
}

// Specify the output chunk length for DecompressionContext.Update.
// Defaults to 64 KiB.
func WithChunkLen(n int) OptT {
	return func(o *opts.OptsT) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk length (%d)", zerr.ErrOption, n)
		}
		o.ChunkLen = n
		return nil
	}
}

// Optional worker pool. Codec calls working a buffer of at least
// 8 KiB run through the pool; smaller ones stay inline, as does
// everything when no pool is set.
func WithWorkerPool(wp WorkerPool) OptT {
	return func(o *opts.OptsT) error {
		o.Pool = wp
		return nil
	}
}

// Specify the engine logger, used for recoverable frame diagnostics
// such as a declared content length that proves wrong. Defaults to a
// nop logger.
func WithLogger(log *zap.Logger) OptT {
	return func(o *opts.OptsT) error {
		if log == nil {
			return fmt.Errorf("%w: nil logger", zerr.ErrOption)
		}
		o.Log = log
		return nil
	}
}

func applyOpts(o *opts.OptsT, optFuncs []OptT) error {
	for _, oFunc := range optFuncs {
		if err := oFunc(o); err != nil {
			return err
		}
	}
	return nil
}

func parseOpts(optFuncs ...OptT) (*opts.OptsT, error) {
	o := opts.New()
	if err := applyOpts(o, optFuncs); err != nil {
		return nil, err
	}
	return o, nil
}
