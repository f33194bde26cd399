package opts

import (
	"go.uber.org/zap"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/codec"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"
)

type BlockSizeIdT = descriptor.BlockSizeIdT
type LevelT = codec.LevelT

const (
	DefaultBufferSz = 1024
	DefaultChunkLen = 64 << 10
)

// WorkerPool accepts codec tasks at or above the offload threshold.
// Submit must run the task exactly once.
type WorkerPool interface {
	Submit(task func())
}

type OptsT struct {
	Level           LevelT
	BlockSizeId     BlockSizeIdT
	BlockLinked     bool
	BlockChecksum   bool
	ContentChecksum bool
	AutoFlush       bool
	ContentSz       *uint64
	BufferSz        int
	ChunkLen        int
	Pool            WorkerPool
	Log             *zap.Logger
}

// New returns the reference library's defaults: linked blocks, size
// class picked at frame start, fast level, no checksums.
func New() *OptsT {
	return &OptsT{
		BlockLinked: true,
		BufferSz:    DefaultBufferSz,
		ChunkLen:    DefaultChunkLen,
		Log:         zap.NewNop(),
	}
}

func (o *OptsT) NewCompressor() codec.CompressorI {
	return codec.NewCompressor(o.Level)
}
