package codec

import (
	"errors"

	"github.com/pierrec/lz4/v4"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// LevelT is the frame compression level, 0..LevelMax. Levels below
// LevelMinHC select the fast block compressor, the rest the
// high-compression one.
type LevelT int

const (
	LevelMin   LevelT = 0
	LevelMinHC LevelT = 3
	LevelMax   LevelT = 16
)

func (l LevelT) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

type CompressorI interface {
	// Compress encodes src into dst. A zero count with a nil error
	// means src did not shrink into dst; callers store such blocks
	// uncompressed.
	Compress(src, dst []byte) (int, error)
}

func NewCompressor(level LevelT) CompressorI {
	if level < LevelMinHC {
		return fastCompressor{}
	}
	return hcCompressor{depth: hcDepth(level)}
}

type fastCompressor struct{}

func (fastCompressor) Compress(src, dst []byte) (int, error) {
	return lz4.CompressBlock(src, dst, nil)
}

type hcCompressor struct {
	depth lz4.CompressionLevel
}

func (c hcCompressor) Compress(src, dst []byte) (int, error) {
	return lz4.CompressBlockHC(src, dst, c.depth, nil, nil)
}

// hcDepth maps frame levels onto backend depths. The backend tops out
// at Level9; higher frame levels clamp, which affects ratio only and
// never the wire format.
func hcDepth(l LevelT) lz4.CompressionLevel {
	switch l {
	case 3:
		return lz4.Level3
	case 4:
		return lz4.Level4
	case 5:
		return lz4.Level5
	case 6:
		return lz4.Level6
	case 7:
		return lz4.Level7
	case 8:
		return lz4.Level8
	}
	return lz4.Level9
}

type DecompressorI interface {
	Decompress(src, dst []byte) (int, error)
	// Raw records an uncompressed block, which still enters the
	// back-reference window in linked mode.
	Raw(data []byte)
	Reset()
}

func NewDecompressor(linked bool) DecompressorI {
	if linked {
		return &linkedDecompressor{win: newWindow()}
	}
	return indieDecompressor{}
}

type indieDecompressor struct{}

func (indieDecompressor) Decompress(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, errors.Join(zerr.ErrDecompressFail, err)
	}
	return n, nil
}

func (indieDecompressor) Raw([]byte) {}
func (indieDecompressor) Reset()     {}

type linkedDecompressor struct {
	win *winT
}

func (c *linkedDecompressor) Decompress(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlockWithDict(src, dst, c.win.data)
	if err != nil {
		return 0, errors.Join(zerr.ErrDecompressFail, err)
	}
	c.win.update(dst[:n])
	return n, nil
}

func (c *linkedDecompressor) Raw(data []byte) {
	c.win.update(data)
}

func (c *linkedDecompressor) Reset() {
	c.win.reset()
}
