package header

import "github.com/Iotic-Labs/lz4framed/internal/pkg/descriptor"

// see lz4_Frame_format.md
const (
	MinSz  = 7  // magic, FLG, BD, checksum byte
	MaxSz  = 19 // plus content size and dictionary id
	SkipSz = 8  // skippable frame magic plus length word
)

var Magic = [4]byte{0x04, 0x22, 0x4d, 0x18}

const skipMagic = uint32(0x184D2A50)

type HeaderT struct {
	Sz        int
	ContentSz uint64
	DictId    uint32
	Flags     descriptor.Flags
	BlockDesc descriptor.Block
}
