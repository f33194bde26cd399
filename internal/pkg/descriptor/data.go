package descriptor

// DataBlockSize is the 4-byte little-endian word preceding each data
// block: low 31 bits are the payload length, the high bit marks an
// uncompressed block, and an all-zero word is the frame end mark.
type DataBlockSize uint32

const (
	sizeMask   = 0x7FFFFFFF
	uncmpMask  = 0x80000000
	endMarkVal = 0x00000000
)

func (s DataBlockSize) Size() int          { return int(s & sizeMask) }
func (s DataBlockSize) EndMark() bool      { return s == endMarkVal }
func (s DataBlockSize) Uncompressed() bool { return s&uncmpMask != 0 }

func (s *DataBlockSize) SetSize(v int)    { *s = *s&^sizeMask | DataBlockSize(v)&sizeMask }
func (s *DataBlockSize) SetUncompressed() { *s |= uncmpMask }
