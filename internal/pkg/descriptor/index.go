package descriptor

// BlockSizeIdT is a maximum block size class. The wire ids 4-7 come from
// the frame format; Default(0) is the reference library's "pick for me"
// value and never appears in a frame descriptor.
type BlockSizeIdT uint8

const (
	BlockIdDefault BlockSizeIdT = 0
	BlockId64KB    BlockSizeIdT = 4
	BlockId256KB   BlockSizeIdT = 5
	BlockId1MB     BlockSizeIdT = 6
	BlockId4MB     BlockSizeIdT = 7
)

// Valid reports whether id may appear in preferences.
func (id BlockSizeIdT) Valid() bool {
	return id == BlockIdDefault || (id >= BlockId64KB && id <= BlockId4MB)
}

// Bytes returns the block payload capacity; Default resolves to 64KiB.
func (id BlockSizeIdT) Bytes() (v int) {
	switch id {
	case BlockIdDefault, BlockId64KB:
		v = 64 << 10
	case BlockId256KB:
		v = 256 << 10
	case BlockId1MB:
		v = 1 << 20
	case BlockId4MB:
		v = 4 << 20
	}
	return
}

func (id BlockSizeIdT) Str() (s string) {
	switch id {
	case BlockIdDefault:
		s = "default"
	case BlockId64KB:
		s = "64KiB"
	case BlockId256KB:
		s = "256KiB"
	case BlockId1MB:
		s = "1MiB"
	case BlockId4MB:
		s = "4MiB"
	default:
		s = "undefined"
	}
	return
}
