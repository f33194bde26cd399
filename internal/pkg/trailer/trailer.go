package trailer

import "encoding/binary"

const (
	EndMarkSz = 4
	HashSz    = 4
)

// AppendEndMark terminates the frame with a zero block length word.
func AppendEndMark(dst []byte) []byte {
	return append(dst, 0, 0, 0, 0)
}

// AppendEndMarkWithHash terminates the frame and appends the content
// checksum after the end mark.
func AppendEndMarkWithHash(dst []byte, xxh uint32) []byte {
	dst = append(dst, 0, 0, 0, 0)
	return binary.LittleEndian.AppendUint32(dst, xxh)
}
