package blk

// BlkT is a pooled staging buffer. The 'data' slice is kept private to
// avoid an accidental reslice which changes the capacity and breaks
// the pool.
type BlkT struct {
	data []byte
}

func (b *BlkT) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

func (b *BlkT) Cap() int {
	return cap(b.data)
}

func (b *BlkT) Trim(sz int) {
	b.data = b.data[:sz]
}

func (b *BlkT) View(start, stop int) []byte {
	return b.data[start:stop]
}

func (b *BlkT) Prefix(pos int) []byte {
	return b.data[:pos]
}

func (b *BlkT) Suffix(pos int) []byte {
	return b.data[pos:]
}

func (b *BlkT) Data() []byte {
	return b.data
}

// Fill appends src to the current length until the block reaches
// limit bytes, and returns the number of bytes taken.
func (b *BlkT) Fill(limit int, src []byte) int {
	if limit > cap(b.data) {
		limit = cap(b.data)
	}
	n := len(b.data)
	c := copy(b.data[n:limit], src)
	b.data = b.data[:n+c]
	return c
}
