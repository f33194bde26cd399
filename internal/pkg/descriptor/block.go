package descriptor

// Block is the BD byte: block size id in bits 4-6, the rest reserved.
type Block uint8

func (b Block) Id() BlockSizeIdT {
	return BlockSizeIdT(b >> 4 & 0x7)
}

func (b Block) Bytes() int {
	return b.Id().Bytes()
}

// Valid rejects reserved bits and out-of-range size ids on a descriptor
// read off the wire, where Default never occurs.
func (b Block) Valid() bool {
	if b&0x8F != 0 {
		return false
	}
	id := b.Id()
	return id >= BlockId64KB && id <= BlockId4MB
}

func (b *Block) SetId(id BlockSizeIdT) {
	*b = Block(id&0x7) << 4
}
