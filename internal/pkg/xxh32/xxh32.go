// Package xxh32 implements the 32-bit xxHash algorithm with a zero seed,
// the variant the lz4 frame format uses for its header byte and for block
// and content checksums.
package xxh32

import (
	"encoding/binary"
	"math/bits"
)

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265263
	prime5 uint32 = 374761393

	prime12 uint32 = uint32((uint64(prime1) + uint64(prime2)) & 0xFFFFFFFF)
	prime1n uint32 = ^prime1 + 1
)

// DigestT is a streaming xxh32 with seed 0. The zero value is ready to
// use; Reset returns it to the initial state.
type DigestT struct {
	v1, v2, v3, v4 uint32
	total          uint64
	buf            [16]byte
	fill           int
}

func (d *DigestT) Reset() {
	d.v1 = prime12
	d.v2 = prime2
	d.v3 = 0
	d.v4 = prime1n
	d.total = 0
	d.fill = 0
}

func (d *DigestT) Size() int      { return 4 }
func (d *DigestT) BlockSize() int { return 16 }

func (d *DigestT) Write(p []byte) (int, error) {
	if d.total == 0 {
		d.Reset()
	}
	n := len(p)
	d.total += uint64(n)

	if d.fill > 0 {
		c := copy(d.buf[d.fill:], p)
		d.fill += c
		if d.fill < len(d.buf) {
			return n, nil
		}
		p = p[c:]
		d.stripe(d.buf[:])
		d.fill = 0
	}

	for ; len(p) >= 16; p = p[16:] {
		d.stripe(p[:16])
	}
	d.fill = copy(d.buf[:], p)

	return n, nil
}

func (d *DigestT) stripe(b []byte) {
	d.v1 = round(d.v1, binary.LittleEndian.Uint32(b[0:]))
	d.v2 = round(d.v2, binary.LittleEndian.Uint32(b[4:]))
	d.v3 = round(d.v3, binary.LittleEndian.Uint32(b[8:]))
	d.v4 = round(d.v4, binary.LittleEndian.Uint32(b[12:]))
}

// Sum32 returns the current hash without changing digest state.
func (d *DigestT) Sum32() uint32 {
	h := uint32(d.total)
	if d.total >= 16 {
		h += bits.RotateLeft32(d.v1, 1) + bits.RotateLeft32(d.v2, 7) +
			bits.RotateLeft32(d.v3, 12) + bits.RotateLeft32(d.v4, 18)
	} else {
		h += prime5
	}
	return finish(h, d.buf[:d.fill])
}

// Sum appends the little-endian hash to b, per the frame trailer layout.
func (d *DigestT) Sum(b []byte) []byte {
	return binary.LittleEndian.AppendUint32(b, d.Sum32())
}

// Checksum is the one-shot form.
func Checksum(p []byte) uint32 {
	h := uint32(len(p))
	if len(p) < 16 {
		h += prime5
	} else {
		v1, v2, v3, v4 := prime12, prime2, uint32(0), prime1n
		for ; len(p) >= 16; p = p[16:] {
			v1 = round(v1, binary.LittleEndian.Uint32(p[0:]))
			v2 = round(v2, binary.LittleEndian.Uint32(p[4:]))
			v3 = round(v3, binary.LittleEndian.Uint32(p[8:]))
			v4 = round(v4, binary.LittleEndian.Uint32(p[12:]))
		}
		h += bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	}
	return finish(h, p)
}

func round(acc, lane uint32) uint32 {
	return bits.RotateLeft32(acc+lane*prime2, 13) * prime1
}

func finish(h uint32, tail []byte) uint32 {
	for ; len(tail) >= 4; tail = tail[4:] {
		h += binary.LittleEndian.Uint32(tail) * prime3
		h = bits.RotateLeft32(h, 17) * prime4
	}
	for _, c := range tail {
		h += uint32(c) * prime5
		h = bits.RotateLeft32(h, 11) * prime1
	}

	h ^= h >> 15
	h *= prime2
	h ^= h >> 13
	h *= prime3
	h ^= h >> 16

	return h
}
