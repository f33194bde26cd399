package growbuf

// GrowBufT is the decompression output buffer. When the frame declares
// its content length the buffer reserves exactly that much and should
// never grow; otherwise it starts from an estimate and doubles as
// blocks land.
type GrowBufT struct {
	data  []byte
	exact bool
}

// NewExact reserves n bytes for a frame with a declared content length.
func NewExact(n int) *GrowBufT {
	return &GrowBufT{data: make([]byte, 0, n), exact: true}
}

// NewEstimate reserves a starting capacity for an unknown content
// length, at least one byte so doubling always makes progress.
func NewEstimate(n int) *GrowBufT {
	if n < 1 {
		n = 1
	}
	return &GrowBufT{data: make([]byte, 0, n)}
}

func (g *GrowBufT) Exact() bool { return g.exact }
func (g *GrowBufT) Len() int    { return len(g.data) }
func (g *GrowBufT) Free() int   { return cap(g.data) - len(g.data) }

// Loosen abandons the exact reservation when the declared content
// length proves wrong; the buffer doubles from here on.
func (g *GrowBufT) Loosen() { g.exact = false }

// Tail is the writable free region. Commit extends the length over
// bytes written there.
func (g *GrowBufT) Tail() []byte {
	return g.data[len(g.data):cap(g.data)]
}

func (g *GrowBufT) Commit(n int) {
	g.data = g.data[:len(g.data)+n]
}

// Grow doubles capacity until at least need free bytes are available.
func (g *GrowBufT) Grow(need int) {
	if g.Free() >= need {
		return
	}
	newCap := cap(g.data) * 2
	if newCap == 0 {
		newCap = 1
	}
	for newCap-len(g.data) < need {
		newCap *= 2
	}
	data := make([]byte, len(g.data), newCap)
	copy(data, g.data)
	g.data = data
}

// Bytes returns the output sized to its length. Excess capacity is
// copied away so a small result does not pin a large reservation.
func (g *GrowBufT) Bytes() []byte {
	if len(g.data) == cap(g.data) {
		return g.data
	}
	out := make([]byte, len(g.data))
	copy(out, g.data)
	return out
}
