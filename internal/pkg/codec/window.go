package codec

const windowSz = 64 << 10

// winT holds the trailing 64KiB of decoded output, the maximum
// back-reference distance for linked blocks.
type winT struct {
	data []byte
}

func newWindow() *winT {
	return &winT{data: make([]byte, 0, windowSz)}
}

func (w *winT) update(out []byte) {
	switch {
	case len(out) >= windowSz:
		w.data = w.data[:windowSz]
		copy(w.data, out[len(out)-windowSz:])
	case len(w.data)+len(out) > windowSz:
		keep := windowSz - len(out)
		copy(w.data, w.data[len(w.data)-keep:])
		w.data = append(w.data[:keep], out...)
	default:
		w.data = append(w.data, out...)
	}
}

func (w *winT) reset() {
	w.data = w.data[:0]
}
