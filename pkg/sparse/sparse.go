package sparse

import (
	"encoding/binary"
	"io"
)

const scanSz = 4 << 10

// Writer skips zero runs on seekable outputs so the underlying file
// ends up sparse. Non-seekable outputs get plain writes.
//
// Skipped bytes are reported as written; the pending hole is committed
// by the next data write, Flush, or Close.
type Writer struct {
	wr   io.Writer
	hole int64
}

func NewWriter(wr io.Writer) *Writer {
	return &Writer{wr: wr}
}

func (w *Writer) Write(data []byte) (n int, err error) {

	seeker, ok := w.wr.(io.Seeker)
	if !ok {
		return w.wr.Write(data)
	}

	for len(data) > 0 {

		blk := data
		if len(blk) > scanSz {
			blk = blk[:scanSz]
		}
		data = data[len(blk):]

		skip := zeroPrefix(blk)
		w.hole += int64(skip)
		n += skip

		if skip == len(blk) {
			continue
		}

		// Data follows the hole; seek past it and write.
		if w.hole > 0 {
			if _, err = seeker.Seek(w.hole, io.SeekCurrent); err != nil {
				return
			}
			w.hole = 0
		}

		var wn int
		wn, err = w.wr.Write(blk[skip:])
		n += wn
		if err != nil {
			return
		}
	}

	return
}

// ReadFrom keeps reads aligned to the scan size so zero runs land on
// scan boundaries.
func (w *Writer) ReadFrom(rd io.Reader) (n int64, err error) {

	buf := make([]byte, scanSz)

	for {
		nr, rerr := io.ReadFull(rd, buf)
		n += int64(nr)

		if nr > 0 {
			if _, err = w.Write(buf[:nr]); err != nil {
				return
			}
		}

		switch rerr {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return
		default:
			err = rerr
			return
		}
	}
}

type flusherI interface {
	Flush() error
}

// Flush seeks past any pending hole and flushes the underlying writer
// when it supports it.
func (w *Writer) Flush() error {
	if w.hole > 0 {
		if _, err := w.wr.(io.Seeker).Seek(w.hole, io.SeekCurrent); err != nil {
			return err
		}
		w.hole = 0
	}

	if flusher, ok := w.wr.(flusherI); ok {
		return flusher.Flush()
	}

	return nil
}

var lastByte = []byte{0}

// Close materializes a trailing hole. A seek alone does not extend a
// file, so the hole's final byte is written explicitly. The underlying
// writer is closed when it supports it.
func (w *Writer) Close() error {

	if w.hole > 0 {
		if w.hole > 1 {
			if _, err := w.wr.(io.Seeker).Seek(w.hole-1, io.SeekCurrent); err != nil {
				return err
			}
		}
		if _, err := w.wr.Write(lastByte); err != nil {
			return err
		}
		w.hole = 0
	}

	if closer, ok := w.wr.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func zeroPrefix(data []byte) int {
	i := 0
	for ; i+8 <= len(data); i += 8 {
		if binary.LittleEndian.Uint64(data[i:]) != 0 {
			break
		}
	}
	for ; i < len(data); i++ {
		if data[i] != 0 {
			break
		}
	}
	return i
}
