package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Iotic-Labs/lz4framed"
)

// Demonstrate building an lz4 frame piecewise with a compression context.
func compress(pieces ...string) ([]byte, error) {

	ctx := lz4framed.NewCompressionContext()

	// Always close to release pooled buffers; defer is added here in
	// case of error. A double close is a noop.
	defer ctx.Close()

	// Begin opens the frame and returns its header bytes.
	frame, err := ctx.Begin(
		lz4framed.WithLevel(lz4framed.CompressionMinHC),
		lz4framed.WithContentChecksum(true),
	)
	if err != nil {
		return nil, err
	}

	// Update stages input and emits compressed blocks as they fill.
	for _, piece := range pieces {
		blocks, err := ctx.Update([]byte(piece))
		if err != nil {
			return nil, err
		}
		frame = append(frame, blocks...)
	}

	// End flushes the staged remainder and writes the frame trailer.
	tail, err := ctx.End()
	if err != nil {
		return nil, err
	}

	return append(frame, tail...), nil
}

// Demonstrate streaming decompression with the io.Reader wrapper.
func decompress(src io.Reader, dst io.Writer) error {

	rd, err := lz4framed.NewDecompressor(src)
	if err != nil {
		return err
	}

	// Always close to release pooled buffers; defer is added here in
	// case of error. A double close is a noop.
	defer rd.Close()

	if _, err := io.Copy(dst, rd); err != nil {
		return err
	}

	return rd.Close()
}

func main() {

	frame, err := compress("How now", " brown cow")
	if err != nil {
		panic(err)
	}

	var out bytes.Buffer
	if err := decompress(bytes.NewReader(frame), &out); err != nil {
		panic(err)
	}

	fmt.Println(out.String())
}
