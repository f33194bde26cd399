package lz4framed

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestCompressorDecompressor(t *testing.T) {
	src := genText(150 << 10)

	var buf bytes.Buffer
	wr, err := NewCompressor(&buf,
		WithBlockSizeId(BlockSizeMax64KB),
		WithContentChecksum(true),
		WithLevel(CompressionMinHC),
	)
	if err != nil {
		t.Fatalf("Expected no compressor error: %v", err)
	}

	for off := 0; off < len(src); off += 4096 {
		end := off + 4096
		if end > len(src) {
			end = len(src)
		}

		n, err := wr.Write(src[off:end])
		if err != nil {
			t.Fatalf("Expected no write error: %v", err)
		}
		if n != end-off {
			t.Fatalf("Expected %d bytes consumed, got:%d", end-off, n)
		}
	}
	if err = wr.Close(); err != nil {
		t.Fatalf("Expected no close error: %v", err)
	}

	rd, err := NewDecompressor(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Expected no decompressor error: %v", err)
	}
	defer rd.Close()

	got, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("Expected no read error: %v", err)
	}
	if !bytes.Equal(src, got) {
		t.Errorf("Expected round trip equality")
	}

	if err = rd.Close(); err != nil {
		t.Errorf("Expected no close error: %v", err)
	}
}

func TestDecompressorSmallReads(t *testing.T) {
	src := genText(10 << 10)

	frame, err := Compress(src)
	if err != nil {
		t.Fatalf("Expected no compress error: %v", err)
	}

	// One byte per underlying read exercises incremental pushes.
	rd, err := NewDecompressor(iotest.OneByteReader(bytes.NewReader(frame)))
	if err != nil {
		t.Fatalf("Expected no decompressor error: %v", err)
	}
	defer rd.Close()

	got, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("Expected no read error: %v", err)
	}
	if !bytes.Equal(src, got) {
		t.Errorf("Expected round trip equality")
	}
}

func TestDecompressorTruncated(t *testing.T) {
	frame, err := Compress(genText(4000))
	if err != nil {
		t.Fatalf("Expected no compress error: %v", err)
	}

	rd, err := NewDecompressor(bytes.NewReader(frame[:len(frame)-4]))
	if err != nil {
		t.Fatalf("Expected no decompressor error: %v", err)
	}
	defer rd.Close()

	if _, err = io.ReadAll(rd); !errors.Is(err, ErrFrameIncomplete) {
		t.Errorf("Expected %v, got:%v", ErrFrameIncomplete, err)
	}
}

func TestDecompressorTrailingInput(t *testing.T) {
	frame, err := Compress([]byte("payload"))
	if err != nil {
		t.Fatalf("Expected no compress error: %v", err)
	}
	joined := append(frame, []byte("trailing garbage")...)

	rd, err := NewDecompressor(bytes.NewReader(joined))
	if err != nil {
		t.Fatalf("Expected no decompressor error: %v", err)
	}
	defer rd.Close()

	got, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("Expected no read error: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Expected payload, got:%q", got)
	}
}

func TestCompressorAfterClose(t *testing.T) {
	var buf bytes.Buffer

	wr, err := NewCompressor(&buf)
	if err != nil {
		t.Fatalf("Expected no compressor error: %v", err)
	}
	if _, err = wr.Write([]byte("x")); err != nil {
		t.Fatalf("Expected no write error: %v", err)
	}

	if err = wr.Close(); err != nil {
		t.Fatalf("Expected no close error: %v", err)
	}
	if err = wr.Close(); err != nil {
		t.Errorf("Expected nil on double close, got:%v", err)
	}
	if _, err = wr.Write([]byte("y")); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected %v, got:%v", ErrClosed, err)
	}

	// The closed stream is a complete frame.
	got, err := Decompress(buf.Bytes())
	if err != nil || !bytes.Equal(got, []byte("x")) {
		t.Errorf("Expected x, got:%q (%v)", got, err)
	}
}

func TestWrapperBadOptions(t *testing.T) {
	var buf bytes.Buffer

	if _, err := NewCompressor(&buf, WithLevel(99)); !errors.Is(err, ErrOption) {
		t.Errorf("Expected %v, got:%v", ErrOption, err)
	}
	if _, err := NewDecompressor(bytes.NewReader(nil), WithChunkLen(0)); !errors.Is(err, ErrOption) {
		t.Errorf("Expected %v, got:%v", ErrOption, err)
	}
}
