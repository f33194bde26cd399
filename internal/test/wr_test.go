package test

import (
	"bytes"
	"errors"
	mrand "math/rand"
	"testing"

	"github.com/gammazero/workerpool"

	"github.com/Iotic-Labs/lz4framed"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/blk"
)

func testBorrowed(t testing.TB) {
	if cnt := blk.CntBorrowed(); cnt != 0 {
		t.Errorf("Expected 0 borrowed blocks, got:%v", cnt)
	}
}

type writeBasicT struct {
	sample  int
	sz      int
	options []lz4framed.OptT
}

func writeBasics() map[string]writeBasicT {
	return map[string]writeBasicT{
		"default": {TextSample, 256 << 10, nil},
		"level_hc": {TextSample, 256 << 10, []lz4framed.OptT{
			lz4framed.WithLevel(lz4framed.CompressionMinHC)}},
		"level_max": {TextSample, 64 << 10, []lz4framed.OptT{
			lz4framed.WithLevel(lz4framed.CompressionMax)}},
		"independent": {TextSample, 256 << 10, []lz4framed.OptT{
			lz4framed.WithBlockLinked(false)}},
		"block_checksum": {MixedSample, 256 << 10, []lz4framed.OptT{
			lz4framed.WithBlockChecksum(true)}},
		"all_checksums": {MixedSample, 256 << 10, []lz4framed.OptT{
			lz4framed.WithBlockChecksum(true),
			lz4framed.WithContentChecksum(true)}},
		"bs_256kb": {TextSample, 1 << 20, []lz4framed.OptT{
			lz4framed.WithBlockSizeId(lz4framed.BlockSizeMax256KB)}},
		"bs_1mb": {MixedSample, 3 << 20, []lz4framed.OptT{
			lz4framed.WithBlockSizeId(lz4framed.BlockSizeMax1MB)}},
		"bs_4mb": {BinarySample, 4 << 20, []lz4framed.OptT{
			lz4framed.WithBlockSizeId(lz4framed.BlockSizeMax4MB)}},
		"uncompressable": {BinarySample, 1 << 20, nil},
		"zeros":          {ZeroSample, 2 << 20, nil},
		"autoflush": {TextSample, 150 << 10, []lz4framed.OptT{
			lz4framed.WithAutoFlush(true)}},
	}
}

func TestWriteBasics(t *testing.T) {
	defer testBorrowed(t)

	for name, tc := range writeBasics() {
		t.Run(name, func(t *testing.T) {
			corpus, _ := LoadSample(t, tc.sample)
			src := corpus[:tc.sz]

			var frame bytes.Buffer

			wr, err := lz4framed.NewCompressor(&frame, tc.options...)
			if err != nil {
				t.Fatalf("Fail new compressor: %v", err)
			}

			spinWrite(t, wr, src, 32<<10)

			if err := wr.Close(); err != nil {
				t.Fatalf("Fail close: %v", err)
			}

			got, err := decompressAll(bytes.NewReader(frame.Bytes()))
			if err != nil {
				t.Fatalf("Fail decompress: %v", err)
			}
			if Sha2sum(got) != Sha2sum(src) {
				t.Errorf("Expected digests to match")
			}
		})
	}
}

func TestWriteOneByteAtATime(t *testing.T) {
	defer testBorrowed(t)

	tests := map[string]struct {
		options []lz4framed.OptT
	}{
		"staged": {},
		"autoflush": {[]lz4framed.OptT{
			lz4framed.WithAutoFlush(true)}},
	}

	corpus, _ := LoadSample(t, TextSample)
	src := corpus[:10<<10]

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var frame bytes.Buffer

			wr, err := lz4framed.NewCompressor(&frame, tc.options...)
			if err != nil {
				t.Fatalf("Fail new compressor: %v", err)
			}

			spinWrite(t, wr, src, 1)

			if err := wr.Close(); err != nil {
				t.Fatalf("Fail close: %v", err)
			}

			got, err := decompressAll(bytes.NewReader(frame.Bytes()))
			if err != nil {
				t.Fatalf("Fail decompress: %v", err)
			}
			if !bytes.Equal(got, src) {
				t.Errorf("Expected payload to survive bytewise writes")
			}
		})
	}
}

func TestWriteRandomSteps(t *testing.T) {
	defer testBorrowed(t)

	corpus, _ := LoadSample(t, MixedSample)
	src := corpus[:2<<20]

	var frame bytes.Buffer

	wr, err := lz4framed.NewCompressor(&frame,
		lz4framed.WithBlockSizeId(lz4framed.BlockSizeMax256KB))
	if err != nil {
		t.Fatalf("Fail new compressor: %v", err)
	}

	for off := 0; off < len(src); {
		step := mrand.Intn(100<<10) + 1
		if off+step > len(src) {
			step = len(src) - off
		}
		if _, err := wr.Write(src[off : off+step]); err != nil {
			t.Fatalf("Fail write: %v", err)
		}
		off += step
	}

	if err := wr.Close(); err != nil {
		t.Fatalf("Fail close: %v", err)
	}

	got, err := decompressAll(bytes.NewReader(frame.Bytes()))
	if err != nil {
		t.Fatalf("Fail decompress: %v", err)
	}
	if Sha2sum(got) != Sha2sum(src) {
		t.Errorf("Expected digests to match")
	}
}

func testWriteWorkerPool(t *testing.T, n, poolSz int) {
	defer testBorrowed(t)

	wp := workerpool.New(poolSz)
	defer wp.StopWait()

	corpus, _ := LoadSample(t, MixedSample)
	src := corpus[:n]

	var frame bytes.Buffer

	wr, err := lz4framed.NewCompressor(&frame,
		lz4framed.WithWorkerPool(wp),
		lz4framed.WithBlockChecksum(true))
	if err != nil {
		t.Fatalf("Fail new compressor: %v", err)
	}

	spinWrite(t, wr, src, 64<<10)

	if err := wr.Close(); err != nil {
		t.Fatalf("Fail close: %v", err)
	}

	got, err := decompressAll(bytes.NewReader(frame.Bytes()),
		lz4framed.WithWorkerPool(wp))
	if err != nil {
		t.Fatalf("Fail decompress: %v", err)
	}
	if Sha2sum(got) != Sha2sum(src) {
		t.Errorf("Expected digests to match")
	}
}

func TestWriteWorkerPool(t *testing.T)        { testWriteWorkerPool(t, 2<<20, 4) }
func TestWriteWorkerPoolMinimal(t *testing.T) { testWriteWorkerPool(t, 100<<10, 1) }

func TestWriteContentSize(t *testing.T) {
	defer testBorrowed(t)

	corpus, _ := LoadSample(t, TextSample)
	src := corpus[:100<<10]

	t.Run("match", func(t *testing.T) {
		var frame bytes.Buffer

		wr, err := lz4framed.NewCompressor(&frame,
			lz4framed.WithContentSize(uint64(len(src))))
		if err != nil {
			t.Fatalf("Fail new compressor: %v", err)
		}

		spinWrite(t, wr, src, 16<<10)

		if err := wr.Close(); err != nil {
			t.Fatalf("Fail close: %v", err)
		}

		got, err := decompressAll(bytes.NewReader(frame.Bytes()))
		if err != nil {
			t.Fatalf("Fail decompress: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Errorf("Expected payload to round trip")
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		var frame bytes.Buffer

		wr, err := lz4framed.NewCompressor(&frame,
			lz4framed.WithContentSize(uint64(len(src))+1))
		if err != nil {
			t.Fatalf("Fail new compressor: %v", err)
		}

		spinWrite(t, wr, src, 16<<10)

		if err := wr.Close(); !errors.Is(err, lz4framed.ErrFrameSize) {
			t.Errorf("Expected frame size error, got:%v", err)
		}
	})
}

func TestWriteFail(t *testing.T) {
	defer testBorrowed(t)

	corpus, _ := LoadSample(t, TextSample)
	src := corpus[:256<<10]

	t.Run("on_header", func(t *testing.T) {
		wr, err := lz4framed.NewCompressor(&failWriter{after: 0, err: errInject})
		if !errors.Is(err, errInject) {
			t.Errorf("Expected injected fault, got:%v", err)
		}
		if wr != nil {
			t.Errorf("Expected nil writer on fault")
		}
	})

	t.Run("on_block", func(t *testing.T) {
		wr, err := lz4framed.NewCompressor(&failWriter{after: 1000, err: errInject})
		if err != nil {
			t.Fatalf("Fail new compressor: %v", err)
		}

		var failed error
		for off := 0; off < len(src) && failed == nil; off += 32 << 10 {
			_, failed = wr.Write(src[off : off+32<<10])
		}

		cerr := wr.Close()
		if failed == nil {
			failed = cerr
		}
		if !errors.Is(failed, errInject) {
			t.Errorf("Expected injected fault, got:%v", failed)
		}
	})
}

func TestOneShotSamples(t *testing.T) {
	defer testBorrowed(t)

	samples := map[string]int{
		"text":   TextSample,
		"binary": BinarySample,
		"zeros":  ZeroSample,
		"mixed":  MixedSample,
	}

	for name, ty := range samples {
		t.Run(name, func(t *testing.T) {
			src, sha2 := LoadSample(t, ty)

			frame, err := lz4framed.Compress(src)
			if err != nil {
				t.Fatalf("Fail compress: %v", err)
			}

			got, err := lz4framed.Decompress(frame)
			if err != nil {
				t.Fatalf("Fail decompress: %v", err)
			}
			if Sha2sum(got) != sha2 {
				t.Errorf("Expected digests to match")
			}
		})
	}
}

func spinWrite(t *testing.T, wr *lz4framed.Compressor, src []byte, chunkSz int) {
	t.Helper()

	for off := 0; off < len(src); off += chunkSz {
		end := off + chunkSz
		if end > len(src) {
			end = len(src)
		}

		n, err := wr.Write(src[off:end])
		if err != nil {
			t.Fatalf("Fail write: %v", err)
		}
		if n != end-off {
			t.Fatalf("Expected %v bytes written, got:%v", end-off, n)
		}
	}
}

type failWriter struct {
	after int
	err   error
}

func (w *failWriter) Write(data []byte) (int, error) {
	if w.after <= 0 {
		return 0, w.err
	}
	if len(data) > w.after {
		n := w.after
		w.after = 0
		return n, w.err
	}
	w.after -= len(data)
	return len(data), nil
}
