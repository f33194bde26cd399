package test

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

// Generated corpora for the cross-package tests. Digests are computed
// once up front so identity checks stay cheap.

const (
	TextSample = iota
	BinarySample
	ZeroSample
	MixedSample
)

var (
	cacheText       = genPlainText(6 << 20)
	cacheTextSha2   = Sha2sum(cacheText)
	cacheBinary     = genBinary(4 << 20)
	cacheBinarySha2 = Sha2sum(cacheBinary)
	cacheZero       = make([]byte, 2<<20)
	cacheZeroSha2   = Sha2sum(cacheZero)
	cacheMixed      = genMixed(3 << 20)
	cacheMixedSha2  = Sha2sum(cacheMixed)
)

// LoadSample returns the shared corpus for ty and its digest. The
// slice is shared; use DupeSample before mutating.
func LoadSample(t testing.TB, ty int) ([]byte, string) {

	switch ty {
	case TextSample:
		return cacheText, cacheTextSha2
	case BinarySample:
		return cacheBinary, cacheBinarySha2
	case ZeroSample:
		return cacheZero, cacheZeroSha2
	case MixedSample:
		return cacheMixed, cacheMixedSha2
	}

	t.Fatalf("Cannot find sample")
	return nil, ""
}

func DupeSample(t testing.TB, ty int) ([]byte, string) {
	data, sha2 := LoadSample(t, ty)
	nData := make([]byte, len(data))
	copy(nData, data)
	return nData, sha2
}

func Sha2sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func genPlainText(n int) []byte {
	phrase := "pack my box with five dozen liquor jugs while the band plays on. "
	return []byte(strings.Repeat(phrase, n/len(phrase)+1)[:n])
}

func genBinary(n int) []byte {
	data := make([]byte, n)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return data
}

// genMixed interleaves compressible text, zero runs, and random data
// so frames cross entropy boundaries mid-block.
func genMixed(n int) []byte {

	var buf bytes.Buffer
	for buf.Len() < n {
		buf.Write(genPlainText(16 << 10))
		buf.Write(make([]byte, 8<<10))
		buf.Write(genBinary(4 << 10))
	}

	return buf.Bytes()[:n]
}
