package growbuf

import (
	"bytes"
	"testing"
)

func TestExactNeverGrows(t *testing.T) {
	g := NewExact(11)
	if !g.Exact() || g.Free() != 11 {
		t.Fatalf("Expected exact 11-byte reservation, got free %d", g.Free())
	}

	n := copy(g.Tail(), []byte("hello world"))
	g.Commit(n)

	out := g.Bytes()
	if string(out) != "hello world" {
		t.Errorf("Expected hello world, got:%q", out)
	}
	if cap(out) != 11 {
		t.Errorf("Expected exact capacity 11, got:%d", cap(out))
	}
}

func TestDoubling(t *testing.T) {
	g := NewEstimate(4)

	g.Grow(4) // fits, no change
	if g.Free() != 4 {
		t.Fatalf("Expected no growth, got free %d", g.Free())
	}

	copy(g.Tail(), "abcd")
	g.Commit(4)

	g.Grow(1)
	if g.Free() != 4 { // 4 -> 8
		t.Errorf("Expected capacity to double to 8, got free %d", g.Free())
	}

	g.Grow(100) // 8 -> 16 -> ... -> 128
	if g.Free() != 124 {
		t.Errorf("Expected doubling until 100 free, got:%d", g.Free())
	}

	copy(g.Tail(), "efgh")
	g.Commit(4)
	if got := g.Bytes(); !bytes.Equal(got, []byte("abcdefgh")) {
		t.Errorf("Expected contents preserved across growth, got:%q", got)
	}
}

func TestEstimateFloor(t *testing.T) {
	g := NewEstimate(0)
	if g.Free() != 1 {
		t.Errorf("Expected floor of one byte, got:%d", g.Free())
	}
	g = NewEstimate(-5)
	if g.Free() != 1 {
		t.Errorf("Expected floor of one byte, got:%d", g.Free())
	}
}

func TestExactZeroCanStillGrow(t *testing.T) {
	g := NewExact(0)
	g.Grow(3)
	n := copy(g.Tail(), "abc")
	g.Commit(n)
	if string(g.Bytes()) != "abc" {
		t.Errorf("Expected growth from zero reservation")
	}
}

func TestShrinkCopy(t *testing.T) {
	g := NewEstimate(64)
	copy(g.Tail(), "xy")
	g.Commit(2)

	out := g.Bytes()
	if string(out) != "xy" || cap(out) != 2 {
		t.Errorf("Expected trimmed copy, got len=%d cap=%d", len(out), cap(out))
	}
}
