package render

import (
	"math"
	"testing"
)

func frameValues(dst []byte) []float32 {
	var out []float32
	for i := 0; i+3 < len(dst); i += 4 {
		bits := uint32(dst[i]) |
			uint32(dst[i+1])<<8 |
			uint32(dst[i+2])<<16 |
			uint32(dst[i+3])<<24
		out = append(out, math.Float32frombits(bits))
	}
	return out
}

func TestCopyFrames_LittleEndianFrames(t *testing.T) {
	src := []float32{1, -0.5}
	dst := make([]byte, 12)

	cursor := copyFrames(dst, src, 0)
	if cursor != 2 {
		t.Errorf("cursor = %d, want 2", cursor)
	}

	got := frameValues(dst)
	want := []float32{1, -0.5, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCopyFrames_AdvancesAcrossCalls(t *testing.T) {
	src := make([]float32, 10)
	for i := range src {
		src[i] = float32(i)
	}
	dst := make([]byte, 16) // 4 frames per call

	cursor := copyFrames(dst, src, 0)
	if cursor != 4 {
		t.Fatalf("first call cursor = %d, want 4", cursor)
	}
	cursor = copyFrames(dst, src, cursor)
	if cursor != 8 {
		t.Fatalf("second call cursor = %d, want 8", cursor)
	}

	// Third call exhausts src and zero-fills the remainder.
	cursor = copyFrames(dst, src, cursor)
	if cursor != 10 {
		t.Fatalf("third call cursor = %d, want 10", cursor)
	}
	got := frameValues(dst)
	want := []float32{8, 9, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Past the end the cursor stays put and the output is silence.
	if cursor = copyFrames(dst, src, cursor); cursor != 10 {
		t.Errorf("cursor after exhaustion = %d, want 10", cursor)
	}
	for i, v := range frameValues(dst) {
		if v != 0 {
			t.Errorf("frame %d = %v, want silence", i, v)
		}
	}
}

func TestCopyFrames_IgnoresTrailingBytes(t *testing.T) {
	src := []float32{1, 2}
	dst := make([]byte, 6) // one full frame plus two stray bytes

	if cursor := copyFrames(dst, src, 0); cursor != 1 {
		t.Errorf("cursor = %d, want 1", cursor)
	}
	if dst[4] != 0 || dst[5] != 0 {
		t.Errorf("stray bytes written: % x", dst[4:])
	}
}
