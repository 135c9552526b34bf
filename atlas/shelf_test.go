package atlas

import (
	"errors"
	"image"
	"testing"
)

func TestShelfPacker_Basic(t *testing.T) {
	p := NewShelfPacker(100, 100, 0)

	x, y, err := p.Allocate(20, 20)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", x, y)
	}

	x, y, err = p.Allocate(20, 10)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if x != 20 || y != 0 {
		t.Errorf("expected (20,0), got (%d,%d)", x, y)
	}
}

func TestShelfPacker_ShelfTransition(t *testing.T) {
	p := NewShelfPacker(10, 100, 0)

	const h1 = 5
	tests := []struct {
		w, h  int
		wantX int
		wantY int
	}{
		{6, h1, 0, 0},
		{6, 3, 0, h1}, // 6+6 > 10 starts a new shelf below the first
		{4, 2, 6, h1},
	}
	for i, tt := range tests {
		x, y, err := p.Allocate(tt.w, tt.h)
		if err != nil {
			t.Fatalf("#%d Allocate(%d,%d): %v", i, tt.w, tt.h, err)
		}
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("#%d Allocate(%d,%d) = (%d,%d), want (%d,%d)", i, tt.w, tt.h, x, y, tt.wantX, tt.wantY)
		}
	}
	if got := p.ShelfCount(); got != 2 {
		t.Errorf("ShelfCount() = %d, want 2", got)
	}
}

func TestShelfPacker_ShelfHeightIsTallest(t *testing.T) {
	p := NewShelfPacker(10, 100, 0)

	mustAllocate(t, p, 3, 2)
	mustAllocate(t, p, 3, 7)
	mustAllocate(t, p, 3, 4)

	// Next shelf starts below the tallest rectangle of the first.
	x, y := mustAllocate(t, p, 5, 1)
	if x != 0 || y != 7 {
		t.Errorf("new shelf origin = (%d,%d), want (0,7)", x, y)
	}
}

func TestShelfPacker_NoOverlap(t *testing.T) {
	p := NewShelfPacker(64, 64, 0)

	sizes := [][2]int{
		{5, 7}, {9, 3}, {12, 12}, {1, 1}, {30, 4}, {8, 9}, {17, 2},
		{4, 11}, {20, 6}, {3, 3}, {25, 5}, {6, 10}, {11, 1}, {2, 8},
	}
	var rects []image.Rectangle
	for _, s := range sizes {
		x, y, err := p.Allocate(s[0], s[1])
		if err != nil {
			t.Fatalf("Allocate(%d,%d): %v", s[0], s[1], err)
		}
		r := image.Rect(x, y, x+s[0], y+s[1])
		if !r.In(image.Rect(0, 0, 64, 64)) {
			t.Errorf("rect %v outside the atlas", r)
		}
		for _, prev := range rects {
			if r.Overlaps(prev) {
				t.Errorf("rect %v overlaps %v", r, prev)
			}
		}
		rects = append(rects, r)
	}
}

func TestShelfPacker_Padding(t *testing.T) {
	p := NewShelfPacker(50, 100, 2)

	mustAllocate(t, p, 20, 20)
	x, _ := mustAllocate(t, p, 20, 20)
	if x != 22 {
		t.Errorf("second x = %d, want 22", x)
	}
	x, y := mustAllocate(t, p, 20, 20)
	if x != 0 || y != 22 {
		t.Errorf("third origin = (%d,%d), want (0,22)", x, y)
	}
}

func TestShelfPacker_Full(t *testing.T) {
	p := NewShelfPacker(10, 10, 0)

	mustAllocate(t, p, 10, 6)
	before := *p

	_, _, err := p.Allocate(4, 5)
	if !errors.Is(err, ErrFull) {
		t.Fatalf("Allocate past bottom: err = %v, want ErrFull", err)
	}
	var full *FullError
	if !errors.As(err, &full) {
		t.Fatalf("error %T is not *FullError", err)
	}
	if full.Y != 6 || full.AtlasHeight != 10 {
		t.Errorf("FullError = %+v, want Y=6 AtlasHeight=10", full)
	}
	if *p != before {
		t.Error("failed allocation changed packer state")
	}

	// A smaller request still fits.
	x, y := mustAllocate(t, p, 4, 4)
	if x != 0 || y != 6 {
		t.Errorf("retry origin = (%d,%d), want (0,6)", x, y)
	}
}

func TestShelfPacker_InvalidSize(t *testing.T) {
	p := NewShelfPacker(16, 16, 0)

	for _, s := range [][2]int{{0, 1}, {1, 0}, {-1, 4}, {17, 1}, {1, 17}} {
		if _, _, err := p.Allocate(s[0], s[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Allocate(%d,%d) err = %v, want ErrInvalidSize", s[0], s[1], err)
		}
		if p.CanFit(s[0], s[1]) {
			t.Errorf("CanFit(%d,%d) = true, want false", s[0], s[1])
		}
	}
}

func TestShelfPacker_CanFit(t *testing.T) {
	p := NewShelfPacker(10, 10, 0)

	if !p.CanFit(10, 10) {
		t.Error("empty packer should fit a full-size rect")
	}
	mustAllocate(t, p, 6, 8)
	if !p.CanFit(4, 10) {
		t.Error("should fit beside the first rect")
	}
	if p.CanFit(5, 3) {
		t.Error("5x3 needs a new shelf at y=8 and must not fit")
	}
	if !p.CanFit(5, 2) {
		t.Error("5x2 should fit on a new shelf at y=8")
	}
}

func TestShelfPacker_Stats(t *testing.T) {
	p := NewShelfPacker(10, 10, 0)

	if got := p.TotalArea(); got != 100 {
		t.Errorf("TotalArea() = %d, want 100", got)
	}
	if got := p.RemainingHeight(); got != 10 {
		t.Errorf("RemainingHeight() = %d, want 10", got)
	}

	mustAllocate(t, p, 5, 4)
	if got := p.UsedArea(); got != 20 {
		t.Errorf("UsedArea() = %d, want 20", got)
	}
	if got := p.Utilization(); got != 0.2 {
		t.Errorf("Utilization() = %v, want 0.2", got)
	}
	if got := p.RemainingHeight(); got != 6 {
		t.Errorf("RemainingHeight() = %d, want 6", got)
	}
	if got := p.CurrentShelfRemainingWidth(); got != 5 {
		t.Errorf("CurrentShelfRemainingWidth() = %d, want 5", got)
	}

	p.Reset()
	if p.UsedArea() != 0 || p.ShelfCount() != 0 {
		t.Error("Reset should clear all allocations")
	}
	x, y := mustAllocate(t, p, 3, 3)
	if x != 0 || y != 0 {
		t.Errorf("after Reset origin = (%d,%d), want (0,0)", x, y)
	}
}

func mustAllocate(t *testing.T, p *ShelfPacker, w, h int) (int, int) {
	t.Helper()
	x, y, err := p.Allocate(w, h)
	if err != nil {
		t.Fatalf("Allocate(%d,%d): %v", w, h, err)
	}
	return x, y
}
