package geometry

import "testing"

func TestRectWidthHeight(t *testing.T) {
	r := NewRect(-10, -10, 20, 10)
	if r.Width() != 30 || r.Height() != 20 {
		t.Fatalf("expected 30x20, got %dx%d", r.Width(), r.Height())
	}
}

func TestRectAreaZeroWhenDegenerate(t *testing.T) {
	zeroWidth := NewRect(1, 2, 1, 6)
	zeroHeight := NewRect(1, 2, 4, 2)
	if zeroWidth.Area() != 0 || zeroHeight.Area() != 0 {
		t.Fatalf("expected zero area for degenerate rects")
	}
}

func TestRectCenter(t *testing.T) {
	r := NewRect(-4, -4, 4, 4)
	c := r.Center()
	if c.X != 0 || c.Y != 0 {
		t.Fatalf("expected center (0,0), got (%d,%d)", c.X, c.Y)
	}
}

func TestRectClampAppliesMargin(t *testing.T) {
	r := NewRect(0, 0, 1920, 1080)
	bounds := NewRect(0, 0, 1024, 768)

	clamped := r.Clamp(bounds, 20)

	if clamped.Left != 20 || clamped.Top != 20 || clamped.Right != 1004 || clamped.Bottom != 748 {
		t.Fatalf("unexpected clamp result: %+v", clamped)
	}
}

func TestRectClampHandlesNegativeValues(t *testing.T) {
	r := NewRect(-1920, -1080, 0, 0)
	bounds := NewRect(-800, -600, 0, 0)

	clamped := r.Clamp(bounds, 20)

	if clamped.Left != -780 || clamped.Top != -580 || clamped.Right != -20 || clamped.Bottom != -20 {
		t.Fatalf("unexpected clamp result: %+v", clamped)
	}
}

func TestRectIntersectsTouchingRectsDoNotOverlap(t *testing.T) {
	r1 := NewRect(0, 0, 10, 10)
	r2 := NewRect(10, 10, 20, 20)

	if r1.Intersects(r2) {
		t.Fatalf("touching rects should not intersect")
	}
}

func TestRectIntersectsOverlapping(t *testing.T) {
	r1 := NewRect(0, 0, 10, 10)
	r2 := NewRect(5, 5, 15, 15)

	if !r1.Intersects(r2) {
		t.Fatalf("expected overlap")
	}
}
