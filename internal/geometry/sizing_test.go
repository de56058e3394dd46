package geometry

import "testing"

func TestSizingPresetsCalculateCorrectly(t *testing.T) {
	workArea := NewRect(0, 0, 100, 200)

	cases := []struct {
		name string
		got  Sizing
		want Sizing
	}{
		{"right_half", RightHalf(workArea, 10), NewSizing(55, 10, 35, 180)},
		{"left_half", LeftHalf(workArea, 10), NewSizing(10, 10, 35, 180)},
		{"top_half", TopHalf(workArea, 10), NewSizing(10, 10, 80, 85)},
		{"bottom_half", BottomHalf(workArea, 10), NewSizing(10, 105, 80, 85)},
		{"near_maximised", NearMaximised(workArea, 10), NewSizing(10, 10, 80, 180)},
	}

	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("%s: got %+v, want %+v", c.name, c.got, c.want)
		}
	}
}

func TestNearMaximisedOfZeroMarginEqualsWorkArea(t *testing.T) {
	workArea := NewRect(0, 0, 1920, 1080)

	s := NearMaximised(workArea, 0)

	if s.Rect() != workArea {
		t.Fatalf("expected near-maximised at margin 0 to equal work area, got %+v", s.Rect())
	}
}

func TestSizingRectRoundTrip(t *testing.T) {
	r := NewRect(5, 10, 205, 110)
	s := SizingFromRect(r)

	if s.Rect() != r {
		t.Fatalf("round trip mismatch: %+v != %+v", s.Rect(), r)
	}
}
