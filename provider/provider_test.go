package provider

import "testing"

func TestIntervalCovers(t *testing.T) {
	iv := Interval{Left: 2, Right: 5}
	cases := []struct {
		index int
		want  bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, true},
		{6, false},
	}
	for _, tc := range cases {
		if got := iv.Covers(tc.index); got != tc.want {
			t.Errorf("%v.Covers(%d) = %v, want %v", iv, tc.index, got, tc.want)
		}
	}
	if iv.Width() != 4 {
		t.Fatalf("Width()=%d want 4", iv.Width())
	}
	if iv.String() != "[2,5]" {
		t.Fatalf("String()=%q", iv.String())
	}
}
