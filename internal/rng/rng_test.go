package rng

import (
	"testing"

	"pgregory.net/rapid"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New(0xC0FFEE)
	b := New(0xC0FFEE)

	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d diverged: %d vs %d", i, va, vb)
		}
	}
}

func TestZeroSeedRemapped(t *testing.T) {
	r := New(0)
	if r.State() != 1 {
		t.Fatalf("State() = %d, expected 1", r.State())
	}

	// A zero state would produce zero forever.
	for i := 0; i < 10; i++ {
		if r.Next() == 0 {
			t.Fatalf("draw %d produced zero", i)
		}
	}

	if New(0).Next() != New(1).Next() {
		t.Error("seed 0 should behave exactly like seed 1")
	}
}

func TestNextMatchesReference(t *testing.T) {
	// s=1: s^=s<<13 -> 0x2001; s^=s>>7 -> 0x2041; s^=s<<17 -> 0x40822041
	r := New(1)
	if got := r.Next(); got != 0x40822041 {
		t.Errorf("Next() = %#x, expected %#x", got, uint64(0x40822041))
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"single value", 5, 5},
		{"small span", 0, 1},
		{"negative", -3, 3},
		{"room counts", 6, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(42)
			for i := 0; i < 500; i++ {
				v := r.Range(tc.min, tc.max)
				if v < tc.min || v > tc.max {
					t.Fatalf("Range(%d, %d) = %d, out of bounds", tc.min, tc.max, v)
				}
			}
		})
	}
}

func TestRangeInverted(t *testing.T) {
	r := New(7)
	if got := r.Range(10, 3); got != 10 {
		t.Errorf("Range(10, 3) = %d, expected 10", got)
	}
}

func TestRangeCoversBothEnds(t *testing.T) {
	r := New(99)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		seen[r.Range(1, 4)] = true
	}
	for v := 1; v <= 4; v++ {
		if !seen[v] {
			t.Errorf("Range(1, 4) never produced %d", v)
		}
	}
}

func TestIntnNonPositive(t *testing.T) {
	r := New(3)
	if r.Intn(0) != 0 || r.Intn(-5) != 0 {
		t.Error("Intn with n <= 0 should return 0")
	}
}

func TestFloatProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		r := New(seed)
		for i := 0; i < 100; i++ {
			f := r.Float()
			if f < 0 || f >= 1 {
				rt.Fatalf("Float() = %v, outside [0,1)", f)
			}
		}
	})
}

func TestRangeProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		lo := rapid.IntRange(-1000, 1000).Draw(rt, "min")
		hi := rapid.IntRange(lo, lo+1000).Draw(rt, "max")

		a, b := New(seed), New(seed)
		for i := 0; i < 20; i++ {
			va, vb := a.Range(lo, hi), b.Range(lo, hi)
			if va != vb {
				rt.Fatalf("same seed diverged at draw %d", i)
			}
			if va < lo || va > hi {
				rt.Fatalf("Range(%d, %d) = %d", lo, hi, va)
			}
		}
	})
}
