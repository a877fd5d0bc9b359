package scheduling

import "testing"

func TestGeneratorDeterminism(t *testing.T) {
	a := NewGenerator(12345)
	b := NewGenerator(12345)
	for i := 0; i < 1000; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical sequences")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	gen := NewGenerator(7)
	values := []int{1, 2, 3, 4, 5, 6, 7, 8}
	gen.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	seen := make(map[int]bool)
	for _, v := range values {
		seen[v] = true
	}
	for v := 1; v <= 8; v++ {
		if !seen[v] {
			t.Errorf("value %d lost in shuffle", v)
		}
	}
}

func TestShuffleDeterminism(t *testing.T) {
	first := []int{1, 2, 3, 4, 5}
	second := []int{1, 2, 3, 4, 5}

	NewGenerator(99).Shuffle(len(first), func(i, j int) {
		first[i], first[j] = first[j], first[i]
	})
	NewGenerator(99).Shuffle(len(second), func(i, j int) {
		second[i], second[j] = second[j], second[i]
	})

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("shuffles diverged at %d: %v vs %v", i, first, second)
		}
	}
}

func TestRandomIntBounds(t *testing.T) {
	gen := NewGenerator(3)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := gen.RandomInt(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("RandomInt(2,5) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := 2; v <= 5; v++ {
		if !seen[v] {
			t.Errorf("RandomInt(2,5) never produced %d in 500 draws", v)
		}
	}
}
