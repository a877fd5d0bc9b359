package scheduling

// Generator is a deterministic pseudo-random source over 32-bit state.
// Every operation uses wraparound 32-bit integer arithmetic only, so a given
// seed produces the same draw sequence on every platform and language.
type Generator struct {
	state uint32
}

// increment is the fixed odd constant added to the state on every draw.
const increment uint32 = 0x6D2B79F5

func NewGenerator(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Float returns the next value in [0, 1). The state is advanced by a fixed
// odd constant, then avalanched with xorshift/multiply steps, and the full
// 32-bit result is normalized by 2^32.
func (g *Generator) Float() float64 {
	g.state += increment
	z := g.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return float64(z^(z>>14)) / (1 << 32)
}

// Shuffle permutes n elements in place via Fisher-Yates, walking i from the
// last index down to 1 and swapping with a uniformly drawn index in [0, i].
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(g.Float() * float64(i+1))
		swap(i, j)
	}
}

// RandomInt returns a uniformly drawn integer in [min, max].
func (g *Generator) RandomInt(min, max int) int {
	return int(g.Float()*float64(max-min+1)) + min
}
