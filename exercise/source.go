package exercise

import (
	"github.com/MichaelTJones/pcg"
)

// Source is the randomness the generators draw from. Tests inject
// deterministic implementations.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// pcgStream is the PCG32 stream selector used for every seed.
const pcgStream = 0xda3e39cb94b95bdb

// PCGSource is a seeded PCG32 generator. It is not safe for concurrent use.
type PCGSource struct {
	r *pcg.PCG32
}

// NewSource returns a PCG32 source seeded with seed.
func NewSource(seed uint64) *PCGSource {
	r := pcg.NewPCG32()
	r.Seed(seed, pcgStream)
	return &PCGSource{r: r}
}

func (s *PCGSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return int(s.r.Bounded(uint32(n)))
}

func (s *PCGSource) Float64() float64 {
	return float64(s.r.Random()) / (1 << 32)
}

// randInt returns an integer in [lo, hi]. An empty range yields lo.
func randInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// sourceReader adapts a Source to io.Reader so IDs are reproducible for a
// seeded source.
type sourceReader struct {
	src Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.Intn(256))
	}
	return len(p), nil
}
