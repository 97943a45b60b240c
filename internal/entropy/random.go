// Package entropy provides the seeded random stream every generation stage
// draws from. A single Stream is owned by the pipeline and handed to each
// stage in turn, so the sequence of draws is reproducible for a given seed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/bits"
	mathrand "math/rand"
)

// Stream is a deterministic pseudo-random sequence. It is not safe for
// concurrent use; parallel consumers would reorder draws and break
// reproducibility.
type Stream struct {
	seed  int64
	rng   *mathrand.Rand
	draws uint64
}

// NewStream creates a stream from seed.
func NewStream(seed int64) *Stream {
	return &Stream{
		seed: seed,
		rng:  mathrand.New(mathrand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 { return s.seed }

// Draws returns how many values have been taken from the stream.
func (s *Stream) Draws() uint64 { return s.draws }

// Intn returns a uniform int in [0, n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	s.draws++
	return s.rng.Intn(n)
}

// IntRange returns a uniform int in [lo, hi], inclusive. lo == hi draws
// nothing and returns lo. Spans wider than math.MaxInt are sampled by
// rejection instead of overflowing.
func (s *Stream) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}
	span := uint64(hi) - uint64(lo)
	if span < uint64(math.MaxInt) {
		return lo + s.Intn(int(span)+1)
	}
	shift := 64 - bits.Len64(span)
	for {
		s.draws++
		if v := s.rng.Uint64() >> shift; v <= span {
			return int(uint64(lo) + v)
		}
	}
}

// Float64 returns a uniform float in [0, 1).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// FloatRange returns a uniform float in [lo, hi).
func (s *Stream) FloatRange(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Int63 returns a non-negative 63-bit integer, used to derive sub-seeds
// such as the height noise seed.
func (s *Stream) Int63() int64 {
	s.draws++
	return s.rng.Int63()
}

// RandomSeed returns a non-zero seed from crypto/rand, for runs configured
// with seed 0.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but keep generation going.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		return 1
	}
	return seed
}
