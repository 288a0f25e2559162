// Package entropy supplies the random draws the simulation consumes. Every
// stochastic step takes a Source so seeded games replay exactly.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Source yields uniform random numbers.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// Seeded is a deterministic PCG source.
type Seeded struct {
	r *mrand.Rand
}

// NewSeeded returns a reproducible source for seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) Float64() float64 { return s.r.Float64() }
func (s *Seeded) Intn(n int) int   { return s.r.IntN(n) }

// Crypto draws from crypto/rand. It is the fallback when nothing else is
// configured.
type Crypto struct{}

func (Crypto) Float64() float64 { return cryptoFloat() }

func (Crypto) Intn(n int) int { return intn(cryptoFloat(), n) }

func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		return 0.5
	}
	// 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

func intn(f float64, n int) int {
	i := int(f * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports whether a draw from src lands under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
