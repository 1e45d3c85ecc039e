package stimulus

import "math/rand"

// PRNG is the host-side pseudo-random source used for batch sequencing and
// pure-random plaintexts. It is deliberately a plain seeded generator: the
// only requirement is a reproducible byte sequence, not cryptographic
// strength.
type PRNG struct {
	r *rand.Rand
}

// NewPRNG returns a generator seeded with seed. Equal seeds yield equal
// byte sequences.
func NewPRNG(seed int64) *PRNG {
	return &PRNG{r: rand.New(rand.NewSource(seed))}
}

// Draw returns n fresh pseudo-random bytes, advancing the sequence.
func (p *PRNG) Draw(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(p.r.Intn(256))
	}
	return buf
}
