package service

import "math/rand/v2"

// RandomSource draws uniform integers in [0, n).
type RandomSource interface {
	Int64N(n int64) int64
}

// globalRand uses the runtime-seeded generator of math/rand/v2, which is
// safe for concurrent use.
type globalRand struct{}

func (globalRand) Int64N(n int64) int64 {
	return rand.Int64N(n)
}
