package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns a rand source for the n-th independent unit of work under a
// base seed, so parallel games never share a sequence.
func Derive(seed, n int64) *rand.Rand {
	u := uint64(seed) + uint64(n)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// RollDice fills a fresh slice of count dice uniform in [1, faces].
func RollDice(rng *rand.Rand, count, faces int) []int {
	dice := make([]int, count)
	for i := range dice {
		dice[i] = rng.IntN(faces) + 1
	}
	return dice
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
