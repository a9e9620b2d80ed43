// Package phash implements the rolling polynomial hash used to identify
// solver states: arithmetic in the Mersenne prime field 2^61-1, with a
// base large enough to make collisions between distinct position vectors
// astronomically unlikely. The teacher's board package keeps a similar
// package-level, precomputed-table shape for its Zobrist hash
// (internal/board/zobrist.go); this package follows the same shape but
// the arithmetic itself is the polynomial scheme the puzzle spec
// mandates, not XOR-based piece keys, since the solver needs an
// incremental *linear* update (Change) that a XOR scheme can't express
// for multi-valued (non-boolean) position slots.
package phash

const (
	// Mod is the Mersenne prime 2^61-1.
	Mod uint64 = (1 << 61) - 1
	// Base is the polynomial base.
	Base uint64 = 1_000_000_007

	mask30 uint64 = (1 << 30) - 1
	mask31 uint64 = (1 << 31) - 1
)

// mul computes a*b mod Mod without 128-bit arithmetic, by splitting each
// operand into 31/30-bit halves.
func mul(a, b uint64) uint64 {
	au := a >> 31
	ad := a & mask31
	bu := b >> 31
	bd := b & mask31
	mid := ad*bu + au*bd
	midu := mid >> 30
	midd := mid & mask30
	return modulo(au*bu*2 + midu + (midd << 31) + ad*bd)
}

// modulo reduces x (which may exceed Mod by up to one multiplication's
// worth) into [0, Mod).
func modulo(x uint64) uint64 {
	xu := x >> 61
	xd := x & Mod
	res := xu + xd
	if res >= Mod {
		res -= Mod
	}
	return res
}

// Hash computes Σ a[i] * Base^(L-1-i) mod Mod over the vector a.
func Hash(a []uint64) uint64 {
	var ret uint64
	for _, v := range a {
		ret = modulo(mul(ret, Base) + v)
	}
	return ret
}

// Bases returns [Base^(n-1), Base^(n-2), ..., Base, 1], the per-position
// weight table used by Change to update one slot of a hashed vector
// in-place.
func Bases(n int) []uint64 {
	bases := make([]uint64, n)
	bases[n-1] = 1
	for i := n - 1; i > 0; i-- {
		bases[i-1] = modulo(mul(bases[i], Base))
	}
	return bases
}

// Change returns the hash that results from replacing the value old with
// new at vector position i, given the Bases table for that vector's
// length and the vector's current hash.
func Change(hash uint64, bases []uint64, i int, old, next uint64) uint64 {
	diff := Mod + next - old
	if diff >= Mod {
		diff -= Mod
	}
	return modulo(hash + mul(bases[i], diff))
}
