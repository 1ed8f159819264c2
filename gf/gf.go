// Package gf implements two branchless Galois-field multiply-by-x
// operations: a parametric multiply over GF(2^2c) driving a key
// schedule, and a fixed multiply over GF(2^512) used as a diffusing
// mixing step. Both avoid data-dependent branches by building an
// all-ones/all-zero mask from the bit being tested and applying the
// field reduction through that mask unconditionally.
package gf

import "math/bits"

// Poly holds the degree-2c irreducible polynomial used for the GF(2^2c)
// key schedule, indexed by c in [1,31]. Poly[0] is unused. Any
// conforming implementation of this key schedule must embed the same
// values, since the schedule's cycle structure depends on which
// irreducible polynomial reduces it.
var Poly = [32]uint64{
	0x0,
	0x3,
	0x3,
	0x33,
	0xf5,
	0xe7,
	0x745,
	0x83b,
	0x7205,
	0x593,
	0x54403,
	0x204215,
	0x8100c9,
	0x1028043,
	0x9200821,
	0x31001801,
	0x4002100b,
	0x80104091,
	0x16020041,
	0x1000100a41,
	0x10100400c1,
	0x9004103,
	0x90002010021,
	0x110001a00001,
	0x80028001021,
	0x1000210061,
	0x4000002010007,
	0x401800601,
	0x204010100021,
	0xc0002100800001,
	0x1000080083001,
	0x1000000050205,
}

// MulX multiplies x by the field generator in GF(2^2c), where pol is
// Poly[c] and msb1 is 1<<(2c). The result is masked into [0, 1<<2c).
//
// Shifts left by one, and if the shifted-out bit was set, reduces by
// xoring in pol. The reduction is applied via an all-ones/all-zero mask
// built from the shifted-out bit rather than an if statement, so the
// operation takes the same path regardless of the bit's value.
func MulX(x, pol, msb1 uint64) uint64 {
	x <<= 1
	shift := bits.TrailingZeros64(msb1)
	carry := -((x >> uint(shift)) & 1)
	return (x ^ (pol & carry)) & (msb1 - 1)
}

// MulX512 multiplies the 512-bit value held in x (8 big-endian-ordered
// 64-bit limbs, limb 0 most significant) by x in GF(2^512), modulo
// x^512 + x^8 + x^5 + x^2 + 1 (encoded as the constant 0x125 in the low
// limb). It shifts the full 512-bit value left by one bit, carrying
// between limbs, and reduces into limb 7 when the pre-shift MSB of limb
// 0 was set.
func MulX512(x *[8]uint64) {
	const poly512 = 0x125
	msb := x[0] >> 63
	for i := 0; i < 7; i++ {
		carry := x[i+1] >> 63
		x[i] = x[i]<<1 | carry
	}
	x[7] = x[7]<<1 ^ (-msb & poly512)
}
