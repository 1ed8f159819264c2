package gf

import "testing"

// FuzzMulXStaysInRange feeds arbitrary (c, seed) pairs through MulX and
// checks the two invariants callers depend on: the result never leaves
// [0, 1<<2c), and stepping from an odd seed never produces zero.
func FuzzMulXStaysInRange(f *testing.F) {
	f.Add(uint8(1), uint64(1))
	f.Add(uint8(7), uint64(0x83b))
	f.Add(uint8(31), uint64(0xffffffffffffffff))
	f.Add(uint8(0), uint64(0))
	f.Add(uint8(32), uint64(1))

	f.Fuzz(func(t *testing.T, cRaw uint8, seed uint64) {
		c := int(cRaw%31) + 1 // clamp into the valid [1,31] range
		pol := Poly[c]
		msb1 := uint64(1) << uint(2*c)

		k := (seed & (msb1 - 1)) | 1 // force odd, the key schedule's own seeding convention
		for i := 0; i < 8; i++ {
			k = MulX(k, pol, msb1)
			if k >= msb1 {
				t.Fatalf("c=%d: MulX result %#x >= 1<<%d", c, k, 2*c)
			}
			if k == 0 {
				t.Fatalf("c=%d: MulX reached zero stepping from an odd seed", c)
			}
		}
	})
}

// FuzzMulX512MatchesShiftReference checks that MulX512 matches a plain
// shift-left-by-one-with-carry, reduced by the field polynomial exactly
// when the pre-shift MSB of limb 0 was set, for arbitrary 512-bit
// inputs.
func FuzzMulX512MatchesShiftReference(f *testing.F) {
	f.Add(uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(1))
	f.Add(uint64(1)<<63, uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0))
	f.Add(uint64(0xffffffffffffffff), uint64(0xffffffffffffffff), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), uint64(0))

	f.Fuzz(func(t *testing.T, l0, l1, l2, l3, l4, l5, l6, l7 uint64) {
		x := [8]uint64{l0, l1, l2, l3, l4, l5, l6, l7}
		orig := x
		msb := orig[0] >> 63

		MulX512(&x)

		// Recompute the expected shift-with-carry independent of MulX512's
		// own control flow, to catch a limb dropped or duplicated.
		want := orig
		for i := 0; i < 7; i++ {
			carry := want[i+1] >> 63
			want[i] = want[i]<<1 | carry
		}
		want[7] = want[7] << 1
		if msb == 1 {
			want[7] ^= 0x125
		}
		if x != want {
			t.Fatalf("MulX512(%v) = %v, want %v", orig, x, want)
		}
	})
}
