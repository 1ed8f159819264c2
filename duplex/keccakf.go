package duplex

// Keccak-f[1600]: the 24-round permutation underlying the duplex
// construction. Operates in place on a 25-lane, 64-bit-per-lane state,
// a[x+5*y].

var rc = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotc[x+5*y] is the rho rotation offset for lane (x,y).
var rotc = [25]uint{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// piLane[i] gives the destination lane that a[i] moves into under pi,
// i.e. b[piLane[i]] = rotl(a[i], rotc[i]).
var piLane = [25]uint{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

func rotl64(x uint64, n uint) uint64 {
	if n == 0 {
		return x
	}
	return x<<n | x>>(64-n)
}

// keccakF applies the 24-round Keccak-f[1600] permutation to a.
func keccakF(a *[25]uint64) {
	var b [25]uint64
	var c [5]uint64
	var d [5]uint64

	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for i := 0; i < 25; i++ {
			a[i] ^= d[i%5]
		}

		// rho + pi
		for i := 0; i < 25; i++ {
			b[piLane[i]] = rotl64(a[i], rotc[i])
		}

		// chi
		for y := 0; y < 5; y++ {
			row := y * 5
			r0, r1, r2, r3, r4 := b[row], b[row+1], b[row+2], b[row+3], b[row+4]
			a[row] = r0 ^ (^r1 & r2)
			a[row+1] = r1 ^ (^r2 & r3)
			a[row+2] = r2 ^ (^r3 & r4)
			a[row+3] = r3 ^ (^r4 & r0)
			a[row+4] = r4 ^ (^r0 & r1)
		}

		// iota
		a[0] ^= rc[round]
	}
}
