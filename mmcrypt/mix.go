package mmcrypt

import (
	"encoding/binary"

	"github.com/glk/mmcrypt/gf"
)

// cell is one 512-bit scratch table entry: 8 host-order limbs, each
// decoded from the 8 big-endian bytes at the matching wire position
// (see cellFromBytes and cell.toBytes), so limb 0 always carries the top
// bits of the cell's big-endian byte representation.
type cell [8]uint64

func cellFromBytes(buf []byte) cell {
	var c cell
	for i := range c {
		c[i] = binary.BigEndian.Uint64(buf[i*8:])
	}
	return c
}

func (c *cell) toBytes(buf []byte) {
	for i := range c {
		binary.BigEndian.PutUint64(buf[i*8:], c[i])
	}
}

// maskNonZero returns all-ones if v != 0, else 0, without branching: for
// any nonzero v, v or its two's-complement negation has the top bit set,
// so (v|-v)>>63 isolates that as a single bit, negated into a full mask.
func maskNonZero(v uint64) uint64 {
	return -((v | -v) >> 63)
}

// mix is the branchless diffusing kernel driving Stretch's traversal.
// x1, x2 are the two cells read this step; y1, y2 are
// the two cells conditionally XOR-swapped; feedback accumulates the
// running difference absorbed into the main sponge every FeedbackRate
// steps. xmask selects the top c bits of a cell's limb 0.
//
// Every predicate here compiles to mask arithmetic rather than a branch:
// xskip and xswap are built from maskNonZero/a shift-derived sign mask,
// and both the feedback update and the y1/y2 swap are unconditional
// masked XORs, so the same instructions execute regardless of the
// underlying secret bits.
func mix(feedback *cell, xmask uint64, x1, x2, y1, y2 *cell) {
	xskip := maskNonZero((x1[0] ^ x2[0]) & xmask)

	var x cell
	for j := range x {
		x[j] = x1[j] ^ x2[j]
		feedback[j] ^= x[j] & xskip
	}

	gf.MulX512((*[8]uint64)(feedback))
	xswap := -(feedback[0] >> 63)

	gf.MulX512((*[8]uint64)(&x))
	for j := range x {
		t := (y1[j] ^ y2[j] ^ x[j]) & xswap
		y1[j] ^= t
		y2[j] ^= t
	}
}
