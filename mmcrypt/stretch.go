package mmcrypt

import (
	"encoding/binary"

	"github.com/glk/mmcrypt/duplex"
	"github.com/glk/mmcrypt/gf"
)

// FeedbackRate is the number of mix steps between feedback absorptions
// into the main sponge: the largest prime not exceeding 2^16.
const FeedbackRate = 65521

// maxCells bounds N*s to keep a pathological (c, s) pair from demanding
// an allocation no real platform could satisfy; it is far above any
// cost parameters this package's own tests use.
const maxCells = 1 << 34

// Stretch runs the memory-hard traversal against c's already-initialized
// sponge: it absorbs a parameter header, then for iter outer iterations
// materializes two N*s-cell scratch tables via two auxiliary duplexes
// and walks them with a per-column GF(2^2c) schedule, mixing cells and
// periodically folding a running feedback accumulator back into the
// main sponge.
//
// N = 2^c, so c and s jointly bound the scratch footprint to
// 2*N*s*64 bytes; Stretch rejects parameters outside 1<=c<=31, s>=1,
// iter>=1, or whose scratch size is unreasonable, returning
// ErrInvalidParams without touching the sponge. The header is absorbed
// before the auxiliary sponges and tables are allocated, so after any
// other error the sponge already holds the header and a caller that
// retries must use a fresh Ctx.
func (c *Ctx) Stretch(iter, cBits, s uint32) error {
	if cBits < 1 || cBits > 31 || s < 1 || iter < 1 {
		return ErrInvalidParams
	}
	N := uint32(1) << cBits
	total := uint64(N) * uint64(s)
	if total == 0 || total > maxCells {
		return ErrInvalidParams
	}

	kmask := N - 1
	kmsb1 := uint64(1) << (2 * cBits)
	kpol := gf.Poly[cBits]
	xmask := ^uint64(0) << (64 - cBits)

	var header [64]byte
	binary.BigEndian.PutUint64(header[0:8], FeedbackRate)
	binary.BigEndian.PutUint64(header[8:16], uint64(iter))
	binary.BigEndian.PutUint64(header[16:24], uint64(cBits))
	binary.BigEndian.PutUint64(header[24:32], uint64(s))
	if err := c.Absorb(header[:]); err != nil {
		return errAbsorbFailed
	}

	// Allocation failure constructing the auxiliary sponges is a resource
	// exhaustion, not a broken invariant: report it and let the caller
	// retry with a fresh Ctx, rather than aborting the process.
	S1, err := duplex.InitDuplex(DuplexRate, DuplexCapacity)
	if err != nil {
		return ErrStretchUnavailable
	}
	S2, err := duplex.InitDuplex(DuplexRate, DuplexCapacity)
	if err != nil {
		S1.Destroy()
		return ErrStretchUnavailable
	}

	T1 := make([]cell, total)
	T2 := make([]cell, total)
	k := make([]uint64, s)
	var feedback cell
	var buf [64]byte

	defer zeroizeStretch(T1, T2, k, &feedback, S1, S2)

	idx := func(row, col uint32) uint64 { return uint64(col)*uint64(N) + uint64(row) }

	for outer := uint32(0); outer < iter; outer++ {
		if err := c.Squeeze(buf[:]); err != nil {
			return errSqueezeFailed
		}
		if err := duplex.Duplexing(S1, buf[:], 512, nil, 0); err != nil {
			return errAbsorbFailed
		}
		if err := c.Squeeze(buf[:]); err != nil {
			return errSqueezeFailed
		}
		if err := duplex.Duplexing(S2, buf[:], 512, nil, 0); err != nil {
			return errAbsorbFailed
		}

		var kbuf [8]byte
		for i := uint32(0); i < s; i++ {
			if err := c.Squeeze(kbuf[:]); err != nil {
				return errSqueezeFailed
			}
			reg := binary.BigEndian.Uint64(kbuf[:])
			reg >>= 64 - 2*cBits
			reg |= 1
			k[i] = reg
		}

		// Table materialization: one column at a time, each column's row
		// 0 drawn fresh from S1/S2 and each later row absorbing the
		// wrap-indexed cell of the other table while squeezing its own.
		for col := uint32(0); col < s; col++ {
			if err := duplex.Duplexing(S1, nil, 0, buf[:], 512); err != nil {
				return errSqueezeFailed
			}
			T1[idx(0, col)] = cellFromBytes(buf[:])
			if err := duplex.Duplexing(S2, nil, 0, buf[:], 512); err != nil {
				return errSqueezeFailed
			}
			T2[idx(0, col)] = cellFromBytes(buf[:])

			var imask uint64
			for row := uint32(1); row < N; row++ {
				imask |= uint64(row) >> 1
				prev := idx(row-1, col)

				w1 := (T2[prev][0] & imask) + uint64(row) - imask - 1
				var wbuf [64]byte
				T2[idx(uint32(w1), col)].toBytes(wbuf[:])
				if err := duplex.Duplexing(S1, wbuf[:], 512, buf[:], 512); err != nil {
					return errAbsorbFailed
				}
				T1[idx(row, col)] = cellFromBytes(buf[:])

				w2 := (T1[prev][0] & imask) + uint64(row) - imask - 1
				T1[idx(uint32(w2), col)].toBytes(wbuf[:])
				if err := duplex.Duplexing(S2, wbuf[:], 512, buf[:], 512); err != nil {
					return errAbsorbFailed
				}
				T2[idx(row, col)] = cellFromBytes(buf[:])
			}
		}

		// Traversal: walk the per-column schedule until column 0's
		// register returns to its seed value, completing one full
		// 2^(2c)-1 cycle of the multiplicative group.
		k0 := k[0]
		feedbackCount := uint32(0)
		for {
			for i := uint32(0); i < s; i++ {
				k[i] = gf.MulX(k[i], kpol, kmsb1)
				ka := uint32(k[i]>>cBits) & kmask
				kb := uint32(k[i]) & kmask
				i2 := (i + 1) % s

				mix(&feedback, xmask,
					&T1[idx(ka, i)], &T2[idx(kb, i)],
					&T1[idx(ka, i2)], &T2[idx(kb, i2)])

				feedbackCount++
				if feedbackCount == FeedbackRate {
					feedbackCount = 0
					feedback.toBytes(buf[:])
					if err := duplex.Duplexing(c.sm, buf[:], 512, buf[:], 512); err != nil {
						return errAbsorbFailed
					}
					feedback = cellFromBytes(buf[:])
				}
			}
			if k[0] == k0 {
				break
			}
		}

		feedback.toBytes(buf[:])
		if err := c.Absorb(buf[:]); err != nil {
			return errAbsorbFailed
		}
		S1, S2 = S2, S1
	}

	return nil
}

// zeroizeStretch overwrites both scratch tables, the schedule registers,
// the feedback accumulator and both auxiliary sponges, on every exit path
// that reaches Stretch's deferred call: success, error return, or panic
// during defer unwinding. The byte buffers Stretch uses to stage duplex
// input and output (header, buf, kbuf, wbuf) and mix's local difference
// cell are not cleared.
func zeroizeStretch(T1, T2 []cell, k []uint64, feedback *cell, S1, S2 *duplex.State) {
	for i := range T1 {
		T1[i] = cell{}
	}
	for i := range T2 {
		T2[i] = cell{}
	}
	for i := range k {
		k[i] = 0
	}
	*feedback = cell{}
	S1.Destroy()
	S2.Destroy()
}
