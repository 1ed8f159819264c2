// Package duplex implements a Keccak-f[1600] duplex: a sponge
// construction that can absorb input and squeeze output in the same
// permutation call, at an arbitrary byte-aligned rate/capacity split.
// Input and output lengths are given in bits but must be whole bytes. For the
// detailed construction, refer to the Keccak duplex paper
// (http://keccak.noekeon.org/).
package duplex

import (
	"encoding/binary"
	"errors"
)

const stateBits = 1600
const stateBytes = stateBits / 8

// State is one Keccak-f[1600] duplex instance: 1600 bits of permutation
// state split into a public "rate" and a hidden "capacity" by
// InitDuplex.
type State struct {
	a         [25]uint64
	rateBytes int
}

var (
	// ErrRate is returned by InitDuplex when rate/capacity do not sum to
	// the permutation width or rate is not byte-aligned.
	ErrRate = errors.New("duplex: rate+capacity must equal 1600 and rate must be a multiple of 8")
	// ErrTooLong is returned by Duplexing when the input would leave no
	// room for pad10*1, the requested output exceeds one rate block, a bit
	// length is not a multiple of 8, or a slice is shorter than its bit
	// length.
	ErrTooLong = errors.New("duplex: input or output exceeds one rate block")
)

// InitDuplex constructs a duplex with the given rate and capacity, both in
// bits. rate+capacity must equal 1600 (the Keccak-f[1600] state width) and
// rate must be byte-aligned.
func InitDuplex(rate, capacity int) (*State, error) {
	if rate <= 0 || capacity <= 0 || rate+capacity != stateBits || rate%8 != 0 {
		return nil, ErrRate
	}
	return &State{rateBytes: rate / 8}, nil
}

// pad10Star1 applies multi-bitrate padding to buf (a full rate-byte
// block, already zero-filled beyond inBits), given the number of input
// bits already present at the front of buf.
func pad10Star1(buf []byte, inBits int) {
	buf[inBits/8] ^= 1 << uint(inBits%8)
	last := len(buf)*8 - 1
	buf[last/8] ^= 1 << uint(last%8)
}

func xorBytesIntoLanes(a *[25]uint64, buf []byte) {
	n := len(buf) / 8
	for i := 0; i < n; i++ {
		a[i] ^= binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func copyLanesToBytes(a *[25]uint64, out []byte) {
	n := len(out) / 8
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], a[i])
	}
	if rem := len(out) % 8; rem != 0 {
		var last [8]byte
		binary.LittleEndian.PutUint64(last[:], a[n])
		copy(out[n*8:], last[:rem])
	}
}

// Duplexing absorbs up to one rate block of input and emits up to one
// rate block of output, applying the permutation exactly once: input is
// padded and xored into the state, the permutation runs, and the
// (possibly truncated) post-permutation state is copied out.
//
// in/out may be nil when inBits/outBits are 0. Both are byte-addressed:
// inBits and outBits must equal 8*len(slice).
func Duplexing(s *State, in []byte, inBits int, out []byte, outBits int) error {
	if inBits%8 != 0 || outBits%8 != 0 {
		return ErrTooLong
	}
	inBytes := inBits / 8
	outBytes := outBits / 8
	if inBytes > 0 && len(in) < inBytes {
		return ErrTooLong
	}
	if outBytes > 0 && len(out) < outBytes {
		return ErrTooLong
	}
	// Reserve at least 2 bits for pad10*1.
	if inBits > s.rateBytes*8-2 {
		return ErrTooLong
	}
	if outBytes > s.rateBytes {
		return ErrTooLong
	}

	buf := make([]byte, s.rateBytes)
	copy(buf, in[:inBytes])
	pad10Star1(buf, inBits)
	xorBytesIntoLanes(&s.a, buf)

	keccakF(&s.a)

	if outBytes > 0 {
		rateBuf := make([]byte, s.rateBytes)
		copyLanesToBytes(&s.a, rateBuf)
		copy(out[:outBytes], rateBuf[:outBytes])
	}
	return nil
}

// Reset zeroes the duplex permutation state in place, without forgetting
// the configured rate.
func (s *State) Reset() {
	for i := range s.a {
		s.a[i] = 0
	}
}

// Destroy zeroes every field of the duplex, including its rate, leaving
// it unusable until reconstructed with InitDuplex.
func (s *State) Destroy() {
	s.Reset()
	s.rateBytes = 0
}

// RateBytes returns the configured rate, in bytes.
func (s *State) RateBytes() int { return s.rateBytes }
