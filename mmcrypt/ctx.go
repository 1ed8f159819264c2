// Package mmcrypt implements mmcrypt, a memory-hard key-derivation
// function built on a Keccak duplex sponge (package duplex). Absorbed
// inputs and a cost triple (iter, c, s) drive Stretch, a data-dependent
// traversal over two scratch tables keyed by a GF(2^2c) linear-feedback
// shift register (package gf), with periodic feedback into the
// enclosing sponge; squeezing afterwards yields the derived key.
package mmcrypt

import "github.com/glk/mmcrypt/duplex"

// DuplexRate and DuplexCapacity are the only rate/capacity split mmcrypt
// permits for its main sponge and the two auxiliary sponges Stretch
// allocates.
const (
	DuplexRate     = 576
	DuplexCapacity = 1024
)

// Ctx owns one duplex sponge. It is not safe for concurrent use: Init,
// Absorb, Squeeze, Stretch, and Destroy all mutate the owned sponge.
type Ctx struct {
	sm *duplex.State
}

// Init constructs Ctx's sponge. Failure here means the underlying duplex
// primitive is broken rather than misused — mmcrypt's own rate and
// capacity always satisfy duplex.InitDuplex's invariants — so Init
// aborts rather than returning an error a caller could silently ignore.
func (c *Ctx) Init() {
	sm, err := duplex.InitDuplex(DuplexRate, DuplexCapacity)
	if err != nil {
		panic("mmcrypt: duplex construction failed: " + err.Error())
	}
	c.sm = sm
}

// Absorb folds data into the sponge with a single Duplexing call. It
// returns a non-nil error if the duplex reports failure; callers should
// treat any such error as "context compromised, destroy and restart"
// rather than inspect it further.
func (c *Ctx) Absorb(data []byte) error {
	if err := duplex.Duplexing(c.sm, data, len(data)*8, nil, 0); err != nil {
		return errAbsorbFailed
	}
	return nil
}

// Squeeze fills out with len(out) bytes of sponge output via a single
// Duplexing call.
func (c *Ctx) Squeeze(out []byte) error {
	if err := duplex.Duplexing(c.sm, nil, 0, out, len(out)*8); err != nil {
		return errSqueezeFailed
	}
	return nil
}

// Destroy overwrites Ctx's state with zero bytes. After Destroy, c must
// not be reused without calling Init again.
func (c *Ctx) Destroy() {
	if c.sm != nil {
		c.sm.Destroy()
	}
	*c = Ctx{}
}
