package mmcrypt

// DeriveKey absorbs each of inputs in order, runs Stretch with the given
// cost triple, and squeezes keyLen bytes of keying material with a single
// Squeeze, so keyLen is limited to one duplex rate block (72 bytes); a
// larger keyLen returns an error. It owns and destroys its own Ctx, so
// callers who only need one-shot key derivation never touch Ctx directly.
func DeriveKey(inputs [][]byte, iter, c, s uint32, keyLen int) ([]byte, error) {
	if keyLen < 0 {
		return nil, ErrInvalidParams
	}

	var ctx Ctx
	ctx.Init()
	defer ctx.Destroy()

	for _, in := range inputs {
		if err := ctx.Absorb(in); err != nil {
			return nil, err
		}
	}

	if err := ctx.Stretch(iter, c, s); err != nil {
		return nil, err
	}

	out := make([]byte, keyLen)
	if err := ctx.Squeeze(out); err != nil {
		return nil, err
	}
	return out, nil
}
