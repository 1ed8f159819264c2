package mmcrypt

import (
	"bytes"
	"testing"
)

func deriveDefault(t *testing.T, order ...string) []byte {
	t.Helper()
	inputs := make([][]byte, len(order))
	for i, s := range order {
		inputs[i] = []byte(s)
	}
	// A small, fast cost triple: (c=1, s=1) is the minimum scratch this
	// package permits, large enough to exercise table materialization and
	// the full traversal cycle without the default (c=7, s=337) cost.
	out, err := DeriveKey(inputs, 1, 1, 1, 64)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	return out
}

func TestDeriveKeyDeterministic(t *testing.T) {
	a := deriveDefault(t, "pepper", "salt", "tag", "password")
	b := deriveDefault(t, "pepper", "salt", "tag", "password")
	if !bytes.Equal(a, b) {
		t.Fatal("DeriveKey is not deterministic across identical runs")
	}
}

func TestDeriveKeyOrderSensitive(t *testing.T) {
	a := deriveDefault(t, "pepper", "salt", "tag", "password")
	b := deriveDefault(t, "salt", "pepper", "tag", "password")
	if bytes.Equal(a, b) {
		t.Fatal("DeriveKey must be sensitive to absorb order")
	}
}

func TestDeriveKeyInputSensitive(t *testing.T) {
	a := deriveDefault(t, "pepper", "salt", "tag", "password")
	b := deriveDefault(t, "pepper", "salt", "tag", "Password")
	if bytes.Equal(a, b) {
		t.Fatal("flipping a single bit of input must change the derived key")
	}
}

func TestStretchRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name          string
		iter, c, s uint32
	}{
		{"c too small", 1, 0, 1},
		{"c too large", 1, 32, 1},
		{"s zero", 1, 1, 0},
		{"iter zero", 0, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ctx Ctx
			ctx.Init()
			defer ctx.Destroy()
			if err := ctx.Stretch(tc.iter, tc.c, tc.s); err != ErrInvalidParams {
				t.Fatalf("Stretch(%d,%d,%d): got %v, want ErrInvalidParams", tc.iter, tc.c, tc.s, err)
			}
		})
	}
}

func TestSqueezeSucceedsAfterRejectedStretch(t *testing.T) {
	var ctx Ctx
	ctx.Init()
	defer ctx.Destroy()

	if err := ctx.Stretch(1, 32, 1); err != ErrInvalidParams {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}

	var fresh Ctx
	fresh.Init()
	defer fresh.Destroy()
	if err := fresh.Stretch(1, 11, 4); err != nil {
		t.Fatalf("Stretch on a fresh context after an unrelated rejection failed: %v", err)
	}
	out := make([]byte, 64)
	if err := fresh.Squeeze(out); err != nil {
		t.Fatalf("Squeeze after successful Stretch: %v", err)
	}
}

func TestDestroyZeroesCtx(t *testing.T) {
	var ctx Ctx
	ctx.Init()
	if err := ctx.Absorb([]byte("pepper")); err != nil {
		t.Fatal(err)
	}
	ctx.Destroy()
	if ctx.sm != nil {
		t.Fatal("Destroy left the sponge pointer non-nil")
	}
	if (ctx != Ctx{}) {
		t.Fatal("Destroy left Ctx in a non-zero state")
	}
}

func TestConsecutiveSqueezesDiffer(t *testing.T) {
	var ctx Ctx
	ctx.Init()
	defer ctx.Destroy()
	if err := ctx.Stretch(1, 1, 1); err != nil {
		t.Fatal(err)
	}
	a := make([]byte, 64)
	b := make([]byte, 64)
	if err := ctx.Squeeze(a); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Squeeze(b); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two consecutive squeezes after stretch must differ; the sponge advances")
	}
}

func TestScratchSizeArithmetic(t *testing.T) {
	// Two tables of N*s 64-byte cells each, N = 2^c.
	const c, s = 7, 337
	N := uint64(1) << c
	got := 2 * N * uint64(s) * 64
	const want = 5521408
	if got != want {
		t.Fatalf("scratch size for (c=%d,s=%d) = %d, want %d", c, s, got, want)
	}
}

func TestMinimalCostStretch(t *testing.T) {
	run := func() []byte {
		var ctx Ctx
		ctx.Init()
		defer ctx.Destroy()
		if err := ctx.Stretch(1, 1, 1); err != nil {
			t.Fatal(err)
		}
		out := make([]byte, 64)
		if err := ctx.Squeeze(out); err != nil {
			t.Fatal(err)
		}
		return out
	}
	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Fatal("minimum-cost stretch(1,1,1) is not deterministic")
	}
}
