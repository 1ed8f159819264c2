package mmcrypt

import "errors"

// ErrInvalidParams is returned by Stretch when (iter, c, s) violates
// 1 <= c <= 31, s >= 1, iter >= 1, or the resulting scratch size is
// unreasonable for a single allocation.
var ErrInvalidParams = errors.New("mmcrypt: invalid stretch parameters")

// ErrStretchUnavailable is returned by Stretch when it cannot construct
// its auxiliary sponges. The header has already been absorbed into ctx
// by this point, so a retry must recreate ctx rather than reuse it.
var ErrStretchUnavailable = errors.New("mmcrypt: stretch could not allocate auxiliary state")

// errAbsorbFailed and errSqueezeFailed are the normalized errors Ctx's
// Absorb/Squeeze return for any nonzero duplex result; callers must
// treat either as "context compromised, destroy and restart" rather than
// inspect it further.
var (
	errAbsorbFailed  = errors.New("mmcrypt: absorb failed")
	errSqueezeFailed = errors.New("mmcrypt: squeeze failed")
)
