package idforge

import "errors"

// Error classes. Constructors return errors wrapping ErrConfig; Parse returns
// errors wrapping ErrFormat so callers can treat them as untrusted-input
// rejections. ErrClockBackwards is operational and fatal to the guarantee of
// monotonicity: the caller must not retry blindly.
var (
	ErrConfig         = errors.New("idforge: invalid generator configuration")
	ErrFormat         = errors.New("idforge: malformed identifier")
	ErrClockBackwards = errors.New("idforge: clock moved backwards")
)
