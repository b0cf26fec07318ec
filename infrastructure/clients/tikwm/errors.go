package tikwm

import "errors"

// ErrInvalidResponse marks a payload that could not be decoded
var ErrInvalidResponse = errors.New("tikwm: invalid response")
