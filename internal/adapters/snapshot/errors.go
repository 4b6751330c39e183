package snapshot

import "errors"

// ErrParse marks content that was read but could not be decoded.
var ErrParse = errors.New("malformed snapshot")
