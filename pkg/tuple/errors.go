package tuple

import "errors"

// Sentinel errors returned by the codec. Use errors.Is to test for them;
// wrapped context (offsets, kind bytes, field names) is added with %w.
var (
	// ErrTruncated means the buffer ended mid-element or mid-varint.
	ErrTruncated = errors.New("tuple: truncated input")
	// ErrCorrupt means an unknown kind byte or an impossible varint width.
	ErrCorrupt = errors.New("tuple: corrupt encoding")
	// ErrUnsupportedType means a value outside the nine element kinds was given to Pack.
	ErrUnsupportedType = errors.New("tuple: unsupported element type")
	// ErrOutOfRange means a timestamp offset or integer magnitude is out of bounds.
	ErrOutOfRange = errors.New("tuple: value out of range")
	// ErrTypeMismatch means a Key was compared with < or > against a value
	// that is neither a Key nor a Tuple.
	ErrTypeMismatch = errors.New("tuple: type mismatch")
)
