package tuple

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the single-byte tag that both identifies an element's type and
// contributes to inter-type ordering. Numeric values are part of the wire
// format (see doc.go) and must never change.
type Kind byte

const (
	KindNull       Kind = 0x0F
	KindNegTime    Kind = 0x10
	KindNegInteger Kind = 0x11
	KindBool       Kind = 0x12
	KindInteger    Kind = 0x13
	KindTime       Kind = 0x14
	KindBlob       Kind = 0x15
	KindText       Kind = 0x16
	KindUUID       Kind = 0x17
	KindSep        Kind = 0x18
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNegTime:
		return "neg-time"
	case KindNegInteger:
		return "neg-integer"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindTime:
		return "time"
	case KindBlob:
		return "blob"
	case KindText:
		return "text"
	case KindUUID:
		return "uuid"
	case KindSep:
		return "sep"
	default:
		return fmt.Sprintf("kind(0x%02x)", byte(k))
	}
}

// offsetUnit is the granularity (15 minutes) of a Time element's UTC offset.
const offsetUnit = 15 * 60

// offsetBias centers the 7-bit offset field so both positive and negative
// offsets in range fit in 0..127.
const offsetBias = 64

const (
	minOffsetSeconds = -31 * offsetUnit
	maxOffsetSeconds = 32 * offsetUnit
)

// Time is the value carried by a KindTime/KindNegTime element: a millisecond
// timestamp plus a UTC offset in whole 15-minute units.
type Time struct {
	EpochMillis   int64
	OffsetSeconds int32
}

// Element is one of the nine primitive values the codec understands. The
// zero Element is KindNull. Construct elements with the functions below
// rather than setting fields directly.
type Element struct {
	kind Kind
	b    bool
	mag  uint64 // magnitude, for KindInteger/KindNegInteger/KindTime/KindNegTime
	blob []byte // payload, for KindBlob/KindText (already UTF-8 for text)
	tm   Time
	uid  uuid.UUID
}

// Null returns the null element.
func Null() Element { return Element{kind: KindNull} }

// BoolElem returns a boolean element.
func BoolElem(v bool) Element { return Element{kind: KindBool, b: v} }

// Int returns a signed integer element, choosing KindInteger or
// KindNegInteger based on sign.
func Int(v int64) Element {
	if v < 0 {
		return Element{kind: KindNegInteger, mag: uint64(-v)}
	}
	return Element{kind: KindInteger, mag: uint64(v)}
}

// Uint returns a non-negative integer element covering the full uint64 range.
func Uint(v uint64) Element {
	return Element{kind: KindInteger, mag: v}
}

// NegUint returns a negative integer element whose magnitude may exceed
// what an int64 can represent (up to 2^64-1, per spec's OutOfRange bound).
func NegUint(magnitude uint64) Element {
	return Element{kind: KindNegInteger, mag: magnitude}
}

// Blob returns a byte-blob element.
func Blob(b []byte) Element {
	return Element{kind: KindBlob, blob: b}
}

// Text returns a UTF-8 text element.
func Text(s string) Element {
	return Element{kind: KindText, blob: []byte(s)}
}

// UUIDElem returns a UUID element.
func UUIDElem(id uuid.UUID) Element {
	return Element{kind: KindUUID, uid: id}
}

// TimeElem returns a timestamp element. It returns ErrOutOfRange if the
// offset is outside [-31*15min, 32*15min] or is not an exact multiple of 15
// minutes; sub-millisecond precision in t.EpochMillis is the caller's
// responsibility to have already discarded.
func TimeElem(t Time) (Element, error) {
	_, negative, err := timeComposite(t)
	if err != nil {
		return Element{}, err
	}
	if negative {
		return Element{kind: KindNegTime, tm: t}, nil
	}
	return Element{kind: KindTime, tm: t}, nil
}

// Kind reports the element's tag.
func (e Element) Kind() Kind { return e.kind }

// Bool returns the element's boolean value and whether it is a KindBool.
func (e Element) Bool() (bool, bool) {
	return e.b, e.kind == KindBool
}

// Int64 returns the element's value as an int64 and whether it is an
// integer kind whose value fits in an int64.
func (e Element) Int64() (int64, bool) {
	switch e.kind {
	case KindInteger:
		if e.mag > 1<<63-1 {
			return 0, false
		}
		return int64(e.mag), true
	case KindNegInteger:
		if e.mag > 1<<63 {
			return 0, false
		}
		return -int64(e.mag), true
	default:
		return 0, false
	}
}

// Uint64 returns the element's magnitude as a uint64 (the value itself for
// KindInteger, the absolute value for KindNegInteger) and whether the
// element is an integer kind.
func (e Element) Uint64() (uint64, bool) {
	if e.kind != KindInteger && e.kind != KindNegInteger {
		return 0, false
	}
	return e.mag, true
}

// Negative reports whether an integer element is negative.
func (e Element) Negative() bool { return e.kind == KindNegInteger || e.kind == KindNegTime }

// Blob returns the raw payload of a KindBlob/KindText element.
func (e Element) Blob() ([]byte, bool) {
	if e.kind != KindBlob && e.kind != KindText {
		return nil, false
	}
	return e.blob, true
}

// Text returns the decoded string of a KindText element.
func (e Element) Text() (string, bool) {
	if e.kind != KindText {
		return "", false
	}
	return string(e.blob), true
}

// UUID returns the value of a KindUUID element.
func (e Element) UUID() (uuid.UUID, bool) {
	if e.kind != KindUUID {
		return uuid.UUID{}, false
	}
	return e.uid, true
}

// Time returns the value of a KindTime/KindNegTime element.
func (e Element) Time() (Time, bool) {
	if e.kind != KindTime && e.kind != KindNegTime {
		return Time{}, false
	}
	return e.tm, true
}

// Equal reports whether two elements carry the same kind and value.
func (e Element) Equal(o Element) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case KindNull, KindSep:
		return true
	case KindBool:
		return e.b == o.b
	case KindInteger, KindNegInteger:
		return e.mag == o.mag
	case KindBlob, KindText:
		if len(e.blob) != len(o.blob) {
			return false
		}
		for i := range e.blob {
			if e.blob[i] != o.blob[i] {
				return false
			}
		}
		return true
	case KindUUID:
		return e.uid == o.uid
	case KindTime, KindNegTime:
		return e.tm == o.tm
	default:
		return false
	}
}

// timeComposite reconstructs the packed (epoch_ms<<7 | offset_bits) value
// and reports whether it is negative (and therefore belongs under
// KindNegTime rather than KindTime).
func timeComposite(t Time) (mag uint64, negative bool, err error) {
	if t.OffsetSeconds < minOffsetSeconds || t.OffsetSeconds > maxOffsetSeconds {
		return 0, false, fmt.Errorf("%w: utc offset %ds outside [%ds, %ds]", ErrOutOfRange, t.OffsetSeconds, minOffsetSeconds, maxOffsetSeconds)
	}
	if t.OffsetSeconds%offsetUnit != 0 {
		return 0, false, fmt.Errorf("%w: utc offset %ds is not a multiple of 15 minutes", ErrOutOfRange, t.OffsetSeconds)
	}
	offsetBits := int64(offsetBias) + int64(t.OffsetSeconds)/int64(offsetUnit)
	composite := t.EpochMillis<<7 | offsetBits
	if composite < 0 {
		return uint64(-composite), true, nil
	}
	return uint64(composite), false, nil
}

// timeFromComposite reverses timeComposite.
func timeFromComposite(mag uint64, negative bool) Time {
	composite := int64(mag)
	if negative {
		composite = -composite
	}
	offsetBits := composite & 0x7F
	epochMillis := composite >> 7
	return Time{
		EpochMillis:   epochMillis,
		OffsetSeconds: int32((offsetBits - offsetBias) * offsetUnit),
	}
}
