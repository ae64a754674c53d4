package tuple

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Key is an immutable, comparable wrapper around an encoded tuple (or any
// raw byte string sharing the same memcmp-order property, such as a
// collection-prefixed tuple). It is deliberately backed by a Go string
// rather than a []byte: strings are comparable and hashable by value,
// which lets Key be used directly as a map key or as the K type parameter
// of pkg/bptree's generic tree without any unsafe tricks.
//
// The C original's distinction between "private", "copied" and "shared"
// backing buffers is an allocator optimization with no equivalent need
// here: Go string immutability already gives every Key value the same
// safety a defensive copy would, at no extra cost to the caller.
type Key struct {
	raw  string
	hash int64
}

// fnvOffset64/fnvPrime64 are the FNV-1a 64-bit constants.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnv1a64(s string) int64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	v := int64(h)
	// -1 is reserved by callers (e.g. pkg/index) as a "no hash computed"
	// sentinel; remap the one value that would collide with it.
	if v == -1 {
		return -2
	}
	return v
}

// NewKey builds a Key from an already-encoded byte string, such as the
// output of Pack. The bytes are copied.
func NewKey(raw []byte) Key {
	s := string(raw)
	return Key{raw: s, hash: fnv1a64(s)}
}

// NewKeyFromTuple encodes t, optionally prefixed, into a Key.
func NewKeyFromTuple(prefix []byte, t Tuple) Key {
	return NewKey(Pack(prefix, t))
}

// NewKeyFromElement encodes a single element into a Key.
func NewKeyFromElement(e Element) Key {
	return NewKeyFromTuple(nil, Tuple{e})
}

// NewKeyFromHex decodes a hex string (as produced by Key.ToHex) into a Key.
func NewKeyFromHex(s string) (Key, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("%w: invalid hex key: %v", ErrCorrupt, err)
	}
	return NewKey(raw), nil
}

// ToRaw returns a fresh copy of the key's encoded bytes.
func (k Key) ToRaw() []byte {
	return []byte(k.raw)
}

// ToHex renders the key's encoded bytes as lowercase hex, useful for
// logging and for keys crossing a text-only boundary such as a URL path.
func (k Key) ToHex() string {
	return hex.EncodeToString([]byte(k.raw))
}

// Hash returns the key's cached FNV-1a hash. It is stable for the lifetime
// of the process but, unlike the elements it was built from, is not part
// of the wire format and must never be persisted.
func (k Key) Hash() int64 {
	return k.hash
}

// Elements decodes the key back into its constituent tuple. Decoding is
// not cached; callers that need repeated element access should decode once
// and hold onto the Tuple.
func (k Key) Elements() (Tuple, error) {
	return Unpack([]byte(k.raw))
}

// Len reports the number of elements in the key's tuple, using the
// in-place skip operation so counting never decodes or allocates any
// element's value.
func (k Key) Len() (int, error) {
	r := newReader([]byte(k.raw))
	n := 0
	for !r.atEnd() {
		if err := skipElement(r); err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// Get returns the i'th element of the key's tuple, supporting the standard
// Go/Python negative-indexing convention: -1 is the last element, -2 the
// second to last, and so on. It returns ErrOutOfRange for an index outside
// [-len, len-1]. Every element up to i is skipped rather than decoded;
// only the target element is actually materialized.
func (k Key) Get(i int) (Element, error) {
	if i < 0 {
		n, err := k.Len()
		if err != nil {
			return Element{}, err
		}
		i += n
	}
	if i < 0 {
		return Element{}, fmt.Errorf("%w: index out of range", ErrOutOfRange)
	}

	r := newReader([]byte(k.raw))
	for step := 0; step < i; step++ {
		if r.atEnd() {
			return Element{}, fmt.Errorf("%w: index out of range", ErrOutOfRange)
		}
		if err := skipElement(r); err != nil {
			return Element{}, err
		}
	}
	if r.atEnd() {
		return Element{}, fmt.Errorf("%w: index out of range", ErrOutOfRange)
	}
	return decodeElement(r)
}

// Iterator returns a lazy cursor over the key's elements: each call to
// Next decodes exactly one element, without materializing the rest of the
// tuple. Unlike Elements, it never allocates a backing slice for elements
// the caller doesn't end up asking for.
func (k Key) Iterator() *KeyIterator {
	return &KeyIterator{r: newReader([]byte(k.raw))}
}

// KeyIterator is a one-shot, forward-only cursor over a Key's elements.
type KeyIterator struct {
	r *reader
}

// Next decodes the next element and reports whether one was available. A
// false return with a nil error means the iterator is exhausted; a
// non-nil error means the remaining bytes are not a valid element.
func (it *KeyIterator) Next() (Element, bool, error) {
	if it.r.atEnd() {
		return Element{}, false, nil
	}
	e, err := decodeElement(it.r)
	if err != nil {
		return Element{}, false, err
	}
	return e, true, nil
}

// Compare returns -1, 0 or 1 according to whether k sorts before, equal to,
// or after o, by raw byte order.
func (k Key) Compare(o Key) int {
	return strings.Compare(k.raw, o.raw)
}

// CompareTuple compares k against the encoding of t without allocating a
// Key for t.
func (k Key) CompareTuple(t Tuple) int {
	return strings.Compare(k.raw, string(Pack(nil, t)))
}

// Equal reports whether k and o encode to the same bytes.
func (k Key) Equal(o Key) bool {
	return k.raw == o.raw
}

// EqualAny reports whether k encodes to the same bytes as v, where v may
// be a Key, a Tuple, or anything else. Equality against a type that is
// neither is simply false, never an error — only ordering comparisons
// against an unsupported type are an error (see CompareAny).
func (k Key) EqualAny(v interface{}) bool {
	switch o := v.(type) {
	case Key:
		return k.Equal(o)
	case Tuple:
		return k.raw == string(Pack(nil, o))
	default:
		return false
	}
}

// CompareAny is Compare/CompareTuple generalized to an arbitrary value: it
// accepts a Key or a Tuple and returns ErrTypeMismatch for anything else,
// since byte-order comparison against a value with no encoding is
// undefined.
func (k Key) CompareAny(v interface{}) (int, error) {
	switch o := v.(type) {
	case Key:
		return k.Compare(o), nil
	case Tuple:
		return k.CompareTuple(o), nil
	default:
		return 0, ErrTypeMismatch
	}
}

// Plus returns a new Key formed by concatenating k's raw bytes with o's.
// This is only order-preserving in the way callers expect when k does not
// itself end in a value that could be extended (e.g. k is a fixed-width
// collection prefix); concatenating two arbitrary tuples is not generally
// equivalent to packing their elements together, since the result is a
// valid decode only when both sides decode cleanly on their own.
func (k Key) Plus(o Key) Key {
	return NewKey(append(k.ToRaw(), o.ToRaw()...))
}

// PlusTuple appends t's encoding to k's raw bytes.
func (k Key) PlusTuple(t Tuple) Key {
	return NewKey(Pack(k.ToRaw(), t))
}

// IsEmpty reports whether the key carries no bytes at all.
func (k Key) IsEmpty() bool {
	return len(k.raw) == 0
}
