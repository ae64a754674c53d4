// Package tuple implements an order-preserving tuple key codec.
//
// A tuple of primitive values (integers, booleans, null, byte blobs, text,
// timestamps, UUIDs) is serialized into an opaque byte string such that the
// lexicographic (memcmp) ordering of the encoded bytes reproduces the
// natural component-wise ordering of the original tuples. The same bytes
// decode back to values that compare equal to the originals.
//
// # Wire format
//
// Every element is encoded as a single kind byte followed by a payload:
//
//	KIND_NULL        0x0F   (no payload)
//	KIND_NEG_TIME    0x10   varint, XOR 0xFF over abs(composite)
//	KIND_NEG_INTEGER 0x11   varint, XOR 0xFF over abs(value)
//	KIND_BOOL        0x12   one byte: 0x00 or 0x01
//	KIND_INTEGER     0x13   varint
//	KIND_TIME        0x14   varint, composite = epoch_ms<<7 | offset_bits
//	KIND_BLOB        0x15   7-bit-packed bytes, terminated by any byte < 0x80
//	KIND_TEXT        0x16   same packing as KIND_BLOB, over UTF-8 bytes
//	KIND_UUID        0x17   16 raw bytes
//	KIND_SEP         0x18   tuple/batch separator, never an element payload
//
// A tuple is the concatenation of its elements with no delimiter; elements
// are self-terminating so parsing is unambiguous. A batch is a sequence of
// tuples joined by a single KIND_SEP byte, with no trailing separator.
//
// These byte values and the varint/7-bit-packing algorithms are frozen: they
// are the on-disk format consumed by anything built on top of this package
// and must not change across versions.
//
// # Non-goals
//
// The codec is not self-describing: there is no schema and no version tag
// beyond the kind byte. It does not compress. It encodes exactly the nine
// element kinds above — nothing else. Fractional seconds finer than a
// millisecond, and UTC offsets that are not an exact multiple of 15 minutes,
// are rejected rather than silently rounded.
package tuple
