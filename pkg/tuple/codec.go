package tuple

import (
	"fmt"

	"github.com/google/uuid"
)

// encodeElement appends e's wire representation to buf, including its
// leading kind byte.
func encodeElement(buf []byte, e Element) []byte {
	buf = append(buf, byte(e.kind))
	switch e.kind {
	case KindNull:
		return buf
	case KindBool:
		if e.b {
			return append(buf, 1)
		}
		return append(buf, 0)
	case KindInteger:
		return appendVarint(buf, e.mag, 0)
	case KindNegInteger:
		return appendVarint(buf, e.mag, 0xFF)
	case KindTime, KindNegTime:
		mag, negative, err := timeComposite(e.tm)
		if err != nil {
			// Constructors already validate; a bad Time can only reach
			// here via direct struct literal use, which is not exported.
			panic(err)
		}
		if negative {
			return appendVarint(buf, mag, 0xFF)
		}
		return appendVarint(buf, mag, 0)
	case KindBlob, KindText:
		return appendPacked7(buf, e.blob)
	case KindUUID:
		return append(buf, e.uid[:]...)
	case KindSep:
		return buf
	default:
		panic(fmt.Sprintf("tuple: encodeElement: unhandled kind 0x%02x", byte(e.kind)))
	}
}

// decodeElement reads one element (kind byte plus payload) from r.
func decodeElement(r *reader) (Element, error) {
	kb, ok := r.getByte()
	if !ok {
		return Element{}, ErrTruncated
	}
	kind := Kind(kb)
	switch kind {
	case KindNull:
		return Null(), nil
	case KindSep:
		return Element{kind: KindSep}, nil
	case KindBool:
		bb, ok := r.getByte()
		if !ok {
			return Element{}, ErrTruncated
		}
		switch bb {
		case 0:
			return BoolElem(false), nil
		case 1:
			return BoolElem(true), nil
		default:
			return Element{}, fmt.Errorf("%w: bool byte 0x%02x", ErrCorrupt, bb)
		}
	case KindInteger:
		v, err := readVarint(r, 0)
		if err != nil {
			return Element{}, err
		}
		return Element{kind: KindInteger, mag: v}, nil
	case KindNegInteger:
		v, err := readVarint(r, 0xFF)
		if err != nil {
			return Element{}, err
		}
		return Element{kind: KindNegInteger, mag: v}, nil
	case KindTime:
		v, err := readVarint(r, 0)
		if err != nil {
			return Element{}, err
		}
		return Element{kind: KindTime, tm: timeFromComposite(v, false)}, nil
	case KindNegTime:
		v, err := readVarint(r, 0xFF)
		if err != nil {
			return Element{}, err
		}
		return Element{kind: KindNegTime, tm: timeFromComposite(v, true)}, nil
	case KindBlob, KindText:
		return Element{kind: kind, blob: readPacked7(r)}, nil
	case KindUUID:
		raw, err := r.take(16)
		if err != nil {
			return Element{}, err
		}
		var id uuid.UUID
		copy(id[:], raw)
		return Element{kind: KindUUID, uid: id}, nil
	default:
		return Element{}, fmt.Errorf("%w: kind byte 0x%02x", ErrUnsupportedType, kb)
	}
}

// skipElement advances r past one element without materializing its value.
// It is used by offset-table and prefix-match logic that only needs to
// count or bound elements, not decode them.
func skipElement(r *reader) error {
	kb, ok := r.getByte()
	if !ok {
		return ErrTruncated
	}
	kind := Kind(kb)
	switch kind {
	case KindNull, KindSep:
		return nil
	case KindBool:
		return r.skip(1)
	case KindInteger, KindNegInteger, KindTime, KindNegTime:
		b0, ok := r.peekByte()
		if !ok {
			return ErrTruncated
		}
		xor := byte(0)
		if kind == KindNegInteger || kind == KindNegTime {
			xor = 0xFF
		}
		width := varintWidth(b0 ^ xor)
		return r.skip(width)
	case KindBlob, KindText:
		for {
			b, ok := r.peekByte()
			if !ok || b < 0x80 {
				// High-bit-clear byte (or end-of-buffer) is the implicit
				// terminator and is left unread.
				return nil
			}
			r.pos++
		}
	case KindUUID:
		return r.skip(16)
	default:
		return fmt.Errorf("%w: kind byte 0x%02x", ErrUnsupportedType, kb)
	}
}
