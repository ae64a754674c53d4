package tuple

// Tuple is an ordered sequence of elements, encoded with no inter-element
// delimiter: every element is self-terminating, so concatenation alone is
// enough to frame a tuple.
type Tuple []Element

// Pack encodes t as a tuple, optionally appended to an existing prefix
// buffer. Passing a non-nil prefix lets callers build a composite key
// (e.g. collection-prefix || tuple) in one allocation.
func Pack(prefix []byte, t Tuple) []byte {
	buf := prefix
	for _, e := range t {
		buf = encodeElement(buf, e)
	}
	return buf
}

// Unpack decodes buf as a single tuple. Decoding stops at end-of-buffer or
// at a KIND_SEP byte, which is consumed but not materialized as an element
// (KindSep marks a batch boundary, not one of the nine element kinds). It
// returns ErrTruncated/ErrCorrupt/ErrUnsupportedType if buf contains a
// partial or malformed element before that point.
func Unpack(buf []byte) (Tuple, error) {
	t, _, err := unpackFrom(newReader(buf))
	return t, err
}

// unpackFrom decodes one tuple's worth of elements starting at r's current
// position and reports whether it stopped because it consumed a KIND_SEP
// (true) or ran off the end of the buffer (false), so callers like
// UnpackBatch can keep decoding the next tuple from the same cursor.
func unpackFrom(r *reader) (Tuple, bool, error) {
	var t Tuple
	for {
		b, ok := r.peekByte()
		if !ok {
			return t, false, nil
		}
		if Kind(b) == KindSep {
			r.pos++
			return t, true, nil
		}
		e, err := decodeElement(r)
		if err != nil {
			return nil, false, err
		}
		t = append(t, e)
	}
}

// UnpackPrefixed decodes buf as a tuple only if it begins with the exact
// bytes of prefix; it returns (nil, false) on a prefix mismatch rather than
// an error, since that is the expected outcome of a collection-scoped scan
// landing on a foreign key. prefix itself is not decoded.
func UnpackPrefixed(prefix, buf []byte) (Tuple, bool, error) {
	if len(buf) < len(prefix) {
		return nil, false, nil
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return nil, false, nil
		}
	}
	t, err := Unpack(buf[len(prefix):])
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// HasPrefix reports whether the tuple encoding of buf begins with the
// element-wise encoding of prefix, i.e. whether buf's logical tuple starts
// with prefix's elements. Because the codec is prefix-free per element,
// this is equivalent to a byte-level prefix check on the encodings of
// prefix and buf.
func HasPrefix(buf []byte, prefix Tuple) bool {
	want := Pack(nil, prefix)
	if len(buf) < len(want) {
		return false
	}
	for i := range want {
		if buf[i] != want[i] {
			return false
		}
	}
	return true
}

// Batch is an ordered sequence of tuples joined by a single KindSep byte,
// with no leading or trailing separator.
type Batch []Tuple

// PackBatch encodes a batch of tuples.
func PackBatch(b Batch) []byte {
	var buf []byte
	for i, t := range b {
		if i > 0 {
			buf = append(buf, byte(KindSep))
		}
		buf = Pack(buf, t)
	}
	return buf
}

// UnpackBatch decodes a batch encoded by PackBatch. An empty input decodes
// to an empty (non-nil) batch containing no tuples, not a batch containing
// one empty tuple.
func UnpackBatch(buf []byte) (Batch, error) {
	if len(buf) == 0 {
		return Batch{}, nil
	}
	var batch Batch
	r := newReader(buf)
	for {
		t, sawSep, err := unpackFrom(r)
		if err != nil {
			return nil, err
		}
		batch = append(batch, t)
		if !sawSep {
			return batch, nil
		}
	}
}
