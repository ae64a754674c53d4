package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElement_UnknownKind(t *testing.T) {
	r := newReader([]byte{0xAB})
	_, err := decodeElement(r)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecodeElement_TruncatedBool(t *testing.T) {
	r := newReader([]byte{byte(KindBool)})
	_, err := decodeElement(r)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeElement_CorruptBoolByte(t *testing.T) {
	r := newReader([]byte{byte(KindBool), 0x02})
	_, err := decodeElement(r)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeElement_TruncatedUUID(t *testing.T) {
	r := newReader(append([]byte{byte(KindUUID)}, make([]byte, 10)...))
	_, err := decodeElement(r)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeElement_BlobNoExplicitTerminatorNeeded(t *testing.T) {
	// A packed7 payload at end-of-buffer decodes cleanly: termination is
	// implicit (high-bit-clear byte or EOF), never an extra written byte.
	buf := append([]byte{byte(KindBlob)}, appendPacked7(nil, []byte("x"))...)
	r := newReader(buf)
	e, err := decodeElement(r)
	require.NoError(t, err)
	got, ok := e.Blob()
	require.True(t, ok)
	assert.Equal(t, []byte("x"), got)
	assert.True(t, r.atEnd())
}

func TestDecodeElement_BlobStopsBeforeNextKindByte(t *testing.T) {
	// The byte following a packed7 payload (here, the next element's kind
	// byte) terminates the blob but must be left unread for the next decode.
	buf := Pack(nil, Tuple{Text("x"), Int(7)})
	r := newReader(buf)
	e, err := decodeElement(r)
	require.NoError(t, err)
	s, ok := e.Text()
	require.True(t, ok)
	assert.Equal(t, "x", s)

	next, err := decodeElement(r)
	require.NoError(t, err)
	v, ok := next.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestSkipElement_AdvancesPastEveryKind(t *testing.T) {
	tm, err := TimeElem(Time{})
	require.NoError(t, err)

	elements := Tuple{
		Null(), BoolElem(true), Int(12345), Int(-12345),
		Blob([]byte("blob")), Text("text"), UUIDElem([16]byte{}), tm,
	}
	for _, e := range elements {
		buf := Pack(nil, Tuple{e})
		r := newReader(buf)
		require.NoError(t, skipElement(r), "kind %s", e.Kind())
		assert.True(t, r.atEnd(), "skip should consume the whole element for kind %s", e.Kind())
	}
}

func TestSkipElement_MatchesDecodeBoundary(t *testing.T) {
	// Skipping one element followed by decoding the next must land on the
	// same element a straight decode would, so offset/length queries that
	// skip rather than decode stay consistent with full unpacking.
	buf := Pack(nil, Tuple{Text("first"), Int(99)})

	skipR := newReader(buf)
	require.NoError(t, skipElement(skipR))
	second, err := decodeElement(skipR)
	require.NoError(t, err)
	v, ok := second.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(99), v)

	full, err := Unpack(buf)
	require.NoError(t, err)
	assert.True(t, full[1].Equal(second))
}

func TestSkipElement_UnknownKind(t *testing.T) {
	r := newReader([]byte{0xAB})
	err := skipElement(r)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSkipElement_TruncatedAtKindByte(t *testing.T) {
	r := newReader(nil)
	err := skipElement(r)
	assert.ErrorIs(t, err, ErrTruncated)
}
