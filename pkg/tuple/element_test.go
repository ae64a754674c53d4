package tuple

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario_S1ThroughS4 checks the concrete encoded-byte scenarios from
// spec.md §8 that do not involve 7-bit packing.
func TestScenario_S1ThroughS4(t *testing.T) {
	tests := []struct {
		name    string
		elem    Element
		wantHex string
	}{
		{"S1 integer zero", Int(0), "1300"},
		{"S2 negative one", Int(-1), "11fe"},
		{"S3 bool true", BoolElem(true), "1201"},
		{"S4 null", Null(), "0f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(nil, Tuple{tt.elem})
			assert.Equal(t, tt.wantHex, hex.EncodeToString(got))
		})
	}
}

// TestScenario_S6TwoInts checks that elements concatenate without a
// delimiter, per spec.md §8 S6.
func TestScenario_S6TwoInts(t *testing.T) {
	got := Pack(nil, Tuple{Int(0), Int(1)})
	assert.Equal(t, "13001301", hex.EncodeToString(got))
}

func TestElement_RoundTrip(t *testing.T) {
	uid := uuid.New()
	tm, err := TimeElem(Time{EpochMillis: 1700000000123, OffsetSeconds: -5 * 900})
	require.NoError(t, err)

	elements := []Element{
		Null(),
		BoolElem(true),
		BoolElem(false),
		Int(0),
		Int(42),
		Int(-42),
		Int(1<<62 - 1),
		Uint(1 << 63),
		NegUint(1 << 63),
		Blob([]byte{0x00, 0xFF, 0x10}),
		Blob(nil),
		Text("hello"),
		Text(""),
		Text("unicode: é中"),
		UUIDElem(uid),
		tm,
	}

	for _, e := range elements {
		buf := Pack(nil, Tuple{e})
		decoded, err := Unpack(buf)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.True(t, e.Equal(decoded[0]), "round trip mismatch for kind %s", e.Kind())
	}
}

func TestElement_IntAccessors(t *testing.T) {
	e := Int(-100)
	v, ok := e.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(-100), v)
	assert.True(t, e.Negative())

	mag, ok := e.Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(100), mag)

	pos := Int(100)
	assert.False(t, pos.Negative())
}

func TestElement_Int64OverflowsToFalse(t *testing.T) {
	e := Uint(1 << 63) // does not fit in int64
	_, ok := e.Int64()
	assert.False(t, ok)
}

func TestElement_TextAndBlobAccessors(t *testing.T) {
	text := Text("abc")
	s, ok := text.Text()
	require.True(t, ok)
	assert.Equal(t, "abc", s)

	b, ok := text.Blob()
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), b)

	blob := Blob([]byte{1, 2, 3})
	_, ok = blob.Text()
	assert.False(t, ok, "Text() should not apply to a KindBlob element")
}

func TestElement_UUIDAccessor(t *testing.T) {
	uid := uuid.New()
	e := UUIDElem(uid)
	got, ok := e.UUID()
	require.True(t, ok)
	assert.Equal(t, uid, got)

	_, ok = Int(1).UUID()
	assert.False(t, ok)
}

func TestTimeElem_RejectsOutOfRangeOffset(t *testing.T) {
	_, err := TimeElem(Time{EpochMillis: 0, OffsetSeconds: 32*900 + 1})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeElem(Time{EpochMillis: 0, OffsetSeconds: -31*900 - 1})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeElem_RejectsNonQuarterHourOffset(t *testing.T) {
	_, err := TimeElem(Time{EpochMillis: 0, OffsetSeconds: 100})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeElem_NegativeEpochUsesNegTimeKind(t *testing.T) {
	e, err := TimeElem(Time{EpochMillis: -1000, OffsetSeconds: 0})
	require.NoError(t, err)
	assert.Equal(t, KindNegTime, e.Kind())
	assert.True(t, e.Negative())

	got, ok := e.Time()
	require.True(t, ok)
	assert.Equal(t, int64(-1000), got.EpochMillis)
}

func TestTimeElem_PreservesOffsetAcrossRoundTrip(t *testing.T) {
	for _, offsetSeconds := range []int32{-31 * 900, -900, 0, 900, 32 * 900} {
		e, err := TimeElem(Time{EpochMillis: 1717171717171, OffsetSeconds: offsetSeconds})
		require.NoError(t, err)

		buf := Pack(nil, Tuple{e})
		decoded, err := Unpack(buf)
		require.NoError(t, err)

		got, ok := decoded[0].Time()
		require.True(t, ok)
		assert.Equal(t, offsetSeconds, got.OffsetSeconds)
		assert.Equal(t, int64(1717171717171), got.EpochMillis)
	}
}

func TestElement_Equal(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Int(5).Equal(Int(5)))
	assert.False(t, Int(5).Equal(Int(6)))
	assert.False(t, Int(5).Equal(Uint(5)))
	assert.True(t, Text("a").Equal(Text("a")))
	assert.False(t, Text("a").Equal(Blob([]byte("a"))))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "null", KindNull.String())
	assert.Contains(t, Kind(0xAB).String(), "0xab")
}
