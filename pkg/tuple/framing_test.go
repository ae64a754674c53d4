package tuple

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTuple_RoundTrip covers invariant 2 (tuple round-trip) from spec.md §8.
func TestTuple_RoundTrip(t *testing.T) {
	tuples := []Tuple{
		{},
		{Int(1)},
		{Null(), BoolElem(true), Text("x")},
		{Int(-5), Uint(1 << 40), Blob([]byte{1, 2, 3}), Text("unicode é")},
	}
	for _, want := range tuples {
		buf := Pack(nil, want)
		got, err := Unpack(buf)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(got[i]), "element %d mismatch", i)
		}
	}
}

func TestTuple_PackWithPrefix(t *testing.T) {
	prefix := []byte("collection:")
	buf := Pack(append([]byte(nil), prefix...), Tuple{Int(1)})
	assert.True(t, HasPrefix(buf[len(prefix):], Tuple{Int(1)}))

	got, ok, err := UnpackPrefixed(prefix, buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	v, _ := got[0].Int64()
	assert.Equal(t, int64(1), v)
}

// TestUnpack_PrefixFilter covers invariant 8: UnpackPrefixed returns
// (nil, false) exactly when buf does not start with prefix.
func TestUnpack_PrefixFilter(t *testing.T) {
	buf := Pack([]byte("users:"), Tuple{Text("alice")})

	_, ok, err := UnpackPrefixed([]byte("users:"), buf)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = UnpackPrefixed([]byte("orders:"), buf)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = UnpackPrefixed([]byte("users:extra"), buf)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = UnpackPrefixed([]byte(""), buf)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasPrefix(t *testing.T) {
	full := Tuple{Text("a"), Int(1), Int(2)}
	buf := Pack(nil, full)

	assert.True(t, HasPrefix(buf, Tuple{}))
	assert.True(t, HasPrefix(buf, Tuple{Text("a")}))
	assert.True(t, HasPrefix(buf, Tuple{Text("a"), Int(1)}))
	assert.True(t, HasPrefix(buf, full))
	assert.False(t, HasPrefix(buf, Tuple{Text("a"), Int(2)}))
	assert.False(t, HasPrefix(buf, Tuple{Text("a"), Int(1), Int(2), Int(3)}))
}

// TestScenario_S7Batch checks the batch separator encoding, per spec.md §8 S7.
func TestScenario_S7Batch(t *testing.T) {
	got := PackBatch(Batch{{Int(0)}, {Int(1)}})
	assert.Equal(t, "1300181301", hex.EncodeToString(got))
}

// TestBatch_RoundTrip covers invariant 3 (batch round-trip).
func TestBatch_RoundTrip(t *testing.T) {
	batches := []Batch{
		{},
		{{}},
		{{Int(1)}},
		{{Int(1)}, {Text("a"), Text("b")}, {}},
	}
	for _, want := range batches {
		buf := PackBatch(want)
		got, err := UnpackBatch(buf)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			require.Len(t, got[i], len(want[i]))
			for j := range want[i] {
				assert.True(t, want[i][j].Equal(got[i][j]))
			}
		}
	}
}

func TestUnpackBatch_Empty(t *testing.T) {
	got, err := UnpackBatch(nil)
	require.NoError(t, err)
	assert.Equal(t, Batch{}, got)
}

func TestUnpack_TruncatedTuple(t *testing.T) {
	buf := Pack(nil, Tuple{Int(1)})
	_, err := Unpack(buf[:len(buf)-1])
	assert.Error(t, err)
}

// TestUnpack_StopsAtKindSep covers spec.md §4.4's decode_tuple termination
// rule: a literal KIND_SEP byte ends the tuple (consumed, not decoded as an
// element) rather than being materialized.
func TestUnpack_StopsAtKindSep(t *testing.T) {
	buf := Pack(nil, Tuple{Int(1)})
	buf = append(buf, byte(KindSep))
	buf = Pack(buf, Tuple{Int(2)})

	got, err := Unpack(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	v, _ := got[0].Int64()
	assert.Equal(t, int64(1), v)
}
