package tuple

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestOrderPreservation_Integers covers invariant 4 for a same-kind-signature
// sweep of integers, positive and negative.
func TestOrderPreservation_Integers(t *testing.T) {
	values := []int64{-1000, -100, -1, 0, 1, 100, 1000, 1 << 40}
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	encoded := make([]string, len(sorted))
	for i, v := range sorted {
		encoded[i] = string(Pack(nil, Tuple{Int(v)}))
	}
	for i := 0; i < len(encoded)-1; i++ {
		assert.Less(t, encoded[i], encoded[i+1], "%d should encode before %d", sorted[i], sorted[i+1])
	}
}

// TestOrderPreservation_Text covers invariant 4 over lexicographically
// ordered text elements.
func TestOrderPreservation_Text(t *testing.T) {
	values := []string{"", "a", "aa", "ab", "b", "z"}
	for i := 0; i < len(values)-1; i++ {
		a := Pack(nil, Tuple{Text(values[i])})
		b := Pack(nil, Tuple{Text(values[i+1])})
		assert.Less(t, string(a), string(b), "%q should encode before %q", values[i], values[i+1])
	}
}

// TestOrderPreservation_ComponentWise covers invariant 4 for tuples of
// matching kind signature compared component by component: the first
// differing component determines order, exactly like lexicographic
// comparison of the decoded tuples.
func TestOrderPreservation_ComponentWise(t *testing.T) {
	tuples := []Tuple{
		{Int(1), Text("a")},
		{Int(1), Text("b")},
		{Int(2), Text("a")},
		{Int(2), Text("z")},
	}
	for i := 0; i < len(tuples)-1; i++ {
		a := Pack(nil, tuples[i])
		b := Pack(nil, tuples[i+1])
		assert.Less(t, string(a), string(b), "tuple %d should encode before tuple %d", i, i+1)
	}
}

// TestOrderPreservation_Booleans covers invariant 4 over booleans: false
// before true.
func TestOrderPreservation_Booleans(t *testing.T) {
	f := Pack(nil, Tuple{BoolElem(false)})
	tr := Pack(nil, Tuple{BoolElem(true)})
	assert.Less(t, string(f), string(tr))
}

// TestOrderPreservation_UUID covers invariant 4 over raw 16-byte UUID
// ordering, which is plain memcmp on the UUID bytes.
func TestOrderPreservation_UUID(t *testing.T) {
	low := uuid.UUID{0x00}
	high := uuid.UUID{0x01}
	a := Pack(nil, Tuple{UUIDElem(low)})
	b := Pack(nil, Tuple{UUIDElem(high)})
	assert.Less(t, string(a), string(b))
}

// TestOrderPreservation_Time covers invariant 4 over timestamps: later
// instants (same offset) sort after earlier ones.
func TestOrderPreservation_Time(t *testing.T) {
	earlier, err := TimeElem(Time{EpochMillis: 1000, OffsetSeconds: 0})
	assert.NoError(t, err)
	later, err := TimeElem(Time{EpochMillis: 2000, OffsetSeconds: 0})
	assert.NoError(t, err)

	a := Pack(nil, Tuple{earlier})
	b := Pack(nil, Tuple{later})
	assert.Less(t, string(a), string(b))
}

// TestTypeOrdering covers invariant 5: for elements of different kinds, byte
// order is determined purely by the kind-byte assignment in spec.md §3,
// regardless of value.
func TestTypeOrdering(t *testing.T) {
	negTime, err := TimeElem(Time{EpochMillis: -999999, OffsetSeconds: 0})
	assert.NoError(t, err)
	posTime, err := TimeElem(Time{EpochMillis: 999999, OffsetSeconds: 0})
	assert.NoError(t, err)

	// Ordered exactly as the kind-byte table in spec.md §3: null, neg-time,
	// neg-integer, bool, integer, time, blob, text, uuid.
	ordered := []Element{
		Null(),
		negTime,
		Int(-1),
		BoolElem(true), // even "true" sorts before any integer
		Int(0),
		posTime,
		Blob([]byte{0xFF}), // even a large blob sorts before any text
		Text(""),
		UUIDElem(uuid.Nil),
	}

	for i := 0; i < len(ordered)-1; i++ {
		a := Pack(nil, Tuple{ordered[i]})
		b := Pack(nil, Tuple{ordered[i+1]})
		assert.Less(t, string(a), string(b),
			"kind %s should sort before kind %s regardless of value",
			ordered[i].Kind(), ordered[i+1].Kind())
	}
}

func TestTypeOrdering_KindByteValuesAreFrozen(t *testing.T) {
	// These numeric values are the on-disk format; spec.md §3 and §6 freeze
	// them permanently.
	assert.Equal(t, Kind(0x0F), KindNull)
	assert.Equal(t, Kind(0x10), KindNegTime)
	assert.Equal(t, Kind(0x11), KindNegInteger)
	assert.Equal(t, Kind(0x12), KindBool)
	assert.Equal(t, Kind(0x13), KindInteger)
	assert.Equal(t, Kind(0x14), KindTime)
	assert.Equal(t, Kind(0x15), KindBlob)
	assert.Equal(t, Kind(0x16), KindText)
	assert.Equal(t, Kind(0x17), KindUUID)
	assert.Equal(t, Kind(0x18), KindSep)
}
