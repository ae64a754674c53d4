package store

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/tuplestore/pkg/tuple"
)

func openTestStore(t testing.TB) *Store {
	tmpDir, err := os.MkdirTemp("", "store_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := Open(Config{DataDir: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutAndGet(t *testing.T) {
	s := openTestStore(t)

	key := tuple.Tuple{tuple.Text("alice"), tuple.Int(1)}
	require.NoError(t, s.Put("users", key, []byte("v1")))

	v, err := s.Get("users", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	_, err = s.Get("users", tuple.Tuple{tuple.Text("bob")})
	assert.Equal(t, ErrKeyNotFound, err)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)

	key := tuple.Tuple{tuple.Text("k")}
	require.NoError(t, s.Put("widgets", key, []byte("v")))
	require.NoError(t, s.Delete("widgets", key))

	_, err := s.Get("widgets", key)
	assert.Equal(t, ErrKeyNotFound, err)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete("widgets", key))
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	s := openTestStore(t)

	key := tuple.Tuple{tuple.Text("shared")}
	require.NoError(t, s.Put("a", key, []byte("from-a")))
	require.NoError(t, s.Put("b", key, []byte("from-b")))

	va, err := s.Get("a", key)
	require.NoError(t, err)
	vb, err := s.Get("b", key)
	require.NoError(t, err)

	assert.Equal(t, []byte("from-a"), va)
	assert.Equal(t, []byte("from-b"), vb)
}

func TestStore_PutBatchAndGetBatch(t *testing.T) {
	s := openTestStore(t)

	key := tuple.Tuple{tuple.Text("batch1")}
	values := [][]byte{[]byte("one"), []byte(""), []byte("three")}
	require.NoError(t, s.PutBatch("records", key, values))

	got, err := s.GetBatch("records", key)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "one", string(got[0]))
	assert.Equal(t, "", string(got[1]))
	assert.Equal(t, "three", string(got[2]))
}

func TestStore_Scan(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		key := tuple.Tuple{tuple.Text("user"), tuple.Int(int64(i))}
		require.NoError(t, s.Put("events", key, []byte(fmt.Sprintf("v%d", i))))
	}
	// A key in a different sub-prefix should not be returned by the scan below.
	require.NoError(t, s.Put("events", tuple.Tuple{tuple.Text("admin"), tuple.Int(0)}, []byte("nope")))

	it, err := s.Scan("events", tuple.Tuple{tuple.Text("user")})
	require.NoError(t, err)
	defer it.Close()

	var seen []string
	for it.Next() {
		seen = append(seen, string(it.Value()))
	}
	require.NoError(t, it.Close())
	assert.Equal(t, []string{"v0", "v1", "v2", "v3", "v4"}, seen)
}

func TestStore_ErrorHandling(t *testing.T) {
	_, err := Open(Config{DataDir: "/invalid/path/that/does/not/exist/and/cannot/be/created"})
	assert.Error(t, err)
}

func BenchmarkStore_Put(b *testing.B) {
	s := openTestStore(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := tuple.Tuple{tuple.Text("bench"), tuple.Int(int64(i))}
		if err := s.Put("bench", key, []byte("v")); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStore_Get(b *testing.B) {
	s := openTestStore(b)

	for i := 0; i < 1000; i++ {
		key := tuple.Tuple{tuple.Text("bench"), tuple.Int(int64(i))}
		s.Put("bench", key, []byte("v"))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := tuple.Tuple{tuple.Text("bench"), tuple.Int(int64(i % 1000))}
		s.Get("bench", key)
	}
}
