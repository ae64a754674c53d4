// Package index maintains secondary indexes over collections stored in
// pkg/store, backed by pkg/bptree and keyed with pkg/tuple so that equality
// and range queries over a field's value are ordered B+Tree range scans
// rather than full scans.
package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ssargent/tuplestore/pkg/bptree"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// SecondaryIndex maps a field's value to the set of primary keys of
// records holding that value.
type SecondaryIndex struct {
	fieldName string
	tree      *bptree.BPlusTree[tuple.Key, tuple.Key]
	mutex     sync.RWMutex
}

// NewSecondaryIndex creates a new, empty secondary index for a field.
func NewSecondaryIndex(fieldName string, order int) *SecondaryIndex {
	return &SecondaryIndex{
		fieldName: fieldName,
		tree:      bptree.NewBPlusTree[tuple.Key, tuple.Key](order),
	}
}

// fieldElement converts a Go value into the tuple element kind it maps to.
// float64 has no codec kind and is deliberately unsupported: an index over
// floating-point equality is rarely what callers want anyway.
func fieldElement(value interface{}) tuple.Element {
	switch v := value.(type) {
	case tuple.Element:
		return v
	case int:
		return tuple.Int(int64(v))
	case int64:
		return tuple.Int(v)
	case uint64:
		return tuple.Uint(v)
	case bool:
		return tuple.BoolElem(v)
	case string:
		return tuple.Text(v)
	case []byte:
		return tuple.Blob(v)
	default:
		return tuple.Text(fmt.Sprintf("%v", v))
	}
}

func fieldPrefix(fieldValue interface{}) []byte {
	return tuple.Pack(nil, tuple.Tuple{fieldElement(fieldValue)})
}

// indexKey builds the composite (field_value, primary_key) key that makes
// every entry in the tree unique even when many records share a value.
func indexKey(fieldValue interface{}, primaryKey tuple.Key) tuple.Key {
	return tuple.NewKey(append(fieldPrefix(fieldValue), primaryKey.ToRaw()...))
}

// Insert adds a record to the secondary index.
func (idx *SecondaryIndex) Insert(fieldValue interface{}, primaryKey tuple.Key) {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	idx.tree.Insert(indexKey(fieldValue, primaryKey), primaryKey)
}

// Delete removes a record from the secondary index.
func (idx *SecondaryIndex) Delete(fieldValue interface{}, primaryKey tuple.Key) bool {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	return idx.tree.Delete(indexKey(fieldValue, primaryKey))
}

// prefixBounds returns the [lo, hi) range that covers every index key
// whose field-value component encodes to exactly prefix.
func prefixBounds(prefix []byte) (tuple.Key, tuple.Key) {
	lo := tuple.NewKey(prefix)
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xFF {
			upper[i]++
			upper = upper[:i+1]
			return lo, tuple.NewKey(upper)
		}
	}
	return lo, tuple.NewKey(append(upper, 0xFF))
}

// Search finds every primary key recorded under an exact field value.
func (idx *SecondaryIndex) Search(fieldValue interface{}) ([]tuple.Key, error) {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	lo, hi := prefixBounds(fieldPrefix(fieldValue))
	return idx.tree.RangeSearch(lo, hi), nil
}

// SearchRange finds every primary key recorded under a field value in
// [startValue, endValue). Either bound may be nil to mean unbounded on
// that side.
func (idx *SecondaryIndex) SearchRange(startValue, endValue interface{}) ([]tuple.Key, error) {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	if startValue == nil && endValue == nil {
		keys, _ := idx.tree.Items()
		return keys, nil
	}
	if endValue == nil {
		return idx.tree.SearchFrom(tuple.NewKey(fieldPrefix(startValue))), nil
	}
	if startValue == nil {
		return idx.tree.RangeSearch(tuple.NewKey(nil), tuple.NewKey(fieldPrefix(endValue))), nil
	}
	return idx.tree.RangeSearch(tuple.NewKey(fieldPrefix(startValue)), tuple.NewKey(fieldPrefix(endValue))), nil
}

// indexDump is the on-disk representation of a SecondaryIndex: parallel
// slices of raw index-key bytes and raw primary-key bytes, since tuple.Key
// itself is not gob-encodable (its exported surface is all methods).
type indexDump struct {
	Keys   [][]byte
	Values [][]byte
}

// Save persists the index to dir/index_<field>.dat.
func (idx *SecondaryIndex) Save(dir string) error {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	keys, values := idx.tree.Items()
	dump := indexDump{Keys: make([][]byte, len(keys)), Values: make([][]byte, len(values))}
	for i, k := range keys {
		dump.Keys[i] = k.ToRaw()
	}
	for i, v := range values {
		dump.Values[i] = v.ToRaw()
	}

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("index_%s.dat", idx.fieldName)))
	if err != nil {
		return fmt.Errorf("index: save %s: %w", idx.fieldName, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(dump); err != nil {
		return fmt.Errorf("index: encode %s: %w", idx.fieldName, err)
	}
	return nil
}

// Load restores the index from dir/index_<field>.dat. A missing file is
// not an error: it just means the index starts out empty.
func (idx *SecondaryIndex) Load(dir string) error {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	path := filepath.Join(dir, fmt.Sprintf("index_%s.dat", idx.fieldName))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("index: load %s: %w", idx.fieldName, err)
	}
	defer f.Close()

	var dump indexDump
	if err := gob.NewDecoder(f).Decode(&dump); err != nil {
		return fmt.Errorf("index: decode %s: %w", idx.fieldName, err)
	}

	tree := bptree.NewBPlusTree[tuple.Key, tuple.Key](bptree.DefaultOrder)
	for i := range dump.Keys {
		tree.Insert(tuple.NewKey(dump.Keys[i]), tuple.NewKey(dump.Values[i]))
	}
	idx.tree = tree
	return nil
}

// IndexManager owns every secondary index for a collection.
type IndexManager struct {
	indexes map[string]*SecondaryIndex
	mutex   sync.RWMutex
	order   int
}

// NewIndexManager creates an empty index manager with the given B+Tree order.
func NewIndexManager(order int) *IndexManager {
	return &IndexManager{
		indexes: make(map[string]*SecondaryIndex),
		order:   order,
	}
}

// GetOrCreateIndex returns the index for fieldName, creating it if absent.
func (im *IndexManager) GetOrCreateIndex(fieldName string) *SecondaryIndex {
	im.mutex.Lock()
	defer im.mutex.Unlock()

	if idx, exists := im.indexes[fieldName]; exists {
		return idx
	}

	idx := NewSecondaryIndex(fieldName, im.order)
	im.indexes[fieldName] = idx
	return idx
}

// SaveAll persists every managed index to dir.
func (im *IndexManager) SaveAll(dir string) error {
	im.mutex.RLock()
	defer im.mutex.RUnlock()

	for _, idx := range im.indexes {
		if err := idx.Save(dir); err != nil {
			return err
		}
	}
	return nil
}

// LoadAll discovers and loads every index_*.dat file under dir.
func (im *IndexManager) LoadAll(dir string) error {
	im.mutex.Lock()
	defer im.mutex.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "index_*.dat"))
	if err != nil {
		return fmt.Errorf("index: glob %s: %w", dir, err)
	}

	for _, file := range files {
		filename := filepath.Base(file)
		if len(filename) < len("index_.dat") {
			continue
		}
		fieldName := filename[len("index_") : len(filename)-len(".dat")]

		idx := NewSecondaryIndex(fieldName, im.order)
		if err := idx.Load(dir); err != nil {
			return err
		}
		im.indexes[fieldName] = idx
	}
	return nil
}
