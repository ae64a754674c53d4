package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ssargent/tuplestore/pkg/tuple"
)

const relationshipsCollection = "relationships"

// Relationship links two entity keys.
type Relationship struct {
	FromKey   tuple.Key              `json:"-"`
	ToKey     tuple.Key              `json:"-"`
	Relation  string                 `json:"relation"`
	CreatedAt time.Time              `json:"created_at"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type relationshipValue struct {
	Relation  string                 `json:"relation"`
	CreatedAt time.Time              `json:"created_at"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// RelationshipQuery selects relationships touching Key.
type RelationshipQuery struct {
	Key       tuple.Key
	Relation  string // optional filter
	Direction string // "outgoing", "incoming", or "both"
	Limit     int
}

// RelationshipResult is one match for a RelationshipQuery.
type RelationshipResult struct {
	Relationship Relationship
	OtherKey     tuple.Key
	Direction    string
}

// relationshipKeyTuple builds the (direction, fromKey, relation, toKey)
// tuple used as the relationship's storage key. Direction is part of the
// key, not just a query filter, so the same edge is stored twice — once
// under "out" keyed by its source, once under "in" keyed by its
// destination — which is what lets PutRelationship's two collection scans
// (by fromKey, by toKey) stay prefix scans instead of full scans.
func relationshipKeyTuple(direction string, from tuple.Key, relation string, to tuple.Key) tuple.Tuple {
	return tuple.Tuple{
		tuple.Text(direction),
		tuple.Blob(from.ToRaw()),
		tuple.Text(relation),
		tuple.Blob(to.ToRaw()),
	}
}

// PutRelationship records an edge from -> to, storing both its outgoing
// and incoming directions so lookups from either endpoint are prefix scans.
func (s *Store) PutRelationship(r Relationship) error {
	if r.FromKey.IsEmpty() || r.ToKey.IsEmpty() {
		return fmt.Errorf("%w: relationship endpoints must be non-empty", ErrInvalidKey)
	}
	val := relationshipValue{Relation: r.Relation, CreatedAt: r.CreatedAt, Metadata: r.Metadata}
	buf, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("store: marshal relationship: %w", err)
	}
	if err := s.Put(relationshipsCollection, relationshipKeyTuple("out", r.FromKey, r.Relation, r.ToKey), buf); err != nil {
		return fmt.Errorf("store: put outgoing relationship: %w", err)
	}
	if err := s.Put(relationshipsCollection, relationshipKeyTuple("in", r.ToKey, r.Relation, r.FromKey), buf); err != nil {
		return fmt.Errorf("store: put incoming relationship: %w", err)
	}
	return nil
}

// DeleteRelationship removes both directions of an edge.
func (s *Store) DeleteRelationship(from tuple.Key, relation string, to tuple.Key) error {
	if err := s.Delete(relationshipsCollection, relationshipKeyTuple("out", from, relation, to)); err != nil {
		return fmt.Errorf("store: delete outgoing relationship: %w", err)
	}
	if err := s.Delete(relationshipsCollection, relationshipKeyTuple("in", to, relation, from)); err != nil {
		return fmt.Errorf("store: delete incoming relationship: %w", err)
	}
	return nil
}

// QueryRelationships returns every relationship matching q, bounded by
// q.Limit (0 means unbounded).
func (s *Store) QueryRelationships(q RelationshipQuery) ([]RelationshipResult, error) {
	var results []RelationshipResult
	directions := []string{"out", "in"}
	if q.Direction == "outgoing" {
		directions = []string{"out"}
	} else if q.Direction == "incoming" {
		directions = []string{"in"}
	}

	for _, dir := range directions {
		prefix := tuple.Tuple{tuple.Text(dir), tuple.Blob(q.Key.ToRaw())}
		if q.Relation != "" {
			prefix = append(prefix, tuple.Text(q.Relation))
		}
		it, err := s.Scan(relationshipsCollection, prefix)
		if err != nil {
			return nil, fmt.Errorf("store: scan relationships: %w", err)
		}
		for it.Next() {
			if q.Limit > 0 && len(results) >= q.Limit {
				break
			}
			t, ok, err := tuple.UnpackPrefixed(collectionPrefix(relationshipsCollection), it.Key())
			if err != nil {
				it.Close()
				return nil, fmt.Errorf("store: decode relationship key: %w", err)
			}
			if !ok || len(t) != 4 {
				continue
			}
			otherRaw, _ := t[3].Blob()
			relation, _ := t[2].Text()

			var v relationshipValue
			if err := json.Unmarshal(it.Value(), &v); err != nil {
				it.Close()
				return nil, fmt.Errorf("store: decode relationship value: %w", err)
			}

			reportedDir := "outgoing"
			if dir == "in" {
				reportedDir = "incoming"
			}
			results = append(results, RelationshipResult{
				Relationship: Relationship{
					FromKey:   q.Key,
					ToKey:     tuple.NewKey(otherRaw),
					Relation:  relation,
					CreatedAt: v.CreatedAt,
					Metadata:  v.Metadata,
				},
				OtherKey:  tuple.NewKey(otherRaw),
				Direction: reportedDir,
			})
		}
		if err := it.Close(); err != nil {
			return nil, fmt.Errorf("store: close relationship scan: %w", err)
		}
	}
	return results, nil
}
