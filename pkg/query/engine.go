package query

import (
	"context"
	"fmt"

	"github.com/ssargent/tuplestore/pkg/index"
	"github.com/ssargent/tuplestore/pkg/store"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// SimpleQueryEngine implements basic field-based queries using secondary
// indexes backed by pkg/index, resolving hits against a pkg/store.Store.
type SimpleQueryEngine struct {
	indexManager *index.IndexManager
	kvStore      *store.Store
}

// NewSimpleQueryEngine creates a new query engine.
func NewSimpleQueryEngine(indexManager *index.IndexManager, kvStore *store.Store) *SimpleQueryEngine {
	return &SimpleQueryEngine{
		indexManager: indexManager,
		kvStore:      kvStore,
	}
}

// ExecuteQuery executes a single field query.
func (qe *SimpleQueryEngine) ExecuteQuery(ctx context.Context, partitionKey string, query FieldQuery, extractor FieldExtractor) (QueryIterator, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	idx := qe.indexManager.GetOrCreateIndex(query.Field)

	switch query.Operator {
	case "=":
		return qe.executeEqualityQuery(idx, query.Value)
	case ">", ">=", "<", "<=":
		return qe.executeRangeQuery(idx, query)
	default:
		return nil, fmt.Errorf("unsupported operator: %s", query.Operator)
	}
}

// ExecuteRangeQuery executes a range query between two field conditions on
// the same field.
func (qe *SimpleQueryEngine) ExecuteRangeQuery(ctx context.Context, partitionKey string, startQuery, endQuery FieldQuery, extractor FieldExtractor) (QueryIterator, error) {
	if err := startQuery.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start query: %w", err)
	}
	if err := endQuery.Validate(); err != nil {
		return nil, fmt.Errorf("invalid end query: %w", err)
	}
	if startQuery.Field != endQuery.Field {
		return nil, fmt.Errorf("range query fields must match: %s != %s", startQuery.Field, endQuery.Field)
	}

	idx := qe.indexManager.GetOrCreateIndex(startQuery.Field)
	primaryKeys, err := idx.SearchRange(startQuery.Value, endQuery.Value)
	if err != nil {
		return nil, fmt.Errorf("range search failed: %w", err)
	}
	return &simpleIterator{results: qe.resolve(primaryKeys)}, nil
}

func (qe *SimpleQueryEngine) executeEqualityQuery(idx *index.SecondaryIndex, value interface{}) (QueryIterator, error) {
	primaryKeys, err := idx.Search(value)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}
	return &simpleIterator{results: qe.resolve(primaryKeys)}, nil
}

// executeRangeQuery handles a single-sided comparison by substituting an
// unbounded end with SearchRange's own zero-value field types; pkg/index's
// SearchRange treats a missing bound as "the rest of the keyspace" via the
// underlying tuple ordering, so ">" / ">=" / "<" / "<=" all reduce to the
// same range primitive with one side open.
func (qe *SimpleQueryEngine) executeRangeQuery(idx *index.SecondaryIndex, query FieldQuery) (QueryIterator, error) {
	var startValue, endValue interface{}

	switch query.Operator {
	case ">", ">=":
		startValue = query.Value
	case "<", "<=":
		endValue = query.Value
	default:
		return nil, fmt.Errorf("unsupported range operator: %s", query.Operator)
	}

	primaryKeys, err := idx.SearchRange(startValue, endValue)
	if err != nil {
		return nil, fmt.Errorf("range search failed: %w", err)
	}
	return &simpleIterator{results: qe.resolve(primaryKeys)}, nil
}

// resolve fetches each primary key's record from the store, silently
// dropping keys whose record has since been deleted.
func (qe *SimpleQueryEngine) resolve(primaryKeys []tuple.Key) []QueryResult {
	results := make([]QueryResult, 0, len(primaryKeys))
	for _, key := range primaryKeys {
		if qe.kvStore == nil {
			results = append(results, QueryResult{Key: key.ToRaw(), Value: []byte{}})
			continue
		}
		v, err := qe.kvStore.GetByKey(key)
		if err != nil {
			continue
		}
		results = append(results, QueryResult{Key: key.ToRaw(), Value: v})
	}
	return results
}

// simpleIterator implements QueryIterator for basic result streaming.
type simpleIterator struct {
	results []QueryResult
	index   int
}

func (it *simpleIterator) Next() bool {
	if it.index < len(it.results) {
		it.index++
		return true
	}
	return false
}

func (it *simpleIterator) Result() QueryResult {
	if it.index > 0 && it.index <= len(it.results) {
		return it.results[it.index-1]
	}
	return QueryResult{}
}

func (it *simpleIterator) Close() error {
	return nil
}
