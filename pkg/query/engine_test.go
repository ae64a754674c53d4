package query

import (
	"context"
	"testing"

	"github.com/ssargent/tuplestore/pkg/index"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

func TestFieldQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   FieldQuery
		wantErr bool
	}{
		{
			name:    "valid equality query",
			query:   FieldQuery{Field: "age", Operator: "=", Value: 25},
			wantErr: false,
		},
		{
			name:    "valid range query",
			query:   FieldQuery{Field: "age", Operator: ">", Value: 18},
			wantErr: false,
		},
		{
			name:    "empty field",
			query:   FieldQuery{Field: "", Operator: "=", Value: 25},
			wantErr: true,
		},
		{
			name:    "invalid operator",
			query:   FieldQuery{Field: "age", Operator: "invalid", Value: 25},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("FieldQuery.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONFieldExtractor_Extract(t *testing.T) {
	extractor := &JSONFieldExtractor{}

	tests := []struct {
		name     string
		jsonData string
		field    string
		want     interface{}
		wantErr  bool
	}{
		{
			name:     "extract string field",
			jsonData: `{"name":"John","age":25}`,
			field:    "name",
			want:     "John",
			wantErr:  false,
		},
		{
			name:     "extract number field",
			jsonData: `{"name":"John","age":25}`,
			field:    "age",
			want:     float64(25), // JSON unmarshals numbers as float64
			wantErr:  false,
		},
		{
			name:     "field not found",
			jsonData: `{"name":"John","age":25}`,
			field:    "email",
			want:     nil,
			wantErr:  true,
		},
		{
			name:     "invalid JSON",
			jsonData: `{"name":"John","age":`,
			field:    "name",
			want:     nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Extract([]byte(tt.jsonData), tt.field)
			if (err != nil) != tt.wantErr {
				t.Errorf("JSONFieldExtractor.Extract() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("JSONFieldExtractor.Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimpleQueryEngine_ExecuteQuery(t *testing.T) {
	indexManager := index.NewIndexManager(4)
	engine := NewSimpleQueryEngine(indexManager, nil)
	extractor := &JSONFieldExtractor{}

	query := FieldQuery{Field: "age", Operator: "=", Value: 25}

	iterator, err := engine.ExecuteQuery(context.Background(), "test-partition", query, extractor)
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	defer iterator.Close()

	if iterator.Next() {
		t.Error("expected no results from an empty index")
	}
}

func TestSimpleQueryEngine_IndexOperations(t *testing.T) {
	indexManager := index.NewIndexManager(4)
	engine := NewSimpleQueryEngine(indexManager, nil)
	extractor := &JSONFieldExtractor{}

	testRecords := []struct {
		key string
		age int
	}{
		{"user:1", 25},
		{"user:2", 30},
		{"user:3", 25},
	}

	ageIndex := indexManager.GetOrCreateIndex("age")
	for _, record := range testRecords {
		ageIndex.Insert(record.age, tuple.NewKeyFromTuple(nil, tuple.Tuple{tuple.Text(record.key)}))
	}

	query := FieldQuery{Field: "age", Operator: "=", Value: 25}
	iterator, err := engine.ExecuteQuery(context.Background(), "users", query, extractor)
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	defer iterator.Close()

	var count int
	for iterator.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 matches for age=25, got %d", count)
	}

	rangeQuery := FieldQuery{Field: "age", Operator: ">=", Value: 25}
	rangeIterator, err := engine.ExecuteQuery(context.Background(), "users", rangeQuery, extractor)
	if err != nil {
		t.Fatalf("range query failed: %v", err)
	}
	defer rangeIterator.Close()

	count = 0
	for rangeIterator.Next() {
		count++
	}
	if count != 3 {
		t.Errorf("expected all 3 records with age>=25, got %d", count)
	}

	if indexManager.GetOrCreateIndex("age") != ageIndex {
		t.Error("expected GetOrCreateIndex to return the same instance")
	}
}
