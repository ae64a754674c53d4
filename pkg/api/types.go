package api

import "github.com/ssargent/tuplestore/pkg/store"

// APIResponse represents a standard API response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// RelationshipRequest represents a relationship creation/deletion request.
// FromKeyHex and ToKeyHex are the hex encoding of a full tuple.Key, as
// returned by Store.RecordKey and rendered with Key.ToHex.
type RelationshipRequest struct {
	FromKeyHex string `json:"from_key_hex"`
	ToKeyHex   string `json:"to_key_hex"`
	Relation   string `json:"relation"`
}

// RelationshipResultJSON is the wire representation of a
// store.RelationshipResult.
type RelationshipResultJSON struct {
	OtherKeyHex string `json:"other_key_hex"`
	Relation    string `json:"relation"`
	Direction   string `json:"direction"`
	CreatedAt   string `json:"created_at"`
}

func relationshipResultToJSON(r store.RelationshipResult) RelationshipResultJSON {
	return RelationshipResultJSON{
		OtherKeyHex: r.OtherKey.ToHex(),
		Relation:    r.Relationship.Relation,
		Direction:   r.Direction,
		CreatedAt:   r.Relationship.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// PackRequest is the body of POST /api/v1/pack.
type PackRequest struct {
	Elements []ElementJSON `json:"elements"`
}

// PackResponse is the response of POST /api/v1/pack.
type PackResponse struct {
	TupleHex string `json:"tuple_hex"`
}

// UnpackRequest is the body of POST /api/v1/unpack.
type UnpackRequest struct {
	TupleHex string `json:"tuple_hex"`
}

// UnpackResponse is the response of POST /api/v1/unpack.
type UnpackResponse struct {
	Elements []ElementJSON `json:"elements"`
}

// ScanResultJSON is one entry of GET /api/v1/collections/{collection}/scan.
type ScanResultJSON struct {
	TupleHex  string `json:"tuple_hex"`
	ValueHex  string `json:"value_hex"`
	ValueText string `json:"value_text,omitempty"`
}
