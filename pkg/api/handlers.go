package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ssargent/tuplestore/pkg/store"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// Server holds the API server state.
type Server struct {
	store   *store.Store
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server.
func NewServer(kvStore *store.Store, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   kvStore,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) recordOp(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(operation, success, time.Since(start))
	}
}

// handleHealth reports the API's liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handlePack encodes a list of elements into a tuple and returns it as hex.
func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var req PackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	t, err := jsonToTuple(req.Elements)
	if err != nil {
		sendError(w, fmt.Sprintf("invalid elements: %v", err), http.StatusBadRequest)
		return
	}

	encoded := tuple.Pack(nil, t)
	sendSuccess(w, PackResponse{TupleHex: hex.EncodeToString(encoded)})
}

// handleUnpack decodes a hex-encoded tuple back into its elements.
func (s *Server) handleUnpack(w http.ResponseWriter, r *http.Request) {
	var req UnpackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	raw, err := hex.DecodeString(req.TupleHex)
	if err != nil {
		sendError(w, "tuple_hex is not valid hex", http.StatusBadRequest)
		return
	}

	t, err := tuple.Unpack(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("failed to unpack tuple: %v", err), http.StatusBadRequest)
		return
	}

	elements, err := tupleToJSON(t)
	if err != nil {
		sendError(w, fmt.Sprintf("failed to encode elements: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, UnpackResponse{Elements: elements})
}

// tupleFromKeyHex decodes the {keyHex} path parameter into a tuple.Tuple.
// It represents a bare, collection-less tuple; the collection comes from a
// separate path segment.
func tupleFromKeyHex(r *http.Request) (tuple.Tuple, error) {
	raw, err := hex.DecodeString(chi.URLParam(r, "keyHex"))
	if err != nil {
		return nil, fmt.Errorf("key_hex is not valid hex: %w", err)
	}
	t, err := tuple.Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack key: %w", err)
	}
	return t, nil
}

// handlePutRecord stores a value under (collection, tuple-decoded-from-keyHex).
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	collection := chi.URLParam(r, "collection")

	t, err := tupleFromKeyHex(r)
	if err != nil {
		s.recordOp("put", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body := make([]byte, r.ContentLength)
	if _, err := r.Body.Read(body); err != nil && err.Error() != "EOF" {
		s.recordOp("put", false, start)
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	contentType := getContentTypeFromHeader(r.Header.Get("Content-Type"))
	encoded := encodeDataWithContentType(body, contentType)

	if err := s.store.Put(collection, t, encoded); err != nil {
		s.recordOp("put", false, start)
		sendError(w, fmt.Sprintf("failed to put record: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("put", true, start)
	sendSuccess(w, map[string]string{"message": "record stored"})
}

// handleGetRecord retrieves a value by (collection, tuple-decoded-from-keyHex).
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	collection := chi.URLParam(r, "collection")

	t, err := tupleFromKeyHex(r)
	if err != nil {
		s.recordOp("get", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	encoded, err := s.store.Get(collection, t)
	if err != nil {
		s.recordOp("get", false, start)
		if errors.Is(err, store.ErrKeyNotFound) {
			sendError(w, "record not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("failed to get record: %v", err), http.StatusInternalServerError)
		}
		return
	}

	s.recordOp("get", true, start)
	data, contentType := decodeDataWithContentType(encoded)
	w.Header().Set("Content-Type", getContentTypeHeader(contentType))
	if _, err := w.Write(data); err != nil {
		sendError(w, "failed to write response", http.StatusInternalServerError)
	}
}

// handleDeleteRecord removes the record at (collection, tuple-decoded-from-keyHex).
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	collection := chi.URLParam(r, "collection")

	t, err := tupleFromKeyHex(r)
	if err != nil {
		s.recordOp("delete", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(collection, t); err != nil {
		s.recordOp("delete", false, start)
		sendError(w, fmt.Sprintf("failed to delete record: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("delete", true, start)
	sendSuccess(w, map[string]string{"message": "record deleted"})
}

// handleScan lists every record in a collection whose key starts with the
// tuple encoded in the optional ?prefix_hex= query parameter.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	collection := chi.URLParam(r, "collection")

	var prefix tuple.Tuple
	if prefixHex := r.URL.Query().Get("prefix_hex"); prefixHex != "" {
		raw, err := hex.DecodeString(prefixHex)
		if err != nil {
			s.recordOp("scan", false, start)
			sendError(w, "prefix_hex is not valid hex", http.StatusBadRequest)
			return
		}
		t, err := tuple.Unpack(raw)
		if err != nil {
			s.recordOp("scan", false, start)
			sendError(w, fmt.Sprintf("failed to unpack prefix: %v", err), http.StatusBadRequest)
			return
		}
		prefix = t
	}

	it, err := s.store.Scan(collection, prefix)
	if err != nil {
		s.recordOp("scan", false, start)
		sendError(w, fmt.Sprintf("failed to scan collection: %v", err), http.StatusInternalServerError)
		return
	}
	defer it.Close()

	results := make([]ScanResultJSON, 0)
	collPrefix := tuple.Pack(nil, tuple.Tuple{tuple.Text(collection)})
	for it.Next() {
		t, ok, err := tuple.UnpackPrefixed(collPrefix, it.Key())
		if err != nil || !ok {
			continue
		}
		data, _ := decodeDataWithContentType(it.Value())
		results = append(results, ScanResultJSON{
			TupleHex: hex.EncodeToString(tuple.Pack(nil, t)),
			ValueHex: hex.EncodeToString(data),
		})
	}

	s.recordOp("scan", true, start)
	sendSuccess(w, map[string]interface{}{"results": results})
}

// handleCreateRelationship links two record keys.
func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req RelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordRelOp("create", false)
		sendError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}
	if req.FromKeyHex == "" || req.ToKeyHex == "" || req.Relation == "" {
		s.recordRelOp("create", false)
		sendError(w, "from_key_hex, to_key_hex, and relation are required", http.StatusBadRequest)
		return
	}

	from, err := tuple.NewKeyFromHex(req.FromKeyHex)
	if err != nil {
		s.recordRelOp("create", false)
		sendError(w, "from_key_hex is not valid hex", http.StatusBadRequest)
		return
	}
	to, err := tuple.NewKeyFromHex(req.ToKeyHex)
	if err != nil {
		s.recordRelOp("create", false)
		sendError(w, "to_key_hex is not valid hex", http.StatusBadRequest)
		return
	}

	rel := store.Relationship{FromKey: from, ToKey: to, Relation: req.Relation, CreatedAt: time.Now()}
	if err := s.store.PutRelationship(rel); err != nil {
		s.recordRelOp("create", false)
		sendError(w, fmt.Sprintf("failed to create relationship: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordRelOp("create", true)
	sendSuccess(w, map[string]string{"message": "relationship created"})
}

// handleDeleteRelationship removes a relationship between two keys.
func (s *Server) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	var req RelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}
	if req.FromKeyHex == "" || req.ToKeyHex == "" || req.Relation == "" {
		sendError(w, "from_key_hex, to_key_hex, and relation are required", http.StatusBadRequest)
		return
	}

	from, err := tuple.NewKeyFromHex(req.FromKeyHex)
	if err != nil {
		sendError(w, "from_key_hex is not valid hex", http.StatusBadRequest)
		return
	}
	to, err := tuple.NewKeyFromHex(req.ToKeyHex)
	if err != nil {
		sendError(w, "to_key_hex is not valid hex", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteRelationship(from, req.Relation, to); err != nil {
		sendError(w, fmt.Sprintf("failed to delete relationship: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, map[string]string{"message": "relationship deleted"})
}

// handleGetRelationships lists relationships touching a key.
func (s *Server) handleGetRelationships(w http.ResponseWriter, r *http.Request) {
	keyHex := r.URL.Query().Get("key_hex")
	if keyHex == "" {
		sendError(w, "key_hex parameter is required", http.StatusBadRequest)
		return
	}
	key, err := tuple.NewKeyFromHex(keyHex)
	if err != nil {
		sendError(w, "key_hex is not valid hex", http.StatusBadRequest)
		return
	}

	direction := r.URL.Query().Get("direction")
	if direction == "" {
		direction = "both"
	}
	relation := r.URL.Query().Get("relation")

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	results, err := s.store.QueryRelationships(store.RelationshipQuery{
		Key:       key,
		Relation:  relation,
		Direction: direction,
		Limit:     limit,
	})
	if err != nil {
		sendError(w, fmt.Sprintf("failed to get relationships: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]RelationshipResultJSON, len(results))
	for i, res := range results {
		out[i] = relationshipResultToJSON(res)
	}
	sendSuccess(w, map[string]interface{}{"relationships": out})
}

func (s *Server) recordRelOp(operation string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordRelationshipOperation(operation, success)
	}
}

// Content type constants, used to remember whether a stored value was
// originally JSON or opaque bytes.
const (
	ContentTypeRaw    = 0
	ContentTypeJSON   = 1
	ContentTypeHeader = 2 // header size: type byte + null terminator
)

func encodeDataWithContentType(data []byte, contentType int) []byte {
	header := make([]byte, ContentTypeHeader)
	header[0] = byte(contentType)
	header[1] = 0
	return append(header, data...)
}

func decodeDataWithContentType(encodedData []byte) ([]byte, int) {
	if len(encodedData) < ContentTypeHeader {
		return encodedData, ContentTypeRaw
	}
	contentType := int(encodedData[0])
	if encodedData[1] != 0 {
		return encodedData, ContentTypeRaw
	}
	return encodedData[ContentTypeHeader:], contentType
}

func getContentTypeFromHeader(contentTypeHeader string) int {
	if strings.Contains(contentTypeHeader, "application/json") {
		return ContentTypeJSON
	}
	return ContentTypeRaw
}

func getContentTypeHeader(contentType int) string {
	switch contentType {
	case ContentTypeJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
