// Package api implements the tuplestore REST API: a thin HTTP surface over
// pkg/store that exposes the tuple codec directly (pack/unpack) alongside
// collection CRUD, scans, and relationship queries.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ssargent/tuplestore/pkg/store"
)

// StartServer starts the HTTP server with all routes configured.
func StartServer(kvStore *store.Store, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(kvStore, config, metrics)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Codec
		r.Post("/pack", metrics.InstrumentHandler("POST", "/api/v1/pack", server.handlePack))
		r.Post("/unpack", metrics.InstrumentHandler("POST", "/api/v1/unpack", server.handleUnpack))

		// Collection records, keyed by a hex-encoded tuple
		r.Put("/collections/{collection}/keys/{keyHex}",
			metrics.InstrumentHandler("PUT", "/api/v1/collections/{collection}/keys/{keyHex}", server.handlePutRecord))
		r.Get("/collections/{collection}/keys/{keyHex}",
			metrics.InstrumentHandler("GET", "/api/v1/collections/{collection}/keys/{keyHex}", server.handleGetRecord))
		r.Delete("/collections/{collection}/keys/{keyHex}",
			metrics.InstrumentHandler("DELETE", "/api/v1/collections/{collection}/keys/{keyHex}", server.handleDeleteRecord))
		r.Get("/collections/{collection}/scan",
			metrics.InstrumentHandler("GET", "/api/v1/collections/{collection}/scan", server.handleScan))

		// Relationships
		r.Post("/relationships", metrics.InstrumentHandler("POST", "/api/v1/relationships", server.handleCreateRelationship))
		r.Delete("/relationships", metrics.InstrumentHandler("DELETE", "/api/v1/relationships", server.handleDeleteRelationship))
		r.Get("/relationships", metrics.InstrumentHandler("GET", "/api/v1/relationships", server.handleGetRelationships))
	})

	bind := config.Bind
	if bind == "" {
		bind = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", bind, config.Port)
	fmt.Printf("Starting tuplestore REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}
