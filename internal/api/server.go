// Package api exposes the measurement store, snap index and report over a
// JSON HTTP API. Handlers serialize store access with a single mutex:
// snapshot-based undo requires single-writer discipline, and the mutex is
// the embedding of that rule.
package api

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fieldline-data/measurekit/internal/httputil"
	"github.com/fieldline-data/measurekit/internal/snap"
	"github.com/fieldline-data/measurekit/internal/store"
	"github.com/fieldline-data/measurekit/internal/version"
)

// ANSI escape codes for request log coloring.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server owns the HTTP surface over one store and one snap index.
type Server struct {
	mu    sync.Mutex
	store *store.Store
	snaps *snap.Index
}

// NewServer wires a server over the given store and snap index.
func NewServer(st *store.Store, snaps *snap.Index) *Server {
	return &Server{
		store: st,
		snaps: snaps,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/measurements", s.listMeasurements)
	mux.HandleFunc("POST /api/measurements", s.createMeasurement)
	mux.HandleFunc("GET /api/measurements/{id}", s.getMeasurement)
	mux.HandleFunc("PATCH /api/measurements/{id}", s.patchMeasurement)
	mux.HandleFunc("DELETE /api/measurements/{id}", s.deleteMeasurement)
	mux.HandleFunc("POST /api/measurements/{id}/duplicate", s.duplicateMeasurement)

	mux.HandleFunc("GET /api/groups", s.listGroups)
	mux.HandleFunc("POST /api/groups", s.createGroup)
	mux.HandleFunc("PATCH /api/groups/{id}", s.patchGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", s.deleteGroup)
	mux.HandleFunc("POST /api/groups/{id}/members", s.addGroupMember)
	mux.HandleFunc("DELETE /api/groups/{id}/members/{mid}", s.removeGroupMember)

	mux.HandleFunc("POST /api/undo", s.undo)
	mux.HandleFunc("POST /api/redo", s.redo)
	mux.HandleFunc("GET /api/aggregates", s.aggregates)
	mux.HandleFunc("GET /api/export", s.export)
	mux.HandleFunc("POST /api/import", s.importState)
	mux.HandleFunc("GET /api/settings", s.getSettings)
	mux.HandleFunc("PUT /api/settings", s.putSettings)

	mux.HandleFunc("POST /api/snap/providers", s.rebuildSnapIndex)
	mux.HandleFunc("GET /api/snap", s.findSnap)

	mux.HandleFunc("GET /report", s.reportPage)
	mux.HandleFunc("GET /api/version", s.version)

	return mux
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, version.Get())
}
