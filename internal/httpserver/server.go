// Package httpserver implements the optional config server (§6): a
// read-mostly HTTP surface over a project's resolved state, started by
// `yakka serve`.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/registry"
)

// ProjectStore resolves a project id to its most recent build summary,
// letting the server stay decoupled from how a caller chose to cache or
// rebuild that state.
type ProjectStore interface {
	Get(id string) (*ProjectState, bool)
	List() []string
	MergeData(id string, fragment map[string]any) error
}

// ProjectState is the minimal per-project state the server exposes.
type ProjectState struct {
	Summary any // typically *summary.Summary
}

// Server wraps a net/http.Server configured with the six §6 routes.
type Server struct {
	http *http.Server
}

// New builds a Server bound to addr, serving components from the given
// manifest store, registries, and per-project state.
func New(addr string, components *manifest.Store, registries *registry.Store, projects ProjectStore) *Server {
	mux := http.NewServeMux()
	registerRoutes(mux, components, registries, projects)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe blocks serving requests until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
