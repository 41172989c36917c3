package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func registerRoutes(mux *http.ServeMux, components *manifest.Store, registries *registry.Store, projects ProjectStore) {
	mux.HandleFunc("/api/components", handleComponents(components))
	mux.HandleFunc("/api/component/", handleComponent(components))
	mux.HandleFunc("/api/registries", handleRegistries(registries))
	mux.HandleFunc("/api/projects", handleProjects(projects))
	mux.HandleFunc("/api/project/", handleProject(projects))
}

// GET /api/components
func handleComponents(components *manifest.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ids := make([]string, 0)
		for _, m := range components.All() {
			ids = append(ids, m.ID)
		}
		writeJSON(w, http.StatusOK, ids)
	}
}

// GET /api/component/:id
func handleComponent(components *manifest.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/component/")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing component id")
			return
		}
		m, ok := components.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown component: "+id)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// GET /api/registries
func handleRegistries(registries *registry.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if registries == nil {
			writeJSON(w, http.StatusOK, []*registry.Registry{})
			return
		}
		writeJSON(w, http.StatusOK, registries.All())
	}
}

// GET /api/projects
func handleProjects(projects ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, projects.List())
	}
}

// GET  /api/project/:id
// POST /api/project/:id/data
func handleProject(projects ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/project/")
		if rest == "" {
			writeError(w, http.StatusBadRequest, "missing project id")
			return
		}

		if id, ok := strings.CutSuffix(rest, "/data"); ok {
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}
			handleProjectData(w, r, projects, id)
			return
		}

		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		state, ok := projects.Get(rest)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown project: "+rest)
			return
		}
		writeJSON(w, http.StatusOK, state.Summary)
	}
}

func handleProjectData(w http.ResponseWriter, r *http.Request, projects ProjectStore, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	var fragment map[string]any
	if err := json.Unmarshal(body, &fragment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := projects.MergeData(id, fragment); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	state, _ := projects.Get(id)
	writeJSON(w, http.StatusOK, state.Summary)
}
