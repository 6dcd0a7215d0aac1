package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/archview/archview/pkg/errors"
	"github.com/archview/archview/pkg/observability"
	"github.com/archview/archview/pkg/pipeline"
	"github.com/archview/archview/pkg/store"
	"github.com/archview/archview/pkg/workspace"
)

var formatContentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "listing workspaces"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"workspaces": ids})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		s.writeError(w, err)
		return
	}

	var doc workspace.Document
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 10<<20)).Decode(&doc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding workspace document"))
		return
	}
	// Rebuild the model once now so malformed documents are rejected at
	// upload time, not at first view request.
	if _, err := workspace.ToWorkspace(doc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "invalid workspace document"))
		return
	}

	start := time.Now()
	err := s.store.Put(r.Context(), id, doc)
	observability.Store().OnStorePut(r.Context(), id, time.Since(start), err)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "storing workspace %s", id))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		s.writeError(w, err)
		return
	}
	err := s.store.Delete(r.Context(), id)
	observability.Store().OnStoreDelete(r.Context(), id, err)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			s.writeError(w, errors.Wrap(errors.ErrCodeWorkspaceNotFound, err, "workspace %s", id))
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "deleting workspace %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	ws, err := workspace.ToWorkspace(doc)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "rebuilding workspace"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts := pipeline.Options{
		Container: chi.URLParam(r, "container"),
		All:       queryBool(r, "all"),
		Expand:    queryBool(r, "expand"),
		Detailed:  queryBool(r, "detailed"),
		Formats:   []string{format},
		Namespace: chi.URLParam(r, "id"),
	}

	v, err := s.runner.Compose(r.Context(), ws, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), v, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", formatContentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

// loadDocument fetches the workspace document for the {id} URL parameter,
// writing the error response itself on failure.
func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (workspace.Document, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		s.writeError(w, err)
		return workspace.Document{}, false
	}

	start := time.Now()
	doc, err := s.store.Get(r.Context(), id)
	observability.Store().OnStoreGet(r.Context(), id, time.Since(start), err)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			s.writeError(w, errors.Wrap(errors.ErrCodeWorkspaceNotFound, err, "workspace %s", id))
			return workspace.Document{}, false
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "loading workspace %s", id))
		return workspace.Document{}, false
	}
	return doc, true
}

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if s.logger != nil && status >= 500 {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func queryBool(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && b
}
