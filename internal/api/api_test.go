package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/archview/archview/pkg/pipeline"
	"github.com/archview/archview/pkg/store"
	"github.com/archview/archview/pkg/workspace"
)

func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil)
	t.Cleanup(func() { runner.Close() })
	return NewServer(st, runner, nil), st
}

func testDocument(t *testing.T) workspace.Document {
	t.Helper()

	ws, err := workspace.New("Bank", "internet banking")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m := ws.Model
	sys, err := m.AddSoftwareSystem("Banking", "core system")
	if err != nil {
		t.Fatalf("AddSoftwareSystem: %v", err)
	}
	api, err := m.AddContainer(sys, "API", "backend", "Go")
	if err != nil {
		t.Fatalf("AddContainer: %v", err)
	}
	db, err := m.AddContainer(sys, "Database", "storage", "Postgres")
	if err != nil {
		t.Fatalf("AddContainer: %v", err)
	}
	accounts, err := m.AddComponent(api, "Accounts", "account lookups", "Go")
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if _, err := m.AddComponent(api, "Transfers", "money movement", "Go"); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if _, err := m.AddRelationship(accounts, db, "reads from", "SQL"); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	return workspace.FromWorkspace(ws)
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPutGetDeleteWorkspace(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	body, err := json.Marshal(testDocument(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := do(t, router, http.MethodPut, "/workspaces/bank", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("put status = %d, want 201: %s", rec.Code, rec.Body)
	}

	rec = do(t, router, http.MethodGet, "/workspaces/bank", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var doc workspace.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}
	if doc.Name != "Bank" {
		t.Errorf("document name = %q, want Bank", doc.Name)
	}

	rec = do(t, router, http.MethodGet, "/workspaces", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list struct {
		Workspaces []string `json:"workspaces"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list.Workspaces) != 1 || list.Workspaces[0] != "bank" {
		t.Errorf("workspaces = %v, want [bank]", list.Workspaces)
	}

	rec = do(t, router, http.MethodDelete, "/workspaces/bank", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/workspaces/bank", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestPutRejectsInvalidBody(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	rec := do(t, router, http.MethodPut, "/workspaces/bank", []byte("not json"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// Structurally valid JSON referencing an unknown relationship endpoint.
	doc := testDocument(t)
	doc.Relationships[0].SourceID = "missing"
	body, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rec = do(t, router, http.MethodPut, "/workspaces/bank", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Code == "" || resp.Error == "" {
		t.Errorf("error response missing fields: %+v", resp)
	}
}

func TestDeleteMissingWorkspace(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv.Router(), http.MethodDelete, "/workspaces/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestViewEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	body, err := json.Marshal(testDocument(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if rec := do(t, router, http.MethodPut, "/workspaces/bank", body); rec.Code != http.StatusCreated {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body)
	}

	rec := do(t, router, http.MethodGet, "/workspaces/bank/views/API?expand=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	var out pipeline.ViewJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	// Accounts, Transfers, and the Database dependency.
	if len(out.Elements) != 3 {
		t.Errorf("elements = %d, want 3", len(out.Elements))
	}

	rec = do(t, router, http.MethodGet, "/workspaces/bank/views/API?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dot status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "digraph") {
		t.Errorf("dot body missing digraph header:\n%s", rec.Body)
	}

	rec = do(t, router, http.MethodGet, "/workspaces/bank/views/Mainframe", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown container status = %d, want 404", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/workspaces/bank/views/API?format=pdf", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/workspaces/missing/views/API", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing workspace status = %d, want 404", rec.Code)
	}
}
