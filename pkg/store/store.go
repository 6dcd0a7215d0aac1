// Package store provides workspace persistence.
//
// The [Store] interface abstracts over backends: an in-memory store for the
// CLI and tests, and a Mongo-backed store (pkg/store/mongo) for the server.
// Workspaces are stored as their serialization documents
// ([workspace.Document]), so whatever round-trips through JSON round-trips
// through a store.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/archview/archview/pkg/workspace"
)

var (
	// ErrNotFound is returned when a workspace does not exist.
	ErrNotFound = errors.New("workspace not found")

	// ErrEmptyID is returned when a workspace ID is empty.
	ErrEmptyID = errors.New("workspace ID must not be empty")
)

// Store is the interface for workspace storage backends.
type Store interface {
	// Get retrieves a workspace document by ID.
	// Returns ErrNotFound if the workspace doesn't exist.
	Get(ctx context.Context, id string) (workspace.Document, error)

	// Put stores a workspace document under the given ID, replacing any
	// existing document.
	Put(ctx context.Context, id string, doc workspace.Document) error

	// List returns the IDs of all stored workspaces in sorted order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a workspace. Deleting a missing workspace returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory store for CLI use and tests.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]workspace.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]workspace.Document)}
}

// Get retrieves a workspace document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (workspace.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return workspace.Document{}, ErrNotFound
	}
	return doc, nil
}

// Put stores a workspace document.
func (s *MemoryStore) Put(ctx context.Context, id string, doc workspace.Document) error {
	if id == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = doc
	return nil
}

// List returns all workspace IDs in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a workspace.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
