package store

import (
	"context"
	"sync"

	"github.com/fixitfast/adminseed/internal/admin"
)

// Memory is an in-memory Store keyed by email. Used in tests.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]admin.Document
}

var _ Store = (*Memory)(nil)

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]admin.Document)}
}

func (m *Memory) EnsureIndexes(context.Context) error { return nil }

func (m *Memory) Insert(_ context.Context, doc admin.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[doc.Email]; exists {
		return ErrDuplicate
	}
	m.docs[doc.Email] = doc
	return nil
}

func (m *Memory) Close(context.Context) error { return nil }

// Len reports the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Get returns the stored document for an email, if any.
func (m *Memory) Get(email string) (admin.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[email]
	return doc, ok
}
