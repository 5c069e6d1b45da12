package db

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemoryStore keeps everything in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	order       map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		order:       make(map[string][]string),
	}
}

// deepCopy returns a deep copy of a document by round-tripping through JSON.
func deepCopy(src Document) Document {
	if src == nil {
		return nil
	}
	b, _ := json.Marshal(src)
	var dst Document
	_ = json.Unmarshal(b, &dst)
	return dst
}

func (m *MemoryStore) CreateDocument(_ context.Context, collection string, doc Document) (string, error) {
	id := NewID()
	stored := deepCopy(doc)
	if stored == nil {
		stored = Document{}
	}
	stored["id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = make(map[string]Document)
	}
	m.collections[collection][id] = stored
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *MemoryStore) GetDocuments(_ context.Context, collection string, filter map[string]any) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		doc := m.collections[collection][id]
		if matches(doc, filter) {
			docs = append(docs, deepCopy(doc))
		}
	}
	return docs, nil
}

func (m *MemoryStore) GetDocument(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return deepCopy(doc), nil
}

func (m *MemoryStore) ListCollections(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := []string{}
	for name, docs := range m.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

func (m *MemoryStore) Name() string { return "memory" }
