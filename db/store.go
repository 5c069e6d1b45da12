package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrInvalidID is returned when an identifier string is not well-formed
var ErrInvalidID = errors.New("invalid ID format")

// Document is a single stored record. The "id" field is assigned by the store.
type Document map[string]any

// DocumentStore is the contract the API layer relies on.
// Documents live in named collections and keep their insertion order.
type DocumentStore interface {
	// CreateDocument stores doc under a freshly assigned ID and returns that ID
	CreateDocument(ctx context.Context, collection string, doc Document) (string, error)

	// GetDocuments returns the documents of a collection matching filter (nil matches all)
	GetDocuments(ctx context.Context, collection string, filter map[string]any) ([]Document, error)

	// GetDocument returns one document by ID, or nil if not found
	GetDocument(ctx context.Context, collection, id string) (Document, error)

	// ListCollections returns the sorted names of collections that hold data
	ListCollections(ctx context.Context) ([]string, error)

	// Ping checks connectivity
	Ping(ctx context.Context) error

	// Name describes the backing database
	Name() string
}

// NewStore creates a DocumentStore for the given backend.
//
// Supported backends:
//
//	"redis"  - Redis via client (default)
//	"memory" - in-memory, data lost on restart
func NewStore(backend string, client *redis.Client) (DocumentStore, error) {
	switch backend {
	case "redis", "":
		if client == nil {
			return nil, errors.New("redis backend requires a client")
		}
		return NewRedisService(client), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: redis, memory)", backend)
	}
}

// NewID returns a fresh document ID
func NewID() string {
	return uuid.NewString()
}

// ParseID validates an identifier string and returns its canonical form
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.String(), nil
}

// ToDocument converts a struct into a Document by round-tripping through JSON
func ToDocument(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return doc, nil
}

// DecodeDocument fills v from doc. Fields with the wrong type (e.g. a
// non-numeric score) make it fail.
func DecodeDocument(doc Document, v any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode document %v: %w", doc["id"], err)
	}
	return nil
}

// matches reports whether doc has every field of filter with an equal value
func matches(doc Document, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
