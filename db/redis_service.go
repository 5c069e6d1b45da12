package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/go-redis/redis/v8"
)

const (
	collectionsKey   = "collections" // Set: names of all collections holding data
	collectionPrefix = "collection:" // Prefix for per-collection keys
)

// RedisService stores documents in Redis.
//
// Keys:
//
//	collections                 Set: collection names
//	collection:{name}:ids       List: document IDs in insertion order
//	collection:{name}:docs      Hash: ID -> JSON document
type RedisService struct {
	Client *redis.Client
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{Client: client}
}

// Helper to generate the ID list key of a collection
func getIDsKey(collection string) string {
	return collectionPrefix + collection + ":ids"
}

// Helper to generate the document hash key of a collection
func getDocsKey(collection string) string {
	return collectionPrefix + collection + ":docs"
}

// CreateDocument stores doc with a new ID
func (s *RedisService) CreateDocument(ctx context.Context, collection string, doc Document) (string, error) {
	if collection == "" {
		return "", errors.New("collection name cannot be empty")
	}
	id := NewID()
	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["id"] = id

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	pipe := s.Client.TxPipeline()
	pipe.SAdd(ctx, collectionsKey, collection)
	pipe.HSet(ctx, getDocsKey(collection), id, data)
	pipe.RPush(ctx, getIDsKey(collection), id)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error adding document to %s: %v", collection, err)
		return "", fmt.Errorf("failed to add document to Redis: %w", err)
	}
	return id, nil
}

// GetDocuments returns the documents of a collection in insertion order
func (s *RedisService) GetDocuments(ctx context.Context, collection string, filter map[string]any) ([]Document, error) {
	ids, err := s.Client.LRange(ctx, getIDsKey(collection), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Document{}, nil
		}
		log.Printf("Error getting IDs of %s: %v", collection, err)
		return nil, fmt.Errorf("failed to get document IDs from Redis: %w", err)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	values, err := s.Client.HMGet(ctx, getDocsKey(collection), ids...).Result()
	if err != nil {
		log.Printf("Error getting documents of %s: %v", collection, err)
		return nil, fmt.Errorf("failed to get documents from Redis: %w", err)
	}

	docs := make([]Document, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Listed but missing from the hash
			log.Printf("Document %s in %s has no data, skipping", ids[i], collection)
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s in %s: %w", ids[i], collection, err)
		}
		if matches(doc, filter) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// GetDocument retrieves a document by its ID
func (s *RedisService) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	raw, err := s.Client.HGet(ctx, getDocsKey(collection), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not found
		}
		log.Printf("Error getting document %s from %s: %v", id, collection, err)
		return nil, fmt.Errorf("failed to get document from Redis: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s in %s: %w", id, collection, err)
	}
	return doc, nil
}

// ListCollections returns the known collection names
func (s *RedisService) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.Client.SMembers(ctx, collectionsKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Ping checks the Redis connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Name returns the Redis logical database in use
func (s *RedisService) Name() string {
	return fmt.Sprintf("redis db %d", s.Client.Options().DB)
}

// --- Utility ---

// InitializeRedisClient creates a Redis client from a connection string and
// tests the connection. A failed ping is logged, not fatal: the diagnostic
// endpoint reports it.
func InitializeRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: could not connect to Redis at %s: %v", opts.Addr, err)
		return rdb, nil
	}

	log.Printf("Successfully connected to Redis %s DB %d", opts.Addr, opts.DB)
	return rdb, nil
}
