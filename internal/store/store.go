package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Keys of the records kept in the key/value store.
const (
	KeyTasks = "tasks"
	KeyView  = "view"
	KeyLang  = "lang"
	KeyTheme = "theme"
)

// ErrKeyNotFound is returned by KV.Get when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KV is a durable local key/value store holding serialized records.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Load decodes the JSON record stored under key into a value of type T.
// A missing key, malformed data, or any read failure yields def; the
// caller never sees an error.
func Load[T any](ctx context.Context, kv KV, key string, def T) T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("reading %q, using default: %v", key, err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("decoding %q, using default: %v", key, err)
		return def
	}
	return v
}

// Save encodes v as JSON and stores it under key.
func Save[T any](ctx context.Context, kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}
