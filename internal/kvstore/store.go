package kvstore

import "context"

// KeyValue is one result of a batched read
type KeyValue struct {
	Key   string
	Value []byte
}

// Store is an asynchronous key-value store for serialized records.
// Get returns (nil, nil) for a missing key. Set either fully commits
// or fully fails; callers rely on that for whole-collection writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	GetMultiple(ctx context.Context, keys []string) ([]KeyValue, error)
	RemoveMultiple(ctx context.Context, keys []string) error
}
