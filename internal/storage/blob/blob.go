package blob

import "context"

// ObjectStore is the capability surface the rest of the service needs from a
// key-addressed blob store: one instance per bucket ("namespace"), no
// cross-object atomicity, at-least read-after-write consistency per object.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
