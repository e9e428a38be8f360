package b2

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"photoboard/internal/storage"

	"github.com/kurin/blazer/b2"
)

// Store is a blob.ObjectStore backed by a single Backblaze B2 bucket.
type Store struct {
	bucket *b2.Bucket
}

// New authorizes against B2 and returns a store bound to bucketName. The
// bucket is created on first use if it does not exist yet.
func New(ctx context.Context, accountID, accountKey, bucketName string) (*Store, error) {
	client, err := b2.NewClient(ctx, accountID, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.NewBucket(ctx, bucketName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketName, err)
	}

	return &Store{bucket: bucket}, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.bucket.Object(key).Attrs(ctx)
	if err != nil {
		if b2.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	r := s.bucket.Object(key).NewReader(ctx)
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		if b2.IsNotExist(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	w := s.bucket.Object(key).NewWriter(ctx, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		if b2.IsNotExist(err) {
			return storage.ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	iter := s.bucket.List(ctx, b2.ListPrefix(prefix))
	for iter.Next() {
		keys = append(keys, iter.Object().Name())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
