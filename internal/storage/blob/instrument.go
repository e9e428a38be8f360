package blob

import (
	"context"

	"photoboard/internal/metrics"
)

// Instrumented decorates an ObjectStore with per-operation counters.
type Instrumented struct {
	next ObjectStore
}

func WithMetrics(next ObjectStore) *Instrumented {
	return &Instrumented{next: next}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (s *Instrumented) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.next.Exists(ctx, key)
	metrics.BlobOperationsTotal.WithLabelValues("exists", outcome(err)).Inc()
	return ok, err
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.next.Get(ctx, key)
	metrics.BlobOperationsTotal.WithLabelValues("get", outcome(err)).Inc()
	return data, err
}

func (s *Instrumented) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := s.next.Put(ctx, key, data, contentType)
	metrics.BlobOperationsTotal.WithLabelValues("put", outcome(err)).Inc()
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	metrics.BlobOperationsTotal.WithLabelValues("delete", outcome(err)).Inc()
	return err
}

func (s *Instrumented) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.next.List(ctx, prefix)
	metrics.BlobOperationsTotal.WithLabelValues("list", outcome(err)).Inc()
	return keys, err
}
