package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"photoboard/internal/domain/models"
	"photoboard/internal/lib/logger/sl"
	"photoboard/internal/storage"
	"photoboard/internal/storage/blob"
)

const metadataSuffix = ".json"

// PhotoRepo stores one JSON object per photo in the metadata bucket, keyed
// "{id}.json". The metadata object is authoritative: a photo exists iff its
// record does.
type PhotoRepo struct {
	log   *slog.Logger
	store blob.ObjectStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPhotoRepository(log *slog.Logger, store blob.ObjectStore) *PhotoRepo {
	return &PhotoRepo{
		log:   log,
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func metadataKey(id string) string {
	return id + metadataSuffix
}

func (r *PhotoRepo) Exists(ctx context.Context, id string) (bool, error) {
	const op = "repository.photo_repository.Exists"

	ok, err := r.store.Exists(ctx, metadataKey(id))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (r *PhotoRepo) Get(ctx context.Context, id string) (*models.Photo, error) {
	const op = "repository.photo_repository.Get"

	data, err := r.store.Get(ctx, metadataKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photo, err := models.DecodePhoto(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrMalformedRecord, err)
	}

	return photo, nil
}

func (r *PhotoRepo) Put(ctx context.Context, photo *models.Photo) error {
	const op = "repository.photo_repository.Put"

	data, err := models.EncodePhoto(photo)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.Put(ctx, metadataKey(photo.ID), data, "application/json"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PhotoRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.photo_repository.Delete"

	if err := r.store.Delete(ctx, metadataKey(id)); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListAll downloads and decodes every record in the metadata bucket. A record
// that fails to decode is logged and skipped; one corrupt object must not
// fail the whole listing. An empty or freshly created bucket yields an empty
// slice, not an error.
func (r *PhotoRepo) ListAll(ctx context.Context) ([]models.Photo, error) {
	const op = "repository.photo_repository.ListAll"

	log := r.log.With(slog.String("op", op))

	keys, err := r.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos := make([]models.Photo, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, metadataSuffix) {
			continue
		}

		data, err := r.store.Get(ctx, key)
		if err != nil {
			log.Warn("failed to download record, skipping", slog.String("key", key), sl.Err(err))
			continue
		}

		photo, err := models.DecodePhoto(data)
		if err != nil {
			log.Warn("malformed record, skipping", slog.String("key", key), sl.Err(err))
			continue
		}

		photos = append(photos, *photo)
	}

	return photos, nil
}

// ApplyMutation is the read-modify-write primitive behind like and rate:
// get, apply the pure fn in memory, put the result. The underlying store
// only offers create-or-overwrite, so writers racing on the same id would
// silently lose updates; mutations are therefore serialized per id with an
// in-process mutex held across the whole cycle.
func (r *PhotoRepo) ApplyMutation(ctx context.Context, id string, fn func(*models.Photo)) (*models.Photo, error) {
	const op = "repository.photo_repository.ApplyMutation"

	lock := r.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	photo, err := r.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fn(photo)

	if err := r.Put(ctx, photo); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photo, nil
}

func (r *PhotoRepo) idLock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}
