package repository

import (
	"context"

	"photoboard/internal/domain/models"
)

type PhotoRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (*models.Photo, error)
	Put(ctx context.Context, photo *models.Photo) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Photo, error)
	ApplyMutation(ctx context.Context, id string, fn func(*models.Photo)) (*models.Photo, error)
}
