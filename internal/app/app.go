package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"photoboard/internal/config"
	"photoboard/internal/repository"
	services "photoboard/internal/services/photo_service"
	"photoboard/internal/storage/blob"
	"photoboard/internal/storage/blob/b2"
	"photoboard/internal/storage/blob/fs"
	httprouters "photoboard/internal/transport/http"

	"github.com/spf13/afero"

	httpapp "photoboard/internal/app/http"
)

type App struct {
	HTTPServer *httpapp.Server
}

// New builds the whole object graph: one object store per namespace (images,
// metadata), repository, service, routers, HTTP server. Stores are created
// once here and reused for the process lifetime.
func New(log *slog.Logger, cfg *config.Config) (*App, error) {
	images, metadata, err := buildStores(context.Background(), cfg.BlobStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to build blob stores: %w", err)
	}

	repo := repository.NewPhotoRepository(log, blob.WithMetrics(metadata))

	photoService := services.NewPhotoService(
		log,
		repo,
		blob.WithMetrics(images),
		cfg.BlobStorage.PublicBaseURL,
		cfg.BlobStorage.DownloadToken,
		cfg.Cache.ListingTTL,
	)

	routers := httprouters.NewRouter(log, photoService)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.StaticDir, cfg.Upload.MaxBodySize, routers)

	return &App{
		HTTPServer: server,
	}, nil
}

func buildStores(ctx context.Context, cfg config.BlobStorageConfig) (images, metadata blob.ObjectStore, err error) {
	switch cfg.Provider {
	case "b2":
		images, err = b2.New(ctx, cfg.AccountID, cfg.AccountKey, cfg.ImageBucket)
		if err != nil {
			return nil, nil, err
		}
		metadata, err = b2.New(ctx, cfg.AccountID, cfg.AccountKey, cfg.MetadataBucket)
		if err != nil {
			return nil, nil, err
		}
	case "local":
		osFs := afero.NewOsFs()
		images, err = fs.New(osFs, filepath.Join(cfg.LocalDir, cfg.ImageBucket))
		if err != nil {
			return nil, nil, err
		}
		metadata, err = fs.New(osFs, filepath.Join(cfg.LocalDir, cfg.MetadataBucket))
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown blob storage provider: %s", cfg.Provider)
	}

	return images, metadata, nil
}
