package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"photoboard/internal/domain/models"
	"photoboard/internal/lib/logger/sl"
	"photoboard/internal/repository"
	"photoboard/internal/storage/blob"
	"photoboard/internal/transport/http/dto"

	gocache "github.com/patrickmn/go-cache"
)

const listingCacheKey = "photos:listing"

// uploadedAtLayout is RFC3339 with a fixed-width nanosecond fraction, so the
// encoded timestamps order lexically the same way they order in time.
const uploadedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// fileNameUnsafe matches every character that may not appear in a stored
// file name; each match is replaced with "_" before the name becomes part of
// an object key.
var fileNameUnsafe = regexp.MustCompile(`[^A-Za-z0-9.-]`)

type PhotoService struct {
	log           *slog.Logger
	repo          repository.PhotoRepository
	images        blob.ObjectStore
	publicBaseURL string
	downloadToken string
	cache         *gocache.Cache
}

func NewPhotoService(log *slog.Logger, repo repository.PhotoRepository, images blob.ObjectStore, publicBaseURL, downloadToken string, listingTTL time.Duration) *PhotoService {
	return &PhotoService{
		log:           log,
		repo:          repo,
		images:        images,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		downloadToken: downloadToken,
		cache:         gocache.New(listingTTL, 2*listingTTL),
	}
}

// ListPhotos returns every record sorted by upload time, newest first. An
// empty collection is a valid answer, never an error. The aggregate downloads
// one object per record, so the sorted result is memoized for a short TTL and
// dropped on every mutation.
func (s *PhotoService) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	const op = "photo_service.ListPhotos"

	if cached, ok := s.cache.Get(listingCacheKey); ok {
		return cached.([]models.Photo), nil
	}

	photos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].UploadedAt > photos[j].UploadedAt
	})

	s.cache.SetDefault(listingCacheKey, photos)

	return photos, nil
}

// UploadPhoto stores the image bytes first and the metadata record second:
// if the image upload fails no metadata is written, while a metadata failure
// after a successful image upload may leave an orphan image object behind.
// The orphan is accepted and not rolled back.
func (s *PhotoService) UploadPhoto(ctx context.Context, input dto.PhotoUploadInput) (*models.Photo, error) {
	const op = "photo_service.UploadPhoto"

	log := s.log.With(slog.String("op", op))

	if err := validateUploadInput(input); err != nil {
		return nil, err
	}

	imageBytes, err := decodeImageData(input.ImageData)
	if err != nil {
		return nil, &models.PhotoValidationError{Errors: []string{"imageData is not valid base64"}}
	}

	id := strconv.FormatInt(time.Now().UnixNano(), 10)
	fileName := fileNameUnsafe.ReplaceAllString(input.FileName, "_")
	imageKey := id + "-" + fileName

	log.Info("uploading photo",
		slog.String("id", id),
		slog.String("file_name", fileName),
		slog.Int("size", len(imageBytes)),
	)

	if err := s.images.Put(ctx, imageKey, imageBytes, contentTypeFor(fileName)); err != nil {
		log.Error("failed to upload image", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photo := &models.Photo{
		ID:          id,
		Title:       input.Title,
		Caption:     input.Caption,
		Location:    input.Location,
		Tags:        input.Tags,
		URL:         s.imageURL(imageKey),
		FileName:    fileName,
		Likes:       0,
		Comments:    []string{},
		Rating:      0,
		RatingCount: 0,
		UploadedAt:  time.Now().UTC().Format(uploadedAtLayout),
	}

	if err := photo.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, photo); err != nil {
		log.Error("failed to save record, image object may be orphaned",
			slog.String("image_key", imageKey), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(listingCacheKey)

	return photo, nil
}

// DeletePhoto removes the record and, best effort, its image object. The
// metadata delete is the operation of record: an image delete failure is
// logged and swallowed, orphan cleanup is left to an out-of-band sweep.
func (s *PhotoService) DeletePhoto(ctx context.Context, id string) error {
	const op = "photo_service.DeletePhoto"

	log := s.log.With(slog.String("op", op), slog.String("id", id))

	photo, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	imageKey := imageKeyFromURL(photo.URL)
	if imageKey != "" {
		if err := s.images.Delete(ctx, imageKey); err != nil {
			log.Warn("failed to delete image object", slog.String("image_key", imageKey), sl.Err(err))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(listingCacheKey)

	log.Info("photo deleted")

	return nil
}

func (s *PhotoService) LikePhoto(ctx context.Context, id string) (int, error) {
	const op = "photo_service.LikePhoto"

	photo, err := s.repo.ApplyMutation(ctx, id, func(p *models.Photo) {
		p.Likes++
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(listingCacheKey)

	return photo.Likes, nil
}

// RatePhoto folds one more submission into the running mean:
// newMean = (oldMean*oldCount + rating) / (oldCount + 1).
func (s *PhotoService) RatePhoto(ctx context.Context, id string, rating float64) (float64, int, error) {
	const op = "photo_service.RatePhoto"

	if rating < 1 || rating > 5 {
		return 0, 0, &models.PhotoValidationError{Errors: []string{"rating must be between 1 and 5"}}
	}

	photo, err := s.repo.ApplyMutation(ctx, id, func(p *models.Photo) {
		oldCount := p.RatingCount
		p.RatingCount++
		p.Rating = (p.Rating*float64(oldCount) + rating) / float64(p.RatingCount)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(listingCacheKey)

	return photo.Rating, photo.RatingCount, nil
}

func validateUploadInput(input dto.PhotoUploadInput) error {
	var missing []string

	if input.Title == "" {
		missing = append(missing, "title is required")
	}
	if input.ImageData == "" {
		missing = append(missing, "imageData is required")
	}
	if input.FileName == "" {
		missing = append(missing, "fileName is required")
	}

	if len(missing) > 0 {
		return &models.PhotoValidationError{Errors: missing}
	}

	return nil
}

// decodeImageData accepts either a full data URI ("data:image/png;base64,...")
// or a bare base64 payload.
func decodeImageData(imageData string) ([]byte, error) {
	const marker = "base64,"

	payload := imageData
	if idx := strings.Index(imageData, marker); idx >= 0 {
		payload = imageData[idx+len(marker):]
	}

	return base64.StdEncoding.DecodeString(payload)
}

func contentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func (s *PhotoService) imageURL(imageKey string) string {
	url := s.publicBaseURL + "/" + imageKey
	if s.downloadToken != "" {
		url += "?Authorization=" + s.downloadToken
	}
	return url
}

// imageKeyFromURL recovers the image object key from a stored record URL:
// the trailing path segment, stripped of any access-token query string.
func imageKeyFromURL(url string) string {
	key := url
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		key = key[idx+1:]
	}
	if idx := strings.Index(key, "?"); idx >= 0 {
		key = key[:idx]
	}
	return key
}
