package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"photoboard/internal/domain/models"
	"photoboard/internal/lib/logger/sl"
	"photoboard/internal/storage"
	"photoboard/internal/transport/http/dto"
	"photoboard/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "photoboard/docs"
)

type PhotoService interface {
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	UploadPhoto(ctx context.Context, input dto.PhotoUploadInput) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
	LikePhoto(ctx context.Context, id string) (int, error)
	RatePhoto(ctx context.Context, id string, rating float64) (float64, int, error)
}

type Routers struct {
	log          *slog.Logger
	PhotoService PhotoService
}

func NewRouter(log *slog.Logger, photoService PhotoService) *Routers {
	return &Routers{
		log:          log,
		PhotoService: photoService,
	}
}

// Health godoc
// @Summary Liveness check
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string "Service status"
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "photoboard",
	})
}

// ListPhotos godoc
// @Summary List all photos
// @Description Returns every photo record, newest first. An empty gallery yields an empty array.
// @Tags photos
// @Produce json
// @Success 200 {array} models.Photo "Photo records"
// @Failure 500 {object} response.ErrorResponse "Storage failure"
// @Router /api/photos [get]
func (r *Routers) ListPhotos(c echo.Context) error {
	const op = "http.routers.ListPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	photos, err := r.PhotoService.ListPhotos(c.Request().Context())
	if err != nil {
		log.Error("failed to list photos", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStorageFailure)
	}

	return c.JSON(http.StatusOK, photos)
}

// UploadPhoto godoc
// @Summary Upload a photo
// @Description Stores the base64-encoded image and its metadata record. imageData accepts a full data URI or a bare base64 payload.
// @Tags photos
// @Accept json
// @Produce json
// @Param request body dto.PhotoUploadInput true "Photo payload"
// @Success 201 {object} models.Photo "Created photo record"
// @Failure 400 {object} response.ErrorResponse "Missing or invalid field"
// @Failure 500 {object} response.ErrorResponse "Storage failure"
// @Router /api/photos [post]
func (r *Routers) UploadPhoto(c echo.Context) error {
	const op = "http.routers.UploadPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.PhotoUploadInput

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid upload request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
	}

	photo, err := r.PhotoService.UploadPhoto(c.Request().Context(), req)
	if err != nil {
		if models.IsPhotoValidationError(err) {
			log.Warn("upload rejected", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
		}

		log.Error("failed to upload photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStorageFailure)
	}

	log.Info("photo uploaded", slog.String("id", photo.ID), slog.String("file_name", photo.FileName))

	return c.JSON(http.StatusCreated, photo)
}

// DeletePhoto godoc
// @Summary Delete a photo
// @Description Removes the metadata record and, best effort, the image object.
// @Tags photos
// @Produce json
// @Param id path string true "Photo id"
// @Success 200 {object} response.Response "Deletion confirmation"
// @Failure 404 {object} response.ErrorResponse "Photo not found"
// @Failure 500 {object} response.ErrorResponse "Storage failure"
// @Router /api/photos/{id} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := r.PhotoService.DeletePhoto(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			log.Warn("photo not found")
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}

		log.Error("failed to delete photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStorageFailure)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Data:    map[string]string{"id": id},
		Message: "photo deleted",
	})
}

// LikePhoto godoc
// @Summary Like a photo
// @Description Increments the like counter and returns the new count.
// @Tags photos
// @Produce json
// @Param id path string true "Photo id"
// @Success 200 {object} map[string]int "Updated like count"
// @Failure 404 {object} response.ErrorResponse "Photo not found"
// @Failure 500 {object} response.ErrorResponse "Storage failure"
// @Router /api/photos/{id}/like [post]
func (r *Routers) LikePhoto(c echo.Context) error {
	const op = "http.routers.LikePhoto"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	likes, err := r.PhotoService.LikePhoto(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			log.Warn("photo not found")
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}

		log.Error("failed to like photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStorageFailure)
	}

	return c.JSON(http.StatusOK, map[string]int{
		"likes": likes,
	})
}

// RatePhoto godoc
// @Summary Rate a photo
// @Description Folds a rating in [1,5] into the running mean and returns the new mean and submission count.
// @Tags photos
// @Accept json
// @Produce json
// @Param id path string true "Photo id"
// @Param request body dto.RatePhotoInput true "Rating payload"
// @Success 200 {object} map[string]interface{} "Updated rating and count"
// @Failure 400 {object} response.ErrorResponse "Rating out of range"
// @Failure 404 {object} response.ErrorResponse "Photo not found"
// @Failure 500 {object} response.ErrorResponse "Storage failure"
// @Router /api/photos/{id}/rate [post]
func (r *Routers) RatePhoto(c echo.Context) error {
	const op = "http.routers.RatePhoto"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	var req dto.RatePhotoInput

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid rating request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
	}

	rating, ratingCount, err := r.PhotoService.RatePhoto(c.Request().Context(), id, req.Rating)
	if err != nil {
		if models.IsPhotoValidationError(err) {
			log.Warn("rating rejected", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
		}

		if errors.Is(err, storage.ErrPhotoNotFound) {
			log.Warn("photo not found")
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}

		log.Error("failed to rate photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStorageFailure)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rating":      rating,
		"ratingCount": ratingCount,
	})
}
