package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"photoboard/internal/domain/models"
	"photoboard/internal/repository"
	services "photoboard/internal/services/photo_service"
	"photoboard/internal/storage"
	"photoboard/internal/storage/blob"
	"photoboard/internal/storage/blob/fs"
	"photoboard/internal/transport/http/dto"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPhotoRepository) Get(ctx context.Context, id string) (*models.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Put(ctx context.Context, photo *models.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepository) ListAll(ctx context.Context) ([]models.Photo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) ApplyMutation(ctx context.Context, id string, fn func(*models.Photo)) (*models.Photo, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// newTestService wires the service over in-memory stores, the same shape the
// application wires in production.
func newTestService(t *testing.T) (*services.PhotoService, *repository.PhotoRepo, blob.ObjectStore) {
	t.Helper()

	memFs := afero.NewMemMapFs()

	images, err := fs.New(memFs, "images")
	require.NoError(t, err)

	metadata, err := fs.New(memFs, "metadata")
	require.NoError(t, err)

	repo := repository.NewPhotoRepository(testLogger(), metadata)
	service := services.NewPhotoService(testLogger(), repo, images, "http://localhost:8080/photoboard-images", "", time.Minute)

	return service, repo, images
}

func uploadInput() dto.PhotoUploadInput {
	return dto.PhotoUploadInput{
		Title:     "Sunset",
		Caption:   "over the bay",
		Location:  "Lisbon",
		Tags:      "sunset,sea",
		ImageData: base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
		FileName:  "sunset.jpg",
	}
}

func TestPhotoService_UploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("successful upload", func(t *testing.T) {
		service, repo, images := newTestService(t)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		assert.NotEmpty(t, photo.ID)
		assert.Equal(t, "Sunset", photo.Title)
		assert.Equal(t, "sunset.jpg", photo.FileName)
		assert.Equal(t, 0, photo.Likes)
		assert.Equal(t, float64(0), photo.Rating)
		assert.Equal(t, 0, photo.RatingCount)
		assert.Equal(t, []string{}, photo.Comments)
		assert.Equal(t, "http://localhost:8080/photoboard-images/"+photo.ID+"-sunset.jpg", photo.URL)

		stored, err := repo.Get(ctx, photo.ID)
		require.NoError(t, err)
		assert.Equal(t, photo, stored)

		imageData, err := images.Get(ctx, photo.ID+"-sunset.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), imageData)
	})

	t.Run("data uri payload", func(t *testing.T) {
		service, _, images := newTestService(t)

		input := uploadInput()
		input.ImageData = "data:image/jpeg;base64," + input.ImageData

		photo, err := service.UploadPhoto(ctx, input)
		require.NoError(t, err)

		imageData, err := images.Get(ctx, photo.ID+"-sunset.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), imageData)
	})

	t.Run("missing required fields", func(t *testing.T) {
		service, repo, _ := newTestService(t)

		cases := []struct {
			name   string
			mutate func(*dto.PhotoUploadInput)
			want   string
		}{
			{"empty title", func(i *dto.PhotoUploadInput) { i.Title = "" }, "title is required"},
			{"empty imageData", func(i *dto.PhotoUploadInput) { i.ImageData = "" }, "imageData is required"},
			{"empty fileName", func(i *dto.PhotoUploadInput) { i.FileName = "" }, "fileName is required"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := uploadInput()
				tc.mutate(&input)

				_, err := service.UploadPhoto(ctx, input)
				require.Error(t, err)
				assert.True(t, models.IsPhotoValidationError(err))
				assert.Contains(t, err.Error(), tc.want)
			})
		}

		photos, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("invalid base64", func(t *testing.T) {
		service, _, _ := newTestService(t)

		input := uploadInput()
		input.ImageData = "%%% not base64 %%%"

		_, err := service.UploadPhoto(ctx, input)
		require.Error(t, err)
		assert.True(t, models.IsPhotoValidationError(err))
	})

	t.Run("file name sanitization and content type", func(t *testing.T) {
		repo := repository.NewPhotoRepository(testLogger(), newMemStore(t, "metadata"))
		mockImages := new(MockObjectStore)
		service := services.NewPhotoService(testLogger(), repo, mockImages, "http://cdn.local/images", "", time.Minute)

		mockImages.On("Put", mock.Anything,
			mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, "-my_photo_.png") }),
			[]byte("fake image bytes"),
			"image/png",
		).Return(nil)

		input := uploadInput()
		input.FileName = "my photo!.png"

		photo, err := service.UploadPhoto(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, "my_photo_.png", photo.FileName)
		mockImages.AssertExpectations(t)
	})

	t.Run("download token is appended to the url", func(t *testing.T) {
		repo := repository.NewPhotoRepository(testLogger(), newMemStore(t, "metadata"))
		service := services.NewPhotoService(testLogger(), repo, newMemStore(t, "images"), "http://cdn.local/images", "secret-token", time.Minute)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		assert.Equal(t, "http://cdn.local/images/"+photo.ID+"-sunset.jpg?Authorization=secret-token", photo.URL)
	})

	t.Run("image upload failure writes no metadata", func(t *testing.T) {
		repo := repository.NewPhotoRepository(testLogger(), newMemStore(t, "metadata"))
		mockImages := new(MockObjectStore)
		service := services.NewPhotoService(testLogger(), repo, mockImages, "http://cdn.local/images", "", time.Minute)

		mockImages.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("bucket unavailable"))

		_, err := service.UploadPhoto(ctx, uploadInput())
		require.Error(t, err)

		photos, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("metadata failure leaves the image orphaned", func(t *testing.T) {
		mockRepo := new(MockPhotoRepository)
		mockImages := new(MockObjectStore)
		service := services.NewPhotoService(testLogger(), mockRepo, mockImages, "http://cdn.local/images", "", time.Minute)

		mockImages.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("Put", mock.Anything, mock.Anything).Return(errors.New("metadata write failed"))

		_, err := service.UploadPhoto(ctx, uploadInput())
		require.Error(t, err)

		// no rollback of the image object
		mockImages.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPhotoService_ListPhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("empty gallery", func(t *testing.T) {
		service, _, _ := newTestService(t)

		photos, err := service.ListPhotos(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("newest first", func(t *testing.T) {
		service, repo, _ := newTestService(t)

		for i, uploadedAt := range []string{
			"2025-11-12T10:00:00.000000000Z",
			"2025-11-13T10:00:00.000000000Z",
			"2025-11-14T10:00:00.000000000Z",
		} {
			photo := &models.Photo{
				ID:         string(rune('a' + i)),
				Title:      "photo",
				FileName:   "p.jpg",
				Comments:   []string{},
				UploadedAt: uploadedAt,
			}
			require.NoError(t, repo.Put(ctx, photo))
		}

		photos, err := service.ListPhotos(ctx)
		require.NoError(t, err)
		require.Len(t, photos, 3)

		assert.Equal(t, "2025-11-14T10:00:00.000000000Z", photos[0].UploadedAt)
		assert.Equal(t, "2025-11-13T10:00:00.000000000Z", photos[1].UploadedAt)
		assert.Equal(t, "2025-11-12T10:00:00.000000000Z", photos[2].UploadedAt)
	})

	t.Run("upload invalidates the cached listing", func(t *testing.T) {
		service, _, _ := newTestService(t)

		photos, err := service.ListPhotos(ctx)
		require.NoError(t, err)
		assert.Empty(t, photos)

		_, err = service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		photos, err = service.ListPhotos(ctx)
		require.NoError(t, err)
		assert.Len(t, photos, 1)
	})
}

func TestPhotoService_DeletePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes record and image", func(t *testing.T) {
		service, repo, images := newTestService(t)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		require.NoError(t, service.DeletePhoto(ctx, photo.ID))

		_, err = repo.Get(ctx, photo.ID)
		require.ErrorIs(t, err, storage.ErrPhotoNotFound)

		ok, err := images.Exists(ctx, photo.ID+"-sunset.jpg")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing photo", func(t *testing.T) {
		service, _, _ := newTestService(t)

		err := service.DeletePhoto(ctx, "missing")
		require.ErrorIs(t, err, storage.ErrPhotoNotFound)
	})

	t.Run("image delete failure does not block metadata delete", func(t *testing.T) {
		repo := repository.NewPhotoRepository(testLogger(), newMemStore(t, "metadata"))
		mockImages := new(MockObjectStore)
		service := services.NewPhotoService(testLogger(), repo, mockImages, "http://cdn.local/images", "", time.Minute)

		photo := &models.Photo{
			ID:         "100",
			Title:      "photo",
			URL:        "http://cdn.local/images/100-p.jpg?Authorization=tok",
			FileName:   "p.jpg",
			Comments:   []string{},
			UploadedAt: "2025-11-14T10:00:00.000000000Z",
		}
		require.NoError(t, repo.Put(ctx, photo))

		mockImages.On("Delete", mock.Anything, "100-p.jpg").Return(errors.New("delete failed"))

		require.NoError(t, service.DeletePhoto(ctx, "100"))

		_, err := repo.Get(ctx, "100")
		require.ErrorIs(t, err, storage.ErrPhotoNotFound)
		mockImages.AssertExpectations(t)
	})
}

func TestPhotoService_LikePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential likes accumulate", func(t *testing.T) {
		service, _, _ := newTestService(t)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		for want := 1; want <= 5; want++ {
			likes, err := service.LikePhoto(ctx, photo.ID)
			require.NoError(t, err)
			assert.Equal(t, want, likes)
		}
	})

	t.Run("missing photo", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.LikePhoto(ctx, "missing")
		require.ErrorIs(t, err, storage.ErrPhotoNotFound)
	})
}

func TestPhotoService_RatePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("running mean", func(t *testing.T) {
		service, _, _ := newTestService(t)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		for _, rating := range []float64{5, 3} {
			_, _, err := service.RatePhoto(ctx, photo.ID, rating)
			require.NoError(t, err)
		}

		rating, count, err := service.RatePhoto(ctx, photo.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, 4.0, rating)
	})

	t.Run("bounds", func(t *testing.T) {
		service, _, _ := newTestService(t)

		photo, err := service.UploadPhoto(ctx, uploadInput())
		require.NoError(t, err)

		for _, rating := range []float64{0, 6} {
			_, _, err := service.RatePhoto(ctx, photo.ID, rating)
			require.Error(t, err)
			assert.True(t, models.IsPhotoValidationError(err))
		}

		for _, rating := range []float64{1, 5} {
			_, _, err := service.RatePhoto(ctx, photo.ID, rating)
			require.NoError(t, err)
		}
	})

	t.Run("missing photo", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, _, err := service.RatePhoto(ctx, "missing", 3)
		require.ErrorIs(t, err, storage.ErrPhotoNotFound)
	})
}

func newMemStore(t *testing.T, dir string) *fs.Store {
	t.Helper()

	store, err := fs.New(afero.NewMemMapFs(), dir)
	require.NoError(t, err)

	return store
}
