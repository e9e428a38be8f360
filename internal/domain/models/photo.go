package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Photo is the single persisted entity. One JSON object per photo lives in the
// metadata bucket under "{id}.json"; the raw image bytes live in the image
// bucket under "{id}-{fileName}".
type Photo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Caption     string   `json:"caption"`
	Location    string   `json:"location"`
	Tags        string   `json:"tags"`
	URL         string   `json:"url"`
	FileName    string   `json:"fileName"`
	Likes       int      `json:"likes"`
	Comments    []string `json:"comments"`
	Rating      float64  `json:"rating"`
	RatingCount int      `json:"ratingCount"`
	UploadedAt  string   `json:"uploadedAt"`
}

// requiredKeys are the fields a stored record cannot operate without. Zero
// values are legal for all of them, so presence is checked on the raw JSON
// keys rather than on the decoded struct.
var requiredKeys = []string{"id", "likes", "rating", "ratingCount", "uploadedAt"}

func EncodePhoto(p *Photo) ([]byte, error) {
	return json.Marshal(p)
}

func DecodePhoto(data []byte) (*Photo, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode photo record: %w", err)
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("decode photo record: missing field %q", key)
		}
	}

	var p Photo
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode photo record: %w", err)
	}

	return &p, nil
}

// Validate проверяет инварианты записи перед сохранением
func (p *Photo) Validate() error {
	var validationErrors []string

	if p.ID == "" {
		validationErrors = append(validationErrors, "id is required")
	}
	if p.Title == "" {
		validationErrors = append(validationErrors, "title is required")
	}
	if p.FileName == "" {
		validationErrors = append(validationErrors, "file name is required")
	}
	if p.Likes < 0 {
		validationErrors = append(validationErrors, "likes must be non-negative")
	}
	if p.RatingCount < 0 {
		validationErrors = append(validationErrors, "rating count must be non-negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		validationErrors = append(validationErrors, "rating must be within [0,5]")
	}
	if p.RatingCount == 0 && p.Rating != 0 {
		validationErrors = append(validationErrors, "rating must be 0 when no ratings were submitted")
	}
	if p.UploadedAt == "" {
		validationErrors = append(validationErrors, "uploadedAt is required")
	}

	if len(validationErrors) > 0 {
		return &PhotoValidationError{
			Errors: validationErrors,
		}
	}

	return nil
}

// PhotoValidationError кастомный тип ошибки для валидации
type PhotoValidationError struct {
	Errors []string
}

func (e *PhotoValidationError) Error() string {
	return fmt.Sprintf("photo validation failed: %s", strings.Join(e.Errors, "; "))
}

// IsPhotoValidationError проверяет, является ли ошибка ошибкой валидации
func IsPhotoValidationError(err error) bool {
	_, ok := err.(*PhotoValidationError)
	return ok
}
