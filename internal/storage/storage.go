package storage

import "errors"

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrMalformedRecord = errors.New("malformed photo record")
	ErrObjectNotFound  = errors.New("object not found")
)
