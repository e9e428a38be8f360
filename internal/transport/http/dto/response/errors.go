package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrPhotoNotFound = ErrorResponse{
		Status:  "error",
		Error:   "photo_not_found",
		Details: "Photo with this id does not exist",
	}

	ErrStorageFailure = ErrorResponse{
		Status:  "error",
		Error:   "storage_failure",
		Details: "Object storage operation failed",
	}
)
