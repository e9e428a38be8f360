package dto

type PhotoUploadInput struct {
	Title     string `json:"title" validate:"required"`
	Caption   string `json:"caption"`
	Location  string `json:"location"`
	Tags      string `json:"tags"`
	ImageData string `json:"imageData" validate:"required"`
	FileName  string `json:"fileName" validate:"required"`
}

type RatePhotoInput struct {
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
}
