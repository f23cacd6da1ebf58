package dto

type UploadResponse struct {
	Key         string `json:"key" example:"projects/2024/05/0b8f3c2e-5a1d-4f7e-9a51-2f6c1d7e8b90.webp"`
	URL         string `json:"url" example:"https://cdn.sahel-estates.com/projects/2024/05/0b8f3c2e-5a1d-4f7e-9a51-2f6c1d7e8b90.webp"`
	ContentType string `json:"content_type" example:"image/webp"`
	SizeBytes   int64  `json:"size_bytes" example:"183442"`
	MediaType   string `json:"media_type" example:"image"`
	Width       int    `json:"width,omitempty" example:"1920"`
	Height      int    `json:"height,omitempty" example:"1080"`
}
