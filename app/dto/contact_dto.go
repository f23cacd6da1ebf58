package dto

type ContactCaptchaResponse struct {
	ChallengeID       string `json:"challenge_id"`
	MasterImageBase64 string `json:"master_image_base64"`
	ThumbImageBase64  string `json:"thumb_image_base64"`
}

// SubmitContactMessageRequest is posted by the public contact form
type SubmitContactMessageRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255" example:"Sara Mansour"`
	Email       string  `json:"email" validate:"required,email,max=255" example:"sara@example.com"`
	Phone       string  `json:"phone" validate:"omitempty,max=50" example:"+971501234567"`
	Subject     string  `json:"subject" validate:"omitempty,max=255" example:"Marina towers availability"`
	Message     string  `json:"message" validate:"required,min=5,max=5000"`
	Locale      string  `json:"locale" validate:"omitempty,oneof=en ar"`
	ChallengeID string  `json:"challenge_id" example:"4d0f5c1e-0b6d-4a3c-9f6b-3b0d2a7a1c11"`
	UserAngle   float64 `json:"user_angle" example:"128"`
}

type ContactMessageDTO struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Subject   *string `json:"subject,omitempty"`
	Message   string  `json:"message"`
	Locale    string  `json:"locale"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

// ListContactMessagesRequest filters the admin inbox
type ListContactMessagesRequest struct {
	PaginationRequest
	UnreadOnly bool `query:"unread_only"`
}

// MarkContactMessageRequest sets the read flag
type MarkContactMessageRequest struct {
	Read *bool `json:"read" validate:"required"`
}
