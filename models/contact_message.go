package models

import "time"

// ContactMessage is an enquiry submitted through the public contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Subject   *string   `gorm:"size:255" json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Locale    Locale    `gorm:"size:5;not null;default:en" json:"locale"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_contact_messages_is_read" json:"is_read"`
	IPAddress *string   `gorm:"size:64" json:"ip_address,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_contact_messages_created_at" json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

// ContactMessageFilter represents filter criteria for contact message queries
type ContactMessageFilter struct {
	ID            *uint
	IsRead        *bool
	Email         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
