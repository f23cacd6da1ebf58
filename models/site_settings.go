package models

import "time"

// SingletonID is the primary key of single-row settings tables
const SingletonID uint = 1

// Singleton is implemented by pointers to single-row settings entities
type Singleton[T any] interface {
	*T
	SetID(id uint)
	ContentSection() string
	BlobKeys() []string
}

// ShowcaseVideo is the promotional video block on the landing page
type ShowcaseVideo struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	TitleEn   string    `gorm:"size:255;not null;default:''" json:"title_en" validate:"max=255"`
	TitleAr   string    `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	VideoURL  string    `gorm:"type:text;not null;default:''" json:"video_url" validate:"omitempty,url"`
	VideoKey  string    `gorm:"type:text;not null;default:''" json:"video_key"`
	PosterURL string    `gorm:"type:text;not null;default:''" json:"poster_url" validate:"omitempty,url"`
	PosterKey string    `gorm:"type:text;not null;default:''" json:"poster_key"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ShowcaseVideo) TableName() string { return "showcase_video" }

func (v *ShowcaseVideo) SetID(id uint)          { v.ID = id }
func (v *ShowcaseVideo) ContentSection() string { return SectionShowcaseVideo }
func (v *ShowcaseVideo) BlobKeys() []string     { return nonEmptyKeys(v.VideoKey, v.PosterKey) }

// ContactInfo holds the company's public contact channels
type ContactInfo struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	AddressEn     string    `gorm:"type:text;not null;default:''" json:"address_en" validate:"max=1000"`
	AddressAr     string    `gorm:"type:text;not null;default:''" json:"address_ar" validate:"max=1000"`
	Phone         string    `gorm:"size:50;not null;default:''" json:"phone" validate:"max=50"`
	WhatsApp      string    `gorm:"size:50;not null;default:''" json:"whatsapp" validate:"max=50"`
	Email         string    `gorm:"size:255;not null;default:''" json:"email" validate:"omitempty,email"`
	MapURL        string    `gorm:"type:text;not null;default:''" json:"map_url" validate:"omitempty,url"`
	OfficeHoursEn string    `gorm:"size:255;not null;default:''" json:"office_hours_en" validate:"max=255"`
	OfficeHoursAr string    `gorm:"size:255;not null;default:''" json:"office_hours_ar" validate:"max=255"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ContactInfo) TableName() string { return "contact_info" }

func (c *ContactInfo) SetID(id uint)          { c.ID = id }
func (c *ContactInfo) ContentSection() string { return SectionContactInfo }
func (c *ContactInfo) BlobKeys() []string     { return nil }
