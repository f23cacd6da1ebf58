package models

import (
	"time"

	"github.com/amirphl/Sahel-Estates/utils"
	"gorm.io/gorm"
)

// News is a dated announcement; pinned items are listed before everything else
type News struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Slug          string    `gorm:"size:255;not null;uniqueIndex:uk_news_slug" json:"slug" validate:"required,max=255,slug"`
	TitleEn       string    `gorm:"size:255;not null" json:"title_en" validate:"required,max=255"`
	TitleAr       string    `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	SummaryEn     string    `gorm:"type:text;not null;default:''" json:"summary_en" validate:"max=1000"`
	SummaryAr     string    `gorm:"type:text;not null;default:''" json:"summary_ar" validate:"max=1000"`
	BodyEn        string    `gorm:"type:text;not null;default:''" json:"body_en"`
	BodyAr        string    `gorm:"type:text;not null;default:''" json:"body_ar"`
	CoverImageURL string    `gorm:"type:text;not null;default:''" json:"cover_image_url" validate:"omitempty,url"`
	CoverImageKey string    `gorm:"type:text;not null;default:''" json:"cover_image_key"`
	IsPinned      bool      `gorm:"not null;default:false;index:idx_news_is_pinned" json:"is_pinned"`
	PublishedAt   time.Time `gorm:"not null;index:idx_news_published_at" json:"published_at"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (News) TableName() string { return "news" }

func (n *News) GetID() uint            { return n.ID }
func (n *News) SetID(id uint)          { n.ID = id }
func (n *News) ContentSection() string { return SectionNews }
func (n *News) DefaultOrder() string   { return "is_pinned DESC, published_at DESC, id DESC" }
func (n *News) BlobKeys() []string     { return nonEmptyKeys(n.CoverImageKey) }

// BeforeCreate defaults the publish date to now.
func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.PublishedAt.IsZero() {
		n.PublishedAt = utils.UTCNow()
	}
	return nil
}
