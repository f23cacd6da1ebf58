package models

import "time"

// HeroSlide is one frame of the landing page carousel
type HeroSlide struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TitleEn    string    `gorm:"size:255;not null" json:"title_en" validate:"required,max=255"`
	TitleAr    string    `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	SubtitleEn string    `gorm:"type:text;not null;default:''" json:"subtitle_en" validate:"max=1000"`
	SubtitleAr string    `gorm:"type:text;not null;default:''" json:"subtitle_ar" validate:"max=1000"`
	ImageURL   string    `gorm:"type:text;not null" json:"image_url" validate:"required,url"`
	ImageKey   string    `gorm:"type:text;not null;default:''" json:"image_key"`
	LinkURL    string    `gorm:"type:text;not null;default:''" json:"link_url" validate:"omitempty,max=2048"`
	SortOrder  int       `gorm:"not null;default:0;index:idx_hero_slides_sort_order" json:"sort_order"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (HeroSlide) TableName() string { return "hero_slides" }

func (h *HeroSlide) GetID() uint            { return h.ID }
func (h *HeroSlide) SetID(id uint)          { h.ID = id }
func (h *HeroSlide) ContentSection() string { return SectionHeroSlides }
func (h *HeroSlide) DefaultOrder() string   { return sortOrderClause }
func (h *HeroSlide) BlobKeys() []string     { return nonEmptyKeys(h.ImageKey) }
