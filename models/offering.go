package models

import "time"

// Service is an offering of the company (brokerage, construction, property management...)
type Service struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TitleEn       string    `gorm:"size:255;not null" json:"title_en" validate:"required,max=255"`
	TitleAr       string    `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	DescriptionEn string    `gorm:"type:text;not null;default:''" json:"description_en" validate:"max=2000"`
	DescriptionAr string    `gorm:"type:text;not null;default:''" json:"description_ar" validate:"max=2000"`
	Icon          string    `gorm:"size:100;not null;default:''" json:"icon" validate:"max=100"`
	ImageURL      string    `gorm:"type:text;not null;default:''" json:"image_url" validate:"omitempty,url"`
	ImageKey      string    `gorm:"type:text;not null;default:''" json:"image_key"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

func (s *Service) GetID() uint            { return s.ID }
func (s *Service) SetID(id uint)          { s.ID = id }
func (s *Service) ContentSection() string { return SectionServices }
func (s *Service) DefaultOrder() string   { return sortOrderClause }
func (s *Service) BlobKeys() []string     { return nonEmptyKeys(s.ImageKey) }

// Benefit is a "why choose us" bullet
type Benefit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TitleEn       string    `gorm:"size:255;not null" json:"title_en" validate:"required,max=255"`
	TitleAr       string    `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	DescriptionEn string    `gorm:"type:text;not null;default:''" json:"description_en" validate:"max=2000"`
	DescriptionAr string    `gorm:"type:text;not null;default:''" json:"description_ar" validate:"max=2000"`
	Icon          string    `gorm:"size:100;not null;default:''" json:"icon" validate:"max=100"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Benefit) TableName() string { return "benefits" }

func (b *Benefit) GetID() uint            { return b.ID }
func (b *Benefit) SetID(id uint)          { b.ID = id }
func (b *Benefit) ContentSection() string { return SectionBenefits }
func (b *Benefit) DefaultOrder() string   { return sortOrderClause }
func (b *Benefit) BlobKeys() []string     { return nil }

// Fact is a headline figure such as "250+ units delivered"
type Fact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LabelEn   string    `gorm:"size:255;not null" json:"label_en" validate:"required,max=255"`
	LabelAr   string    `gorm:"size:255;not null;default:''" json:"label_ar" validate:"max=255"`
	Value     string    `gorm:"size:50;not null" json:"value" validate:"required,max=50"`
	Icon      string    `gorm:"size:100;not null;default:''" json:"icon" validate:"max=100"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Fact) TableName() string { return "facts" }

func (f *Fact) GetID() uint            { return f.ID }
func (f *Fact) SetID(id uint)          { f.ID = id }
func (f *Fact) ContentSection() string { return SectionFacts }
func (f *Fact) DefaultOrder() string   { return sortOrderClause }
func (f *Fact) BlobKeys() []string     { return nil }
