package models

import "time"

// ProjectStatus is the construction stage of a development
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "planned"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusOngoing, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

// Project is a real-estate development shown in the portfolio
type Project struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Slug          string        `gorm:"size:255;not null;uniqueIndex:uk_projects_slug" json:"slug" validate:"required,max=255,slug"`
	TitleEn       string        `gorm:"size:255;not null" json:"title_en" validate:"required,max=255"`
	TitleAr       string        `gorm:"size:255;not null;default:''" json:"title_ar" validate:"max=255"`
	DescriptionEn string        `gorm:"type:text;not null;default:''" json:"description_en"`
	DescriptionAr string        `gorm:"type:text;not null;default:''" json:"description_ar"`
	LocationEn    string        `gorm:"size:255;not null;default:''" json:"location_en" validate:"max=255"`
	LocationAr    string        `gorm:"size:255;not null;default:''" json:"location_ar" validate:"max=255"`
	Status        ProjectStatus `gorm:"size:20;not null;default:planned;index:idx_projects_status" json:"status" validate:"required,oneof=planned ongoing completed"`
	CoverImageURL string        `gorm:"type:text;not null;default:''" json:"cover_image_url" validate:"omitempty,url"`
	CoverImageKey string        `gorm:"type:text;not null;default:''" json:"cover_image_key"`
	SortOrder     int           `gorm:"not null;default:0;index:idx_projects_sort_order" json:"sort_order"`
	IsActive      *bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) GetID() uint            { return p.ID }
func (p *Project) SetID(id uint)          { p.ID = id }
func (p *Project) ContentSection() string { return SectionProjects }
func (p *Project) DefaultOrder() string   { return sortOrderClause }
func (p *Project) BlobKeys() []string     { return nonEmptyKeys(p.CoverImageKey) }
