package models

import (
	"strings"
)

// Locale selects which language variant of bilingual content is served
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale maps user input to a supported locale, defaulting to English
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	if Locale(s) == LocaleArabic {
		return LocaleArabic
	}
	return LocaleEnglish
}

// Pick returns the variant for the locale, falling back to English when the Arabic text is empty
func (l Locale) Pick(en, ar string) string {
	if l == LocaleArabic && strings.TrimSpace(ar) != "" {
		return ar
	}
	return en
}

// IsRTL reports whether the locale is written right to left
func (l Locale) IsRTL() bool {
	return l == LocaleArabic
}

// Content is implemented by pointers to every admin-editable section entity
type Content[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
	// ContentSection names the section for routing, auditing and cache invalidation
	ContentSection() string
	// DefaultOrder is the ORDER BY clause used when listing the section
	DefaultOrder() string
	// BlobKeys lists the storage objects referenced by the entity
	BlobKeys() []string
}

// Section names
const (
	SectionHeroSlides    = "hero-slides"
	SectionProjects      = "projects"
	SectionNews          = "news"
	SectionServices      = "services"
	SectionBenefits      = "benefits"
	SectionFacts         = "facts"
	SectionShowcaseVideo = "showcase-video"
	SectionContactInfo   = "contact-info"
)

const sortOrderClause = "sort_order ASC, id ASC"

func nonEmptyKeys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
