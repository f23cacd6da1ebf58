package dto

// Views of bilingual content resolved to a single locale for the public site

type HeroSlideView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
}

type ProjectView struct {
	ID            uint   `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	Status        string `json:"status"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

type NewsView struct {
	ID            uint   `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Summary       string `json:"summary,omitempty"`
	Body          string `json:"body,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	IsPinned      bool   `json:"is_pinned"`
	PublishedAt   string `json:"published_at"`
}

type ServiceView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type BenefitView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type FactView struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

type ShowcaseVideoView struct {
	Title     string `json:"title,omitempty"`
	VideoURL  string `json:"video_url,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
}

type ContactInfoView struct {
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	WhatsApp    string `json:"whatsapp,omitempty"`
	Email       string `json:"email,omitempty"`
	MapURL      string `json:"map_url,omitempty"`
	OfficeHours string `json:"office_hours,omitempty"`
}

// HomePageResponse aggregates every landing page section
type HomePageResponse struct {
	Locale        string            `json:"locale" example:"ar"`
	Direction     string            `json:"direction" example:"rtl"`
	HeroSlides    []HeroSlideView   `json:"hero_slides"`
	Projects      []ProjectView     `json:"projects"`
	News          []NewsView        `json:"news"`
	Services      []ServiceView     `json:"services"`
	Benefits      []BenefitView     `json:"benefits"`
	Facts         []FactView        `json:"facts"`
	ShowcaseVideo ShowcaseVideoView `json:"showcase_video"`
	ContactInfo   ContactInfoView   `json:"contact_info"`
}
