package businessflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
)

// homeSectionLimit caps how many projects and news items the landing page carries
const homeSectionLimit = 6

// PublicSiteFlow serves active content resolved to one locale
type PublicSiteFlow interface {
	Home(ctx context.Context, locale models.Locale) (*dto.HomePageResponse, error)
	Projects(ctx context.Context, locale models.Locale, req dto.PaginationRequest) (*dto.ListResponse[dto.ProjectView], error)
	ProjectBySlug(ctx context.Context, locale models.Locale, slug string) (*dto.ProjectView, error)
	News(ctx context.Context, locale models.Locale, req dto.PaginationRequest) (*dto.ListResponse[dto.NewsView], error)
	NewsBySlug(ctx context.Context, locale models.Locale, slug string) (*dto.NewsView, error)
}

// SiteRepositories groups the read sides used by the public site
type SiteRepositories struct {
	HeroSlides    repository.ContentRepository[models.HeroSlide]
	Projects      repository.ContentRepository[models.Project]
	News          repository.ContentRepository[models.News]
	Services      repository.ContentRepository[models.Service]
	Benefits      repository.ContentRepository[models.Benefit]
	Facts         repository.ContentRepository[models.Fact]
	ShowcaseVideo repository.SingletonRepository[models.ShowcaseVideo]
	ContactInfo   repository.SingletonRepository[models.ContactInfo]
}

// PublicSiteFlowImpl implements PublicSiteFlow
type PublicSiteFlowImpl struct {
	repos  SiteRepositories
	cache  services.ContentCache
	logger *slog.Logger
}

func NewPublicSiteFlow(repos SiteRepositories, cache services.ContentCache, logger *slog.Logger) *PublicSiteFlowImpl {
	if cache == nil {
		cache = services.NoopContentCache{}
	}
	return &PublicSiteFlowImpl{repos: repos, cache: cache, logger: logger}
}

func (f *PublicSiteFlowImpl) Home(ctx context.Context, locale models.Locale) (*dto.HomePageResponse, error) {
	key := "home:" + string(locale)
	var cached dto.HomePageResponse
	if f.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	active := repository.ContentListOptions{OnlyActive: true}
	fail := func(section string, err error) error {
		return NewBusinessError("SITE_LOAD_FAILED", "Failed to load "+section, err)
	}

	slides, err := f.repos.HeroSlides.List(ctx, active)
	if err != nil {
		return nil, fail(models.SectionHeroSlides, err)
	}
	projects, err := f.repos.Projects.List(ctx, repository.ContentListOptions{OnlyActive: true, Limit: homeSectionLimit})
	if err != nil {
		return nil, fail(models.SectionProjects, err)
	}
	news, err := f.repos.News.List(ctx, repository.ContentListOptions{OnlyActive: true, Limit: homeSectionLimit})
	if err != nil {
		return nil, fail(models.SectionNews, err)
	}
	svcs, err := f.repos.Services.List(ctx, active)
	if err != nil {
		return nil, fail(models.SectionServices, err)
	}
	benefits, err := f.repos.Benefits.List(ctx, active)
	if err != nil {
		return nil, fail(models.SectionBenefits, err)
	}
	facts, err := f.repos.Facts.List(ctx, active)
	if err != nil {
		return nil, fail(models.SectionFacts, err)
	}
	video, err := f.repos.ShowcaseVideo.Get(ctx)
	if err != nil {
		return nil, fail(models.SectionShowcaseVideo, err)
	}
	contact, err := f.repos.ContactInfo.Get(ctx)
	if err != nil {
		return nil, fail(models.SectionContactInfo, err)
	}

	out := &dto.HomePageResponse{
		Locale:        string(locale),
		Direction:     direction(locale),
		HeroSlides:    mapViews(slides, locale, heroSlideView),
		Projects:      mapViews(projects, locale, projectView),
		News:          mapViews(news, locale, newsSummaryView),
		Services:      mapViews(svcs, locale, serviceView),
		Benefits:      mapViews(benefits, locale, benefitView),
		Facts:         mapViews(facts, locale, factView),
		ShowcaseVideo: showcaseVideoView(video, locale),
		ContactInfo:   contactInfoView(contact, locale),
	}
	f.cache.Set(ctx, key, out)
	return out, nil
}

func (f *PublicSiteFlowImpl) Projects(ctx context.Context, locale models.Locale, req dto.PaginationRequest) (*dto.ListResponse[dto.ProjectView], error) {
	return listViews(ctx, f, "projects", f.repos.Projects, locale, req, projectView)
}

func (f *PublicSiteFlowImpl) News(ctx context.Context, locale models.Locale, req dto.PaginationRequest) (*dto.ListResponse[dto.NewsView], error) {
	return listViews(ctx, f, "news", f.repos.News, locale, req, newsSummaryView)
}

func (f *PublicSiteFlowImpl) ProjectBySlug(ctx context.Context, locale models.Locale, slug string) (*dto.ProjectView, error) {
	return viewBySlug(ctx, f, "project", f.repos.Projects, locale, slug, projectView)
}

func (f *PublicSiteFlowImpl) NewsBySlug(ctx context.Context, locale models.Locale, slug string) (*dto.NewsView, error) {
	return viewBySlug(ctx, f, "news-item", f.repos.News, locale, slug, newsView)
}

func listViews[T any, V any](ctx context.Context, f *PublicSiteFlowImpl, name string, repo repository.ContentRepository[T], locale models.Locale, req dto.PaginationRequest, view func(*T, models.Locale) V) (*dto.ListResponse[V], error) {
	page, pageSize, offset := paginate(req)
	key := fmt.Sprintf("%s:%s:%d:%d", name, locale, page, pageSize)

	var cached dto.ListResponse[V]
	if f.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	total, err := repo.Count(ctx, repository.ContentListOptions{OnlyActive: true})
	if err != nil {
		return nil, NewBusinessError("SITE_LOAD_FAILED", "Failed to count "+name, err)
	}
	items, err := repo.List(ctx, repository.ContentListOptions{OnlyActive: true, Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, NewBusinessError("SITE_LOAD_FAILED", "Failed to load "+name, err)
	}

	out := &dto.ListResponse[V]{
		Items:      mapViews(items, locale, view),
		Pagination: paginationInfo(page, pageSize, total),
	}
	f.cache.Set(ctx, key, out)
	return out, nil
}

func viewBySlug[T any, V any](ctx context.Context, f *PublicSiteFlowImpl, name string, repo repository.ContentRepository[T], locale models.Locale, slug string, view func(*T, models.Locale) V) (*V, error) {
	key := fmt.Sprintf("%s:%s:%s", name, locale, slug)

	var cached V
	if f.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	entity, err := repo.BySlug(ctx, slug, true)
	if err != nil {
		return nil, NewBusinessError("SITE_LOAD_FAILED", "Failed to load "+name, err)
	}
	if entity == nil {
		return nil, NewBusinessError("CONTENT_NOT_FOUND", "Item not found", ErrContentNotFound)
	}

	out := view(entity, locale)
	f.cache.Set(ctx, key, out)
	return &out, nil
}

func mapViews[T any, V any](items []*T, locale models.Locale, view func(*T, models.Locale) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item, locale))
	}
	return out
}

func direction(locale models.Locale) string {
	if locale.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

func heroSlideView(s *models.HeroSlide, l models.Locale) dto.HeroSlideView {
	return dto.HeroSlideView{
		ID:       s.ID,
		Title:    l.Pick(s.TitleEn, s.TitleAr),
		Subtitle: l.Pick(s.SubtitleEn, s.SubtitleAr),
		ImageURL: s.ImageURL,
		LinkURL:  s.LinkURL,
	}
}

func projectView(p *models.Project, l models.Locale) dto.ProjectView {
	return dto.ProjectView{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         l.Pick(p.TitleEn, p.TitleAr),
		Description:   l.Pick(p.DescriptionEn, p.DescriptionAr),
		Location:      l.Pick(p.LocationEn, p.LocationAr),
		Status:        string(p.Status),
		CoverImageURL: p.CoverImageURL,
	}
}

// newsSummaryView omits the body for listings
func newsSummaryView(n *models.News, l models.Locale) dto.NewsView {
	v := newsView(n, l)
	v.Body = ""
	return v
}

func newsView(n *models.News, l models.Locale) dto.NewsView {
	return dto.NewsView{
		ID:            n.ID,
		Slug:          n.Slug,
		Title:         l.Pick(n.TitleEn, n.TitleAr),
		Summary:       l.Pick(n.SummaryEn, n.SummaryAr),
		Body:          l.Pick(n.BodyEn, n.BodyAr),
		CoverImageURL: n.CoverImageURL,
		IsPinned:      n.IsPinned,
		PublishedAt:   formatTime(n.PublishedAt),
	}
}

func serviceView(s *models.Service, l models.Locale) dto.ServiceView {
	return dto.ServiceView{
		ID:          s.ID,
		Title:       l.Pick(s.TitleEn, s.TitleAr),
		Description: l.Pick(s.DescriptionEn, s.DescriptionAr),
		Icon:        s.Icon,
		ImageURL:    s.ImageURL,
	}
}

func benefitView(b *models.Benefit, l models.Locale) dto.BenefitView {
	return dto.BenefitView{
		ID:          b.ID,
		Title:       l.Pick(b.TitleEn, b.TitleAr),
		Description: l.Pick(b.DescriptionEn, b.DescriptionAr),
		Icon:        b.Icon,
	}
}

func factView(f *models.Fact, l models.Locale) dto.FactView {
	return dto.FactView{
		ID:    f.ID,
		Label: l.Pick(f.LabelEn, f.LabelAr),
		Value: f.Value,
		Icon:  f.Icon,
	}
}

func showcaseVideoView(v *models.ShowcaseVideo, l models.Locale) dto.ShowcaseVideoView {
	return dto.ShowcaseVideoView{
		Title:     l.Pick(v.TitleEn, v.TitleAr),
		VideoURL:  v.VideoURL,
		PosterURL: v.PosterURL,
	}
}

func contactInfoView(c *models.ContactInfo, l models.Locale) dto.ContactInfoView {
	return dto.ContactInfoView{
		Address:     l.Pick(c.AddressEn, c.AddressAr),
		Phone:       c.Phone,
		WhatsApp:    c.WhatsApp,
		Email:       c.Email,
		MapURL:      c.MapURL,
		OfficeHours: l.Pick(c.OfficeHoursEn, c.OfficeHoursAr),
	}
}
