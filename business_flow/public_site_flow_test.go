package businessflow

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticRepo serves a fixed, already ordered and already active slice
type staticRepo[T any] struct {
	items []*T
	slug  func(*T) string
	lists int
}

func (r *staticRepo[T]) ByID(ctx context.Context, id uint) (*T, error) { return nil, nil }

func (r *staticRepo[T]) BySlug(ctx context.Context, slug string, onlyActive bool) (*T, error) {
	for _, it := range r.items {
		if r.slug != nil && r.slug(it) == slug {
			return it, nil
		}
	}
	return nil, nil
}

func (r *staticRepo[T]) List(ctx context.Context, opts repository.ContentListOptions) ([]*T, error) {
	r.lists++
	out := r.items
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *staticRepo[T]) Count(ctx context.Context, opts repository.ContentListOptions) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *staticRepo[T]) Save(ctx context.Context, entity *T) error   { return nil }
func (r *staticRepo[T]) Update(ctx context.Context, entity *T) error { return nil }
func (r *staticRepo[T]) DeleteByID(ctx context.Context, id uint) (bool, error) {
	return false, nil
}

type staticSingleton[T any] struct{ value T }

func (s *staticSingleton[T]) Get(ctx context.Context) (*T, error) { v := s.value; return &v, nil }
func (s *staticSingleton[T]) Put(ctx context.Context, entity *T) error {
	s.value = *entity
	return nil
}

// mapCache round-trips through JSON like the redis cache does
type mapCache struct {
	entries map[string][]byte
}

func (c *mapCache) Get(ctx context.Context, key string, dst any) bool {
	raw, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *mapCache) Set(ctx context.Context, key string, value any) {
	raw, _ := json.Marshal(value)
	c.entries[key] = raw
}

func (c *mapCache) InvalidateAll(ctx context.Context) { c.entries = map[string][]byte{} }

type siteFixture struct {
	flow     *PublicSiteFlowImpl
	projects *staticRepo[models.Project]
	cache    *mapCache
}

func newSiteFixture() *siteFixture {
	published := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	projects := &staticRepo[models.Project]{
		items: []*models.Project{
			{ID: 1, Slug: "marina-heights", TitleEn: "Marina Heights", TitleAr: "مرتفعات المارينا", LocationEn: "Dubai Marina", Status: models.ProjectStatusOngoing},
			{ID: 2, Slug: "palm-villas", TitleEn: "Palm Villas", Status: models.ProjectStatusCompleted},
		},
		slug: func(p *models.Project) string { return p.Slug },
	}
	news := &staticRepo[models.News]{
		items: []*models.News{
			{ID: 7, Slug: "launch", TitleEn: "Launch", TitleAr: "إطلاق", BodyEn: "Full body", IsPinned: true, PublishedAt: published},
		},
		slug: func(n *models.News) string { return n.Slug },
	}
	cache := &mapCache{entries: map[string][]byte{}}

	flow := NewPublicSiteFlow(SiteRepositories{
		HeroSlides:    &staticRepo[models.HeroSlide]{items: []*models.HeroSlide{{ID: 1, TitleEn: "Live by the sea", ImageURL: "https://cdn.test/h.jpg"}}},
		Projects:      projects,
		News:          news,
		Services:      &staticRepo[models.Service]{},
		Benefits:      &staticRepo[models.Benefit]{},
		Facts:         &staticRepo[models.Fact]{items: []*models.Fact{{ID: 1, LabelEn: "Units delivered", LabelAr: "وحدة مسلمة", Value: "250+"}}},
		ShowcaseVideo: &staticSingleton[models.ShowcaseVideo]{value: models.ShowcaseVideo{TitleEn: "Tour", VideoURL: "https://cdn.test/v.mp4"}},
		ContactInfo:   &staticSingleton[models.ContactInfo]{value: models.ContactInfo{AddressEn: "Dubai", Phone: "+971 4 000 0000"}},
	}, cache, discardLogger())

	return &siteFixture{flow: flow, projects: projects, cache: cache}
}

func TestPublicSiteFlow_HomeLocalizes(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()

	ar, err := f.flow.Home(ctx, models.LocaleArabic)
	require.NoError(t, err)
	assert.Equal(t, "rtl", ar.Direction)
	require.Len(t, ar.Projects, 2)
	assert.Equal(t, "مرتفعات المارينا", ar.Projects[0].Title)
	// empty Arabic fields fall back to English
	assert.Equal(t, "Palm Villas", ar.Projects[1].Title)
	assert.Equal(t, "Dubai Marina", ar.Projects[0].Location)
	assert.Equal(t, "وحدة مسلمة", ar.Facts[0].Label)
	assert.Equal(t, "Dubai", ar.ContactInfo.Address)
	require.Len(t, ar.News, 1)
	assert.Empty(t, ar.News[0].Body)
	assert.NotNil(t, ar.Services)

	en, err := f.flow.Home(ctx, models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, "ltr", en.Direction)
	assert.Equal(t, "Marina Heights", en.Projects[0].Title)
}

func TestPublicSiteFlow_HomeIsCached(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()

	_, err := f.flow.Home(ctx, models.LocaleEnglish)
	require.NoError(t, err)
	_, err = f.flow.Home(ctx, models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, 1, f.projects.lists)

	f.cache.InvalidateAll(ctx)
	_, err = f.flow.Home(ctx, models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, 2, f.projects.lists)
}

func TestPublicSiteFlow_BySlug(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()

	item, err := f.flow.NewsBySlug(ctx, models.LocaleArabic, "launch")
	require.NoError(t, err)
	assert.Equal(t, "إطلاق", item.Title)
	assert.Equal(t, "Full body", item.Body)
	assert.Equal(t, "2025-03-01T08:00:00Z", item.PublishedAt)

	_, err = f.flow.ProjectBySlug(ctx, models.LocaleEnglish, "missing")
	assert.True(t, IsContentNotFound(err))
}

func TestPublicSiteFlow_ProjectsPaginate(t *testing.T) {
	f := newSiteFixture()

	page, err := f.flow.Projects(context.Background(), models.LocaleEnglish, dto.PaginationRequest{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "palm-villas", page.Items[0].Slug)
	assert.EqualValues(t, 2, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
