package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/Sahel-Estates/models"
	"gorm.io/gorm"
)

// ContentRepositoryImpl implements ContentRepository for any content section
type ContentRepositoryImpl[T any, PT models.Content[T]] struct {
	*BaseRepository[T, ContentListOptions]
}

// NewContentRepository creates a repository for one content section
func NewContentRepository[T any, PT models.Content[T]](db *gorm.DB) *ContentRepositoryImpl[T, PT] {
	return &ContentRepositoryImpl[T, PT]{
		BaseRepository: NewBaseRepository[T, ContentListOptions](db),
	}
}

func (r *ContentRepositoryImpl[T, PT]) scope(ctx context.Context, onlyActive bool) *gorm.DB {
	query := r.getDB(ctx).Model(new(T))
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	return query
}

// BySlug retrieves an entity by its URL slug
func (r *ContentRepositoryImpl[T, PT]) BySlug(ctx context.Context, slug string, onlyActive bool) (*T, error) {
	var entity T
	err := r.scope(ctx, onlyActive).Where("slug = ?", slug).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s by slug: %w", PT(&entity).ContentSection(), err)
	}
	return &entity, nil
}

// List returns the section in its display order
func (r *ContentRepositoryImpl[T, PT]) List(ctx context.Context, opts ContentListOptions) ([]*T, error) {
	query := r.scope(ctx, opts.OnlyActive).Order(PT(new(T)).DefaultOrder())
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var entities []*T
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", PT(new(T)).ContentSection(), err)
	}
	return entities, nil
}

// Count returns the number of entities in the section
func (r *ContentRepositoryImpl[T, PT]) Count(ctx context.Context, opts ContentListOptions) (int64, error) {
	var count int64
	if err := r.scope(ctx, opts.OnlyActive).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", PT(new(T)).ContentSection(), err)
	}
	return count, nil
}

// NewsRepositoryImpl implements NewsRepository
type NewsRepositoryImpl struct {
	*ContentRepositoryImpl[models.News, *models.News]
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &NewsRepositoryImpl{
		ContentRepositoryImpl: NewContentRepository[models.News](db),
	}
}

// SetPinned pins or unpins a news item
func (r *NewsRepositoryImpl) SetPinned(ctx context.Context, id uint, pinned bool) (bool, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Model(&models.News{}).Where("id = ?", id).Update("is_pinned", pinned)
		if res.Error != nil {
			return fmt.Errorf("failed to update news pin: %w", res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SingletonRepositoryImpl implements SingletonRepository for a single-row table
type SingletonRepositoryImpl[T any, PT models.Singleton[T]] struct {
	db *gorm.DB
}

// NewSingletonRepository creates a repository for a settings table
func NewSingletonRepository[T any, PT models.Singleton[T]](db *gorm.DB) *SingletonRepositoryImpl[T, PT] {
	return &SingletonRepositoryImpl[T, PT]{db: db}
}

func (r *SingletonRepositoryImpl[T, PT]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Get returns the settings row, or an empty value when it was never written
func (r *SingletonRepositoryImpl[T, PT]) Get(ctx context.Context) (*T, error) {
	var entity T
	err := r.getDB(ctx).First(&entity, models.SingletonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			PT(&entity).SetID(models.SingletonID)
			return &entity, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", PT(&entity).ContentSection(), err)
	}
	return &entity, nil
}

// Put inserts or replaces the settings row
func (r *SingletonRepositoryImpl[T, PT]) Put(ctx context.Context, entity *T) error {
	PT(entity).SetID(models.SingletonID)
	if err := r.getDB(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to save %s: %w", PT(entity).ContentSection(), err)
	}
	return nil
}
