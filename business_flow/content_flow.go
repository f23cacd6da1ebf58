package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/go-playground/validator/v10"
)

// ContentFlow edits one admin-managed content section
type ContentFlow[T any] interface {
	List(ctx context.Context, req dto.PaginationRequest) (*dto.ListResponse[T], error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, actor *models.Admin, entity *T, metadata *ClientMetadata) (*T, error)
	// Update merges a partial JSON document onto the stored entity
	Update(ctx context.Context, actor *models.Admin, id uint, patch json.RawMessage, metadata *ClientMetadata) (*T, error)
	Delete(ctx context.Context, actor *models.Admin, id uint, metadata *ClientMetadata) error
}

// ContentFlowImpl implements ContentFlow for any section
type ContentFlowImpl[T any, PT models.Content[T]] struct {
	repo      repository.ContentRepository[T]
	validator *validator.Validate
	cache     services.ContentCache
	blobs     blobJanitor
	audit     auditRecorder
	logger    *slog.Logger
}

// NewContentFlow creates the flow for one section
func NewContentFlow[T any, PT models.Content[T]](
	repo repository.ContentRepository[T],
	auditRepo repository.AuditLogRepository,
	validate *validator.Validate,
	cache services.ContentCache,
	storage services.BlobStorage,
	logger *slog.Logger,
) *ContentFlowImpl[T, PT] {
	if cache == nil {
		cache = services.NoopContentCache{}
	}
	return &ContentFlowImpl[T, PT]{
		repo:      repo,
		validator: validate,
		cache:     cache,
		blobs:     blobJanitor{storage: storage, logger: logger},
		audit:     auditRecorder{repo: auditRepo, logger: logger},
		logger:    logger,
	}
}

func (f *ContentFlowImpl[T, PT]) section() string {
	return PT(new(T)).ContentSection()
}

func (f *ContentFlowImpl[T, PT]) List(ctx context.Context, req dto.PaginationRequest) (*dto.ListResponse[T], error) {
	page, pageSize, offset := paginate(req)

	total, err := f.repo.Count(ctx, repository.ContentListOptions{})
	if err != nil {
		return nil, NewBusinessError("CONTENT_LIST_FAILED", "Failed to count "+f.section(), err)
	}
	items, err := f.repo.List(ctx, repository.ContentListOptions{Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, NewBusinessError("CONTENT_LIST_FAILED", "Failed to list "+f.section(), err)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return &dto.ListResponse[T]{
		Items:      out,
		Pagination: paginationInfo(page, pageSize, total),
	}, nil
}

func (f *ContentFlowImpl[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	entity, err := f.repo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CONTENT_LOOKUP_FAILED", "Failed to load "+f.section(), err)
	}
	if entity == nil {
		return nil, NewBusinessError("CONTENT_NOT_FOUND", "Item not found", ErrContentNotFound)
	}
	return entity, nil
}

func (f *ContentFlowImpl[T, PT]) Create(ctx context.Context, actor *models.Admin, entity *T, metadata *ClientMetadata) (*T, error) {
	if entity == nil {
		return nil, NewBusinessError("CONTENT_INVALID", "Request body is required", ErrContentInvalid)
	}
	PT(entity).SetID(0)
	if err := validateContent(f.validator, entity); err != nil {
		return nil, err
	}

	if err := f.repo.Save(ctx, entity); err != nil {
		return nil, f.writeError(err, "CONTENT_CREATE_FAILED", "Failed to create item")
	}

	f.cache.InvalidateAll(ctx)
	f.audit.record(ctx, actorID(actor), models.AuditActionContentCreated, "Content created", true, nil, metadata,
		map[string]any{"section": f.section(), "id": PT(entity).GetID()})
	return entity, nil
}

func (f *ContentFlowImpl[T, PT]) Update(ctx context.Context, actor *models.Admin, id uint, patch json.RawMessage, metadata *ClientMetadata) (*T, error) {
	entity, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := PT(entity).BlobKeys()

	if len(patch) == 0 {
		return nil, NewBusinessError("NOTHING_TO_UPDATE", "At least one field must be provided", ErrNothingToUpdate)
	}
	if err := json.Unmarshal(patch, entity); err != nil {
		return nil, NewBusinessError("CONTENT_INVALID", "Malformed update document", errors.Join(ErrContentInvalid, err))
	}
	PT(entity).SetID(id)
	if err := validateContent(f.validator, entity); err != nil {
		return nil, err
	}

	if err := f.repo.Update(ctx, entity); err != nil {
		return nil, f.writeError(err, "CONTENT_UPDATE_FAILED", "Failed to update item")
	}

	f.blobs.removeOrphans(ctx, before, PT(entity).BlobKeys())
	f.cache.InvalidateAll(ctx)
	f.audit.record(ctx, actorID(actor), models.AuditActionContentUpdated, "Content updated", true, nil, metadata,
		map[string]any{"section": f.section(), "id": id})
	return entity, nil
}

func (f *ContentFlowImpl[T, PT]) Delete(ctx context.Context, actor *models.Admin, id uint, metadata *ClientMetadata) error {
	entity, err := f.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := f.repo.DeleteByID(ctx, id)
	if err != nil {
		return NewBusinessError("CONTENT_DELETE_FAILED", "Failed to delete item", err)
	}
	if !deleted {
		return NewBusinessError("CONTENT_NOT_FOUND", "Item not found", ErrContentNotFound)
	}

	f.blobs.removeOrphans(ctx, PT(entity).BlobKeys(), nil)
	f.cache.InvalidateAll(ctx)
	f.audit.record(ctx, actorID(actor), models.AuditActionContentDeleted, "Content deleted", true, nil, metadata,
		map[string]any{"section": f.section(), "id": id})
	return nil
}

func (f *ContentFlowImpl[T, PT]) writeError(err error, code, message string) error {
	if isUniqueViolation(err) {
		return NewBusinessError("SLUG_ALREADY_EXISTS", "An item with this slug already exists", ErrSlugAlreadyExists)
	}
	return NewBusinessError(code, message, err)
}

// NewsFlow adds pinning to the news section
type NewsFlow interface {
	ContentFlow[models.News]
	SetPinned(ctx context.Context, actor *models.Admin, id uint, pinned bool, metadata *ClientMetadata) (*models.News, error)
}

type NewsFlowImpl struct {
	*ContentFlowImpl[models.News, *models.News]
	newsRepo repository.NewsRepository
}

func NewNewsFlow(
	repo repository.NewsRepository,
	auditRepo repository.AuditLogRepository,
	validate *validator.Validate,
	cache services.ContentCache,
	storage services.BlobStorage,
	logger *slog.Logger,
) *NewsFlowImpl {
	return &NewsFlowImpl{
		ContentFlowImpl: NewContentFlow[models.News](repo, auditRepo, validate, cache, storage, logger),
		newsRepo:        repo,
	}
}

func (f *NewsFlowImpl) SetPinned(ctx context.Context, actor *models.Admin, id uint, pinned bool, metadata *ClientMetadata) (*models.News, error) {
	updated, err := f.newsRepo.SetPinned(ctx, id, pinned)
	if err != nil {
		return nil, NewBusinessError("CONTENT_UPDATE_FAILED", "Failed to update pin", err)
	}
	if !updated {
		return nil, NewBusinessError("CONTENT_NOT_FOUND", "Item not found", ErrContentNotFound)
	}

	f.cache.InvalidateAll(ctx)
	f.audit.record(ctx, actorID(actor), models.AuditActionContentUpdated, "News pin changed", true, nil, metadata,
		map[string]any{"section": models.SectionNews, "id": id, "is_pinned": pinned})
	return f.Get(ctx, id)
}

// SettingsFlow reads and replaces a single-row settings section
type SettingsFlow[T any] interface {
	Get(ctx context.Context) (*T, error)
	Put(ctx context.Context, actor *models.Admin, entity *T, metadata *ClientMetadata) (*T, error)
}

type SettingsFlowImpl[T any, PT models.Singleton[T]] struct {
	repo      repository.SingletonRepository[T]
	validator *validator.Validate
	cache     services.ContentCache
	blobs     blobJanitor
	audit     auditRecorder
}

func NewSettingsFlow[T any, PT models.Singleton[T]](
	repo repository.SingletonRepository[T],
	auditRepo repository.AuditLogRepository,
	validate *validator.Validate,
	cache services.ContentCache,
	storage services.BlobStorage,
	logger *slog.Logger,
) *SettingsFlowImpl[T, PT] {
	if cache == nil {
		cache = services.NoopContentCache{}
	}
	return &SettingsFlowImpl[T, PT]{
		repo:      repo,
		validator: validate,
		cache:     cache,
		blobs:     blobJanitor{storage: storage, logger: logger},
		audit:     auditRecorder{repo: auditRepo, logger: logger},
	}
}

func (f *SettingsFlowImpl[T, PT]) Get(ctx context.Context) (*T, error) {
	entity, err := f.repo.Get(ctx)
	if err != nil {
		return nil, NewBusinessError("SETTINGS_LOOKUP_FAILED", "Failed to load settings", err)
	}
	return entity, nil
}

func (f *SettingsFlowImpl[T, PT]) Put(ctx context.Context, actor *models.Admin, entity *T, metadata *ClientMetadata) (*T, error) {
	if entity == nil {
		return nil, NewBusinessError("CONTENT_INVALID", "Request body is required", ErrContentInvalid)
	}
	if err := validateContent(f.validator, entity); err != nil {
		return nil, err
	}

	current, err := f.Get(ctx)
	if err != nil {
		return nil, err
	}
	before := PT(current).BlobKeys()

	if err := f.repo.Put(ctx, entity); err != nil {
		return nil, NewBusinessError("SETTINGS_UPDATE_FAILED", "Failed to save settings", err)
	}

	f.blobs.removeOrphans(ctx, before, PT(entity).BlobKeys())
	f.cache.InvalidateAll(ctx)
	f.audit.record(ctx, actorID(actor), models.AuditActionSettingsUpdated, "Settings updated", true, nil, metadata,
		map[string]any{"section": PT(entity).ContentSection()})
	return entity, nil
}

func validateContent(v *validator.Validate, entity any) error {
	if v == nil {
		return nil
	}
	if err := v.Struct(entity); err != nil {
		return NewBusinessError("CONTENT_INVALID", "Validation failed", errors.Join(ErrContentInvalid, err))
	}
	return nil
}

func actorID(actor *models.Admin) *uint {
	if actor == nil {
		return nil
	}
	return &actor.ID
}

// blobJanitor removes storage objects no longer referenced by any content
type blobJanitor struct {
	storage services.BlobStorage
	logger  *slog.Logger
}

// removeOrphans deletes keys present in before but not in after; failures are only logged
func (j blobJanitor) removeOrphans(ctx context.Context, before, after []string) {
	if j.storage == nil || len(before) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(after))
	for _, k := range after {
		keep[k] = struct{}{}
	}
	for _, k := range before {
		if _, ok := keep[k]; ok {
			continue
		}
		if err := j.storage.Delete(ctx, k); err != nil && j.logger != nil {
			j.logger.WarnContext(ctx, "failed to delete orphaned object", "key", k, "error", err)
		}
	}
}
