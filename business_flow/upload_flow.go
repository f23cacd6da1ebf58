package businessflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type uploadKind struct {
	mediaType   string
	contentType string
	maxBytes    int64
}

var uploadKinds = map[string]uploadKind{
	".jpg":  {MediaTypeImage, "image/jpeg", utils.MaxImageUploadBytes},
	".jpeg": {MediaTypeImage, "image/jpeg", utils.MaxImageUploadBytes},
	".png":  {MediaTypeImage, "image/png", utils.MaxImageUploadBytes},
	".webp": {MediaTypeImage, "image/webp", utils.MaxImageUploadBytes},
	".gif":  {MediaTypeImage, "image/gif", utils.MaxImageUploadBytes},
	".mp4":  {MediaTypeVideo, "video/mp4", utils.MaxVideoUploadBytes},
	".webm": {MediaTypeVideo, "video/webm", utils.MaxVideoUploadBytes},
}

// UploadFolders are the key prefixes uploads may be filed under
var UploadFolders = []string{
	models.SectionHeroSlides,
	models.SectionProjects,
	models.SectionNews,
	models.SectionServices,
	models.SectionShowcaseVideo,
	"misc",
}

var storageKeyPattern = regexp.MustCompile(`^([a-z-]+)/\d{4}/\d{2}/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(jpg|jpeg|png|webp|gif|mp4|webm)$`)

// UploadInput is one file received from the admin UI
type UploadInput struct {
	Folder   string
	Filename string
	Size     int64
	Body     io.Reader
}

// UploadFlow stores media referenced by content
type UploadFlow interface {
	Upload(ctx context.Context, actor *models.Admin, in UploadInput, metadata *ClientMetadata) (*dto.UploadResponse, error)
	Delete(ctx context.Context, actor *models.Admin, key string, metadata *ClientMetadata) error
}

// UploadFlowImpl implements UploadFlow
type UploadFlowImpl struct {
	storage services.BlobStorage
	audit   auditRecorder
	logger  *slog.Logger
	now     func() time.Time
}

func NewUploadFlow(storage services.BlobStorage, auditRepo repository.AuditLogRepository, logger *slog.Logger) *UploadFlowImpl {
	return &UploadFlowImpl{
		storage: storage,
		audit:   auditRecorder{repo: auditRepo, logger: logger},
		logger:  logger,
		now:     utils.UTCNow,
	}
}

func (f *UploadFlowImpl) Upload(ctx context.Context, actor *models.Admin, in UploadInput, metadata *ClientMetadata) (*dto.UploadResponse, error) {
	if f.storage == nil {
		return nil, NewBusinessError("STORAGE_NOT_AVAILABLE", "File storage is not configured", ErrStorageNotAvailable)
	}

	folder := strings.ToLower(strings.TrimSpace(in.Folder))
	if folder == "" {
		folder = "misc"
	}
	if !isUploadFolder(folder) {
		return nil, NewBusinessErrorf("UPLOAD_FOLDER_INVALID", "Folder must be one of: %s", ErrInvalidStorageKey, strings.Join(UploadFolders, ", "))
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	kind, ok := uploadKinds[ext]
	if !ok {
		return nil, NewBusinessError("UPLOAD_TYPE_NOT_ALLOWED", "Allowed types: jpg, jpeg, png, webp, gif, mp4, webm", ErrUploadTypeNotAllowed)
	}
	if in.Body == nil || in.Size == 0 {
		return nil, NewBusinessError("UPLOAD_EMPTY", "File is empty", ErrUploadEmpty)
	}
	if in.Size > kind.maxBytes {
		return nil, NewBusinessErrorf("UPLOAD_TOO_LARGE", "File exceeds the %d MB limit", ErrUploadTooLarge, kind.maxBytes>>20)
	}

	var (
		body   io.Reader
		size   int64
		width  int
		height int
	)

	switch kind.mediaType {
	case MediaTypeImage:
		data, err := io.ReadAll(io.LimitReader(in.Body, kind.maxBytes+1))
		if err != nil {
			return nil, NewBusinessError("UPLOAD_READ_FAILED", "Failed to read file", err)
		}
		if len(data) == 0 {
			return nil, NewBusinessError("UPLOAD_EMPTY", "File is empty", ErrUploadEmpty)
		}
		if int64(len(data)) > kind.maxBytes {
			return nil, NewBusinessErrorf("UPLOAD_TOO_LARGE", "File exceeds the %d MB limit", ErrUploadTooLarge, kind.maxBytes>>20)
		}
		if http.DetectContentType(data) != kind.contentType {
			return nil, NewBusinessError("UPLOAD_TYPE_NOT_ALLOWED", "File content does not match its extension", ErrUploadTypeNotAllowed)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, NewBusinessError("UPLOAD_CORRUPT", "Image could not be decoded", ErrUploadCorrupt)
		}
		width, height = cfg.Width, cfg.Height
		body, size = bytes.NewReader(data), int64(len(data))

	case MediaTypeVideo:
		head := make([]byte, 512)
		n, err := io.ReadFull(in.Body, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return nil, NewBusinessError("UPLOAD_READ_FAILED", "Failed to read file", err)
		}
		if n == 0 {
			return nil, NewBusinessError("UPLOAD_EMPTY", "File is empty", ErrUploadEmpty)
		}
		head = head[:n]
		if http.DetectContentType(head) != kind.contentType {
			return nil, NewBusinessError("UPLOAD_TYPE_NOT_ALLOWED", "File content does not match its extension", ErrUploadTypeNotAllowed)
		}
		body, size = io.MultiReader(bytes.NewReader(head), in.Body), in.Size
	}

	key := f.newKey(folder, ext)
	if err := f.storage.Upload(ctx, key, kind.contentType, body, size); err != nil {
		if errors.Is(err, services.ErrStorageDisabled) {
			return nil, NewBusinessError("STORAGE_NOT_AVAILABLE", "File storage is not configured", ErrStorageNotAvailable)
		}
		return nil, NewBusinessError("UPLOAD_FAILED", "Failed to store file", err)
	}

	f.audit.record(ctx, actorID(actor), models.AuditActionContentCreated, "Media uploaded", true, nil, metadata,
		map[string]any{"key": key, "size_bytes": size, "content_type": kind.contentType})

	return &dto.UploadResponse{
		Key:         key,
		URL:         f.storage.PublicURL(key),
		ContentType: kind.contentType,
		SizeBytes:   size,
		MediaType:   kind.mediaType,
		Width:       width,
		Height:      height,
	}, nil
}

func (f *UploadFlowImpl) Delete(ctx context.Context, actor *models.Admin, key string, metadata *ClientMetadata) error {
	if f.storage == nil {
		return NewBusinessError("STORAGE_NOT_AVAILABLE", "File storage is not configured", ErrStorageNotAvailable)
	}
	if !ValidStorageKey(key) {
		return NewBusinessError("INVALID_STORAGE_KEY", "Invalid storage key", ErrInvalidStorageKey)
	}
	if err := f.storage.Delete(ctx, key); err != nil {
		if errors.Is(err, services.ErrStorageDisabled) {
			return NewBusinessError("STORAGE_NOT_AVAILABLE", "File storage is not configured", ErrStorageNotAvailable)
		}
		return NewBusinessError("UPLOAD_DELETE_FAILED", "Failed to delete file", err)
	}
	f.audit.record(ctx, actorID(actor), models.AuditActionContentDeleted, "Media deleted", true, nil, metadata,
		map[string]any{"key": key})
	return nil
}

// newKey builds <folder>/<yyyy>/<mm>/<uuid><ext>
func (f *UploadFlowImpl) newKey(folder, ext string) string {
	now := f.now()
	return fmt.Sprintf("%s/%04d/%02d/%s%s", folder, now.Year(), int(now.Month()), uuid.New().String(), ext)
}

// ValidStorageKey reports whether key has the shape produced by Upload
func ValidStorageKey(key string) bool {
	m := storageKeyPattern.FindStringSubmatch(key)
	return m != nil && isUploadFolder(m[1])
}

func isUploadFolder(folder string) bool {
	for _, f := range UploadFolders {
		if f == folder {
			return true
		}
	}
	return false
}
