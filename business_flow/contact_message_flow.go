package businessflow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/xuri/excelize/v2"
)

// ContactMessageFlow handles the public contact form and the admin inbox
type ContactMessageFlow interface {
	InitCaptcha(ctx context.Context) (*dto.ContactCaptchaResponse, error)
	Submit(ctx context.Context, req *dto.SubmitContactMessageRequest, metadata *ClientMetadata) (*dto.ContactMessageDTO, error)
	List(ctx context.Context, req *dto.ListContactMessagesRequest) (*dto.ListResponse[dto.ContactMessageDTO], error)
	MarkRead(ctx context.Context, actor *models.Admin, id uint, read bool) (*dto.ContactMessageDTO, error)
	Delete(ctx context.Context, actor *models.Admin, id uint, metadata *ClientMetadata) error
	// ExportXLSX returns the whole inbox as a spreadsheet
	ExportXLSX(ctx context.Context, actor *models.Admin, metadata *ClientMetadata) (filename string, data []byte, err error)
}

// ContactMessageFlowImpl implements ContactMessageFlow
type ContactMessageFlowImpl struct {
	repo    repository.ContactMessageRepository
	captcha services.CaptchaService
	audit   auditRecorder
	logger  *slog.Logger
}

// NewContactMessageFlow creates the flow. A nil captcha service disables the challenge.
func NewContactMessageFlow(repo repository.ContactMessageRepository, auditRepo repository.AuditLogRepository, captcha services.CaptchaService, logger *slog.Logger) *ContactMessageFlowImpl {
	return &ContactMessageFlowImpl{
		repo:    repo,
		captcha: captcha,
		audit:   auditRecorder{repo: auditRepo, logger: logger},
		logger:  logger,
	}
}

func (f *ContactMessageFlowImpl) InitCaptcha(ctx context.Context) (*dto.ContactCaptchaResponse, error) {
	if f.captcha == nil {
		return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha is disabled", ErrCaptchaNotAvailable)
	}
	ch, err := f.captcha.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_INIT_FAILED", "Failed to generate captcha", err)
	}
	return &dto.ContactCaptchaResponse{
		ChallengeID:       ch.ID,
		MasterImageBase64: ch.MasterImageBase64,
		ThumbImageBase64:  ch.ThumbImageBase64,
	}, nil
}

func (f *ContactMessageFlowImpl) Submit(ctx context.Context, req *dto.SubmitContactMessageRequest, metadata *ClientMetadata) (*dto.ContactMessageDTO, error) {
	if f.captcha != nil && !f.captcha.VerifyRotate(ctx, req.ChallengeID, req.UserAngle) {
		return nil, NewBusinessError("INVALID_CAPTCHA", "Captcha verification failed", ErrInvalidCaptcha)
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   models.NormalizeEmail(req.Email),
		Phone:   utils.StrPtrOrNil(req.Phone),
		Subject: utils.StrPtrOrNil(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Locale:  models.ParseLocale(req.Locale),
	}
	if metadata != nil {
		msg.IPAddress = utils.StrPtrOrNil(metadata.IPAddress)
	}

	if err := f.repo.Save(ctx, msg); err != nil {
		return nil, NewBusinessError("CONTACT_SUBMIT_FAILED", "Failed to save message", err)
	}
	f.logger.InfoContext(ctx, "contact message received", "id", msg.ID, "locale", msg.Locale)

	out := ToContactMessageDTO(*msg)
	return &out, nil
}

func (f *ContactMessageFlowImpl) List(ctx context.Context, req *dto.ListContactMessagesRequest) (*dto.ListResponse[dto.ContactMessageDTO], error) {
	page, pageSize, offset := paginate(req.PaginationRequest)

	filter := models.ContactMessageFilter{}
	if req.UnreadOnly {
		filter.IsRead = utils.ToPtr(false)
	}

	total, err := f.repo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LIST_FAILED", "Failed to count messages", err)
	}
	rows, err := f.repo.ByFilter(ctx, filter, "created_at DESC, id DESC", pageSize, offset)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LIST_FAILED", "Failed to list messages", err)
	}

	items := make([]dto.ContactMessageDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToContactMessageDTO(*r))
	}
	return &dto.ListResponse[dto.ContactMessageDTO]{
		Items:      items,
		Pagination: paginationInfo(page, pageSize, total),
	}, nil
}

func (f *ContactMessageFlowImpl) MarkRead(ctx context.Context, actor *models.Admin, id uint, read bool) (*dto.ContactMessageDTO, error) {
	updated, err := f.repo.MarkRead(ctx, id, read)
	if err != nil {
		return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Failed to update message", err)
	}
	if !updated {
		return nil, NewBusinessError("CONTACT_MESSAGE_NOT_FOUND", "Message not found", ErrContactMessageNotFound)
	}
	msg, err := f.repo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to load message", err)
	}
	if msg == nil {
		return nil, NewBusinessError("CONTACT_MESSAGE_NOT_FOUND", "Message not found", ErrContactMessageNotFound)
	}
	out := ToContactMessageDTO(*msg)
	return &out, nil
}

func (f *ContactMessageFlowImpl) Delete(ctx context.Context, actor *models.Admin, id uint, metadata *ClientMetadata) error {
	deleted, err := f.repo.DeleteByID(ctx, id)
	if err != nil {
		return NewBusinessError("CONTACT_DELETE_FAILED", "Failed to delete message", err)
	}
	if !deleted {
		return NewBusinessError("CONTACT_MESSAGE_NOT_FOUND", "Message not found", ErrContactMessageNotFound)
	}
	f.audit.record(ctx, actorID(actor), models.AuditActionMessageDeleted, "Contact message deleted", true, nil, metadata,
		map[string]any{"message_id": id})
	return nil
}

func (f *ContactMessageFlowImpl) ExportXLSX(ctx context.Context, actor *models.Admin, metadata *ClientMetadata) (string, []byte, error) {
	rows, err := f.repo.ByFilter(ctx, models.ContactMessageFilter{}, "created_at DESC, id DESC", 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("CONTACT_LIST_FAILED", "Failed to list messages", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Messages"
	if err := xl.SetSheetName(xl.GetSheetName(0), sheet); err != nil {
		return "", nil, NewBusinessError("EXPORT_GENERATION_FAILED", "Failed to build spreadsheet", ErrExportGenerationError)
	}

	header := []string{"id", "created_at", "name", "email", "phone", "subject", "message", "locale", "read"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.Name,
			r.Email,
			derefString(r.Phone),
			derefString(r.Subject),
			r.Message,
			string(r.Locale),
			strconv.FormatBool(r.IsRead),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cell, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXPORT_GENERATION_FAILED", "Failed to write spreadsheet", ErrExportGenerationError)
	}

	f.audit.record(ctx, actorID(actor), models.AuditActionMessagesExported, "Contact messages exported", true, nil, metadata,
		map[string]any{"rows": len(rows)})

	filename := "contact_messages_" + utils.UTCNow().Format("20060102") + ".xlsx"
	return filename, buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
