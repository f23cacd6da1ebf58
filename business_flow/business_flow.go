package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"gorm.io/gorm"
)

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// auditRecorder writes audit entries; failures are logged and never fail the caller
type auditRecorder struct {
	repo   repository.AuditLogRepository
	logger *slog.Logger
}

func (a auditRecorder) record(ctx context.Context, adminID *uint, action, description string, success bool, errMsg *string, metadata *ClientMetadata, extra map[string]any) {
	if a.repo == nil {
		return
	}

	entry := &models.AuditLog{
		AdminID:      adminID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		ErrorMessage: errMsg,
	}
	if metadata != nil {
		entry.IPAddress = utils.StrPtrOrNil(metadata.IPAddress)
		entry.UserAgent = utils.StrPtrOrNil(metadata.UserAgent)
		entry.RequestID = utils.StrPtrOrNil(metadata.RequestID)
	}
	if entry.RequestID == nil {
		if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok {
			entry.RequestID = utils.StrPtrOrNil(requestID)
		}
	}
	if len(extra) > 0 {
		if raw, err := json.Marshal(extra); err == nil {
			entry.Metadata = raw
		}
	}

	if err := a.repo.Save(ctx, entry); err != nil && a.logger != nil {
		a.logger.ErrorContext(ctx, "failed to write audit log", "action", action, "error", err)
	}
}

// isUniqueViolation reports whether err is a unique constraint violation.
// The gorm connection must be opened with TranslateError enabled.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToAdminDTO converts an admin model to its API representation
func ToAdminDTO(admin models.Admin) dto.AdminDTO {
	out := dto.AdminDTO{
		ID:        admin.ID,
		UUID:      admin.UUID.String(),
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      string(admin.Role),
		CreatedAt: formatTime(admin.CreatedAt),
	}
	if admin.LastLoginAt != nil {
		out.LastLoginAt = utils.ToPtr(formatTime(*admin.LastLoginAt))
	}
	return out
}

// ToContactMessageDTO converts a contact message model to its API representation
func ToContactMessageDTO(m models.ContactMessage) dto.ContactMessageDTO {
	return dto.ContactMessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Locale:    string(m.Locale),
		IsRead:    m.IsRead,
		CreatedAt: formatTime(m.CreatedAt),
	}
}

// paginate normalizes paging input and returns limit and offset
func paginate(req dto.PaginationRequest) (page, pageSize, offset int) {
	page = req.Page
	if page < 1 {
		page = 1
	}
	pageSize = req.PageSize
	if pageSize < 1 {
		pageSize = utils.DefaultPageSize
	}
	if pageSize > utils.MaxPageSize {
		pageSize = utils.MaxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

func paginationInfo(page, pageSize int, total int64) dto.PaginationInfo {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return dto.PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
