package businessflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("store down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memAdminRepo is an in-memory AdminRepository
type memAdminRepo struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]*models.Admin
	failGet error
	updates int
	touches int
	// onTouch runs before TouchLastLogin writes, standing in for a concurrent edit
	onTouch func(r *memAdminRepo)
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{byID: map[uint]*models.Admin{}}
}

func (r *memAdminRepo) add(a *models.Admin) *models.Admin {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	a.Email = models.NormalizeEmail(a.Email)
	cp := *a
	r.byID[a.ID] = &cp
	return a
}

func (r *memAdminRepo) ByID(ctx context.Context, id uint) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAdminRepo) matches(a *models.Admin, f models.AdminFilter) bool {
	if f.ID != nil && a.ID != *f.ID {
		return false
	}
	if f.UUID != nil && a.UUID != *f.UUID {
		return false
	}
	if f.Email != nil && a.Email != *f.Email {
		return false
	}
	if f.Role != nil && a.Role != *f.Role {
		return false
	}
	return true
}

func (r *memAdminRepo) ByFilter(ctx context.Context, filter models.AdminFilter, orderBy string, limit, offset int) ([]*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Admin
	for _, a := range r.byID {
		if r.matches(a, filter) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAdminRepo) Save(ctx context.Context, admin *models.Admin) error {
	if existing, _ := r.ByEmail(ctx, admin.Email); existing != nil {
		return gorm.ErrDuplicatedKey
	}
	r.add(admin)
	return nil
}

func (r *memAdminRepo) Count(ctx context.Context, filter models.AdminFilter) (int64, error) {
	list, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(list)), nil
}

func (r *memAdminRepo) Exists(ctx context.Context, filter models.AdminFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *memAdminRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	list, _ := r.ByFilter(ctx, models.AdminFilter{UUID: &id}, "", 0, 0)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *memAdminRepo) ByEmail(ctx context.Context, email string) (*models.Admin, error) {
	email = models.NormalizeEmail(email)
	list, _ := r.ByFilter(ctx, models.AdminFilter{Email: &email}, "", 0, 0)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *memAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[admin.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.updates++
	cp := *admin
	r.byID[admin.ID] = &cp
	return nil
}

func (r *memAdminRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	if r.onTouch != nil {
		r.onTouch(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.touches++
	a.LastLoginAt = &at
	return nil
}

func (r *memAdminRepo) DeleteByID(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// memAuditRepo records every saved entry
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (r *memAuditRepo) ByID(ctx context.Context, id uint) (*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memAuditRepo) ByFilter(ctx context.Context, filter models.AuditLogFilter, orderBy string, limit, offset int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLog
	for _, e := range r.entries {
		if filter.Action != nil && e.Action != *filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memAuditRepo) Save(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) Count(ctx context.Context, filter models.AuditLogFilter) (int64, error) {
	list, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(list)), nil
}

func (r *memAuditRepo) Exists(ctx context.Context, filter models.AuditLogFilter) (bool, error) {
	n, _ := r.Count(ctx, filter)
	return n > 0, nil
}

func (r *memAuditRepo) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLog
	for _, e := range r.entries {
		if e.AdminID != nil && *e.AdminID == adminID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) ListSecurityEvents(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLog
	for _, e := range r.entries {
		if e.IsSecurityEvent() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}
