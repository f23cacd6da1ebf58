package businessflow

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memContactRepo struct {
	nextID uint
	rows   map[uint]models.ContactMessage
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{rows: map[uint]models.ContactMessage{}}
}

func (r *memContactRepo) ByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	if m, ok := r.rows[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *memContactRepo) ByFilter(ctx context.Context, filter models.ContactMessageFilter, orderBy string, limit, offset int) ([]*models.ContactMessage, error) {
	var out []*models.ContactMessage
	for _, m := range r.rows {
		if filter.IsRead != nil && m.IsRead != *filter.IsRead {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memContactRepo) Save(ctx context.Context, m *models.ContactMessage) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Date(2025, 5, 1, 9, 0, int(m.ID), 0, time.UTC)
	r.rows[m.ID] = *m
	return nil
}

func (r *memContactRepo) Count(ctx context.Context, filter models.ContactMessageFilter) (int64, error) {
	list, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(list)), nil
}

func (r *memContactRepo) Exists(ctx context.Context, filter models.ContactMessageFilter) (bool, error) {
	n, _ := r.Count(ctx, filter)
	return n > 0, nil
}

func (r *memContactRepo) MarkRead(ctx context.Context, id uint, read bool) (bool, error) {
	m, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	m.IsRead = read
	r.rows[id] = m
	return true, nil
}

func (r *memContactRepo) DeleteByID(ctx context.Context, id uint) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

// fixedCaptcha accepts exactly one angle for one challenge
type fixedCaptcha struct {
	id    string
	angle float64
}

func (c *fixedCaptcha) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{ID: c.id, MasterImageBase64: "m", ThumbImageBase64: "t"}, nil
}

func (c *fixedCaptcha) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	return challengeID == c.id && userAngle == c.angle
}

func contactRequest() *dto.SubmitContactMessageRequest {
	return &dto.SubmitContactMessageRequest{
		Name:        " Sara Mansour ",
		Email:       "Sara@Example.com",
		Phone:       "+971501234567",
		Message:     "Is a three bedroom unit still available?",
		Locale:      "ar",
		ChallengeID: "challenge-1",
		UserAngle:   128,
	}
}

func TestContactMessageFlow_Submit(t *testing.T) {
	ctx := context.Background()
	repo := newMemContactRepo()
	flow := NewContactMessageFlow(repo, &memAuditRepo{}, &fixedCaptcha{id: "challenge-1", angle: 128}, discardLogger())

	ch, err := flow.InitCaptcha(ctx)
	require.NoError(t, err)
	assert.Equal(t, "challenge-1", ch.ChallengeID)

	out, err := flow.Submit(ctx, contactRequest(), &ClientMetadata{IPAddress: "10.1.1.1"})
	require.NoError(t, err)
	assert.Equal(t, "Sara Mansour", out.Name)
	assert.Equal(t, "sara@example.com", out.Email)
	assert.Equal(t, "ar", out.Locale)
	assert.Nil(t, out.Subject)
	assert.Equal(t, "10.1.1.1", *repo.rows[out.ID].IPAddress)

	bad := contactRequest()
	bad.UserAngle = 10
	_, err = flow.Submit(ctx, bad, nil)
	assert.ErrorIs(t, err, ErrInvalidCaptcha)
	assert.Len(t, repo.rows, 1)
}

func TestContactMessageFlow_WithoutCaptcha(t *testing.T) {
	flow := NewContactMessageFlow(newMemContactRepo(), nil, nil, discardLogger())

	_, err := flow.InitCaptcha(context.Background())
	assert.True(t, IsCaptchaNotAvailable(err))

	req := contactRequest()
	req.ChallengeID = ""
	_, err = flow.Submit(context.Background(), req, nil)
	assert.NoError(t, err)
}

func TestContactMessageFlow_Inbox(t *testing.T) {
	ctx := context.Background()
	repo := newMemContactRepo()
	audit := &memAuditRepo{}
	flow := NewContactMessageFlow(repo, audit, nil, discardLogger())
	actor := &models.Admin{ID: 3}

	for i := 0; i < 3; i++ {
		_, err := flow.Submit(ctx, contactRequest(), nil)
		require.NoError(t, err)
	}

	read, err := flow.MarkRead(ctx, actor, 1, true)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err := flow.List(ctx, &dto.ListContactMessagesRequest{UnreadOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread.Pagination.TotalItems)
	assert.EqualValues(t, 3, unread.Items[0].ID)

	_, err = flow.MarkRead(ctx, actor, 99, true)
	assert.True(t, IsContactMessageNotFound(err))

	require.NoError(t, flow.Delete(ctx, actor, 2, nil))
	assert.True(t, IsContactMessageNotFound(flow.Delete(ctx, actor, 2, nil)))
	assert.Equal(t, []string{models.AuditActionMessageDeleted}, audit.actions())
}

func TestContactMessageFlow_ExportXLSX(t *testing.T) {
	ctx := context.Background()
	repo := newMemContactRepo()
	flow := NewContactMessageFlow(repo, &memAuditRepo{}, nil, discardLogger())

	_, err := flow.Submit(ctx, contactRequest(), nil)
	require.NoError(t, err)

	name, data, err := flow.ExportXLSX(ctx, &models.Admin{ID: 1}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "contact_messages_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Messages")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "email", rows[0][3])
	assert.Equal(t, "sara@example.com", rows[1][3])
	assert.Equal(t, "ar", rows[1][7])
}
