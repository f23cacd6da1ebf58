package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/Sahel-Estates/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminSeeder_Create(t *testing.T) {
	ctx := context.Background()
	admins := newMemAdminRepo()
	audit := &memAuditRepo{}
	seeder := NewAdminSeeder(admins, audit, bcrypt.MinCost, 8, discardLogger())

	admin, err := seeder.Create(ctx, SeedAdminInput{Email: "Editor@Sahel-Estates.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleAdmin, admin.Role)
	assert.Equal(t, "editor@sahel-estates.com", admin.Name)
	assert.Equal(t, []string{models.AuditActionAdminCreated}, audit.actions())

	_, err = seeder.Create(ctx, SeedAdminInput{Email: "editor@sahel-estates.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = seeder.Create(ctx, SeedAdminInput{Email: "other@sahel-estates.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = seeder.Create(ctx, SeedAdminInput{Email: "other@sahel-estates.com", Password: "longenough", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAdminSeeder_EnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()
	admins := newMemAdminRepo()
	seeder := NewAdminSeeder(admins, &memAuditRepo{}, bcrypt.MinCost, 8, discardLogger())

	created, err := seeder.EnsureSuperAdmin(ctx, SeedAdminInput{})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = seeder.EnsureSuperAdmin(ctx, SeedAdminInput{Email: "owner@sahel-estates.com", Password: "bootstrap-pass", Name: "Owner"})
	require.NoError(t, err)
	assert.True(t, created)

	owner, _ := admins.ByEmail(ctx, "owner@sahel-estates.com")
	require.NotNil(t, owner)
	assert.True(t, owner.IsSuperAdmin())

	// a second boot with different credentials leaves the existing super admin alone
	created, err = seeder.EnsureSuperAdmin(ctx, SeedAdminInput{Email: "another@sahel-estates.com", Password: "bootstrap-pass"})
	require.NoError(t, err)
	assert.False(t, created)

	list, err := seeder.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
