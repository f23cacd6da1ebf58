package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/Sahel-Estates/app/dto"
	"github.com/amirphl/Sahel-Estates/app/services"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type adminFixture struct {
	flow   *AdminManagementFlowImpl
	admins *memAdminRepo
	audit  *memAuditRepo
	super  *models.Admin
	editor *models.Admin
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	admins := newMemAdminRepo()
	audit := &memAuditRepo{}
	f := &adminFixture{
		flow:   NewAdminManagementFlow(admins, audit, bcrypt.MinCost, 8, discardLogger()),
		admins: admins,
		audit:  audit,
	}
	f.super = admins.add(&models.Admin{Email: "owner@sahel-estates.com", Name: "Owner", Role: models.AdminRoleSuperAdmin})
	f.editor = admins.add(&models.Admin{Email: "editor@sahel-estates.com", Name: "Editor", Role: models.AdminRoleAdmin})
	return f
}

func sessionFor(a *models.Admin) *services.SessionCredential {
	return &services.SessionCredential{UserID: a.UUID, Email: a.Email, Role: a.Role}
}

func TestAdminManagement_RequiresSession(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.flow.ListAdmins(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, IsUnauthorized(err))
}

func TestAdminManagement_VanishedAccountIsUnauthorized(t *testing.T) {
	f := newAdminFixture(t)
	ghost := &services.SessionCredential{UserID: uuid.New(), Email: "gone@sahel-estates.com", Role: models.AdminRoleSuperAdmin}

	_, err := f.flow.ListAdmins(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrAccountVanished)
	assert.True(t, IsUnauthorized(err))

	err = f.flow.DeleteAdmin(context.Background(), ghost, f.editor.UUID, nil)
	assert.ErrorIs(t, err, ErrAccountVanished)
	_, stillThere := f.admins.byID[f.editor.ID]
	assert.True(t, stillThere)
}

func TestAdminManagement_LookupFailureIsNotUnauthorized(t *testing.T) {
	f := newAdminFixture(t)
	f.admins.failGet = errStoreDown

	_, err := f.flow.ListAdmins(context.Background(), sessionFor(f.super))
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, IsUnauthorized(err))
}

func TestAdminManagement_NonSuperAdminIsForbidden(t *testing.T) {
	f := newAdminFixture(t)
	caller := sessionFor(f.editor)
	ctx := context.Background()

	_, err := f.flow.ListAdmins(ctx, caller)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.flow.CreateAdmin(ctx, caller, &dto.CreateAdminRequest{Email: "new@sahel-estates.com", Name: "New", Password: "longenough", Role: "admin"}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.flow.UpdateAdmin(ctx, caller, f.super.UUID, &dto.UpdateAdminRequest{Name: utils.ToPtr("Hijack")}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.flow.DeleteAdmin(ctx, caller, f.super.UUID, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	count, _ := f.admins.Count(ctx, models.AdminFilter{})
	assert.EqualValues(t, 2, count)
	assert.Equal(t, []string{
		models.AuditActionAccessDenied,
		models.AuditActionAccessDenied,
		models.AuditActionAccessDenied,
		models.AuditActionAccessDenied,
	}, f.audit.actions())
}

func TestAdminManagement_PersistedRoleWinsOverSessionClaim(t *testing.T) {
	f := newAdminFixture(t)

	// the session still claims super_admin but the account was demoted
	stale := sessionFor(f.super)
	demoted := *f.super
	demoted.Role = models.AdminRoleAdmin
	require.NoError(t, f.admins.Update(context.Background(), &demoted))

	_, err := f.flow.ListAdmins(context.Background(), stale)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminManagement_ListAdmins(t *testing.T) {
	f := newAdminFixture(t)

	list, err := f.flow.ListAdmins(context.Background(), sessionFor(f.super))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, f.super.UUID.String(), list[0].UUID)
	assert.Equal(t, string(models.AdminRoleAdmin), list[1].Role)
}

func TestAdminManagement_CreateAdmin(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	caller := sessionFor(f.super)

	t.Run("success", func(t *testing.T) {
		out, err := f.flow.CreateAdmin(ctx, caller, &dto.CreateAdminRequest{
			Email:    "  Sales@Sahel-Estates.com ",
			Name:     " Sales ",
			Password: "S3curePassw0rd",
			Role:     "admin",
		}, &ClientMetadata{IPAddress: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, "sales@sahel-estates.com", out.Email)
		assert.Equal(t, "Sales", out.Name)

		stored, _ := f.admins.ByEmail(ctx, "sales@sahel-estates.com")
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("S3curePassw0rd")))
		assert.Contains(t, f.audit.actions(), models.AuditActionAdminCreated)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.flow.CreateAdmin(ctx, caller, &dto.CreateAdminRequest{Email: "EDITOR@sahel-estates.com", Name: "Dup", Password: "longenough", Role: "admin"}, nil)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.flow.CreateAdmin(ctx, caller, &dto.CreateAdminRequest{Email: "x@sahel-estates.com", Name: "X", Password: "longenough", Role: "root"}, nil)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := f.flow.CreateAdmin(ctx, caller, &dto.CreateAdminRequest{Email: "y@sahel-estates.com", Name: "Y", Password: "short", Role: "admin"}, nil)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAdminManagement_UpdateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing to update", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.editor.UUID, &dto.UpdateAdminRequest{}, nil)
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("unknown target", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), uuid.New(), &dto.UpdateAdminRequest{Name: utils.ToPtr("Nobody")}, nil)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("own role change rejected", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.super.UUID, &dto.UpdateAdminRequest{Role: utils.ToPtr("admin")}, nil)
		assert.ErrorIs(t, err, ErrSelfActionRejected)
	})

	t.Run("own name change allowed", func(t *testing.T) {
		f := newAdminFixture(t)
		out, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.super.UUID, &dto.UpdateAdminRequest{
			Name: utils.ToPtr("Chief"),
			Role: utils.ToPtr("super_admin"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Chief", out.Name)
	})

	t.Run("email taken by another account", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.editor.UUID, &dto.UpdateAdminRequest{Email: utils.ToPtr("owner@sahel-estates.com")}, nil)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("blank email rejected", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.editor.UUID, &dto.UpdateAdminRequest{Email: utils.ToPtr("   ")}, nil)
		assert.True(t, IsContentInvalid(err))

		stored, _ := f.admins.ByUUID(ctx, f.editor.UUID)
		assert.Equal(t, f.editor.Email, stored.Email)
		assert.Zero(t, f.admins.updates)
	})

	t.Run("promote and reset password", func(t *testing.T) {
		f := newAdminFixture(t)
		out, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.editor.UUID, &dto.UpdateAdminRequest{
			Role:     utils.ToPtr("super_admin"),
			Password: utils.ToPtr("Fresh-Passw0rd"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, string(models.AdminRoleSuperAdmin), out.Role)

		stored, _ := f.admins.ByUUID(ctx, f.editor.UUID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Fresh-Passw0rd")))
		assert.Contains(t, f.audit.actions(), models.AuditActionAdminUpdated)
	})

	t.Run("short password", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.flow.UpdateAdmin(ctx, sessionFor(f.super), f.editor.UUID, &dto.UpdateAdminRequest{Password: utils.ToPtr("123")}, nil)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAdminManagement_DeleteAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("own account rejected", func(t *testing.T) {
		f := newAdminFixture(t)
		err := f.flow.DeleteAdmin(ctx, sessionFor(f.super), f.super.UUID, nil)
		assert.ErrorIs(t, err, ErrSelfActionRejected)
		assert.True(t, IsSelfActionRejected(err))
	})

	t.Run("unknown target", func(t *testing.T) {
		f := newAdminFixture(t)
		err := f.flow.DeleteAdmin(ctx, sessionFor(f.super), uuid.New(), nil)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("success", func(t *testing.T) {
		f := newAdminFixture(t)
		require.NoError(t, f.flow.DeleteAdmin(ctx, sessionFor(f.super), f.editor.UUID, nil))

		gone, _ := f.admins.ByUUID(ctx, f.editor.UUID)
		assert.Nil(t, gone)
		assert.Equal(t, []string{models.AuditActionAdminDeleted}, f.audit.actions())

		// the deleted account's session no longer resolves
		_, err := f.flow.ListAdmins(ctx, sessionFor(f.editor))
		assert.ErrorIs(t, err, ErrAccountVanished)
	})
}
