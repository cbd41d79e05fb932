package service

import (
	"context"
	"testing"

	"github.com/Stewz00/school-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSuperAdmin_Twice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.bootstrap.CreateSuperAdmin(ctx, DefaultSuperAdminEmail, DefaultSuperAdminPassword, DefaultSuperAdminName)
	require.NoError(t, err)
	assert.True(t, created)

	before, err := e.accounts.GetAccountByEmail(ctx, DefaultSuperAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, before.Role)
	assert.True(t, before.IsSuperuser)
	assert.True(t, before.IsStaff)
	assert.True(t, before.CanAuthenticate())

	created, err = e.bootstrap.CreateSuperAdmin(ctx, DefaultSuperAdminEmail, "Different@456", "Someone Else")
	require.NoError(t, err)
	assert.False(t, created)

	after, err := e.accounts.GetAccountByEmail(ctx, DefaultSuperAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, e.accounts.Count())

	_, err = e.auth.Login(ctx, DefaultSuperAdminEmail, DefaultSuperAdminPassword)
	assert.NoError(t, err)
}
