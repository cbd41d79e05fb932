package service

import (
	"context"
	"testing"
	"time"

	"github.com/Stewz00/school-service/internal/auth"
	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	db        *test.MockDB
	accounts  *test.MockAccountRepository
	sessions  *test.MockSessionRepository
	profiles  *test.MockProfileRepository
	hasher    *auth.BcryptHasher
	auth      *AuthService
	approvals *ApprovalService
	bootstrap *BootstrapService
	profile   *ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	db := test.NewMockDB()
	e := &env{
		db:       db,
		accounts: test.NewMockAccountRepository(db),
		sessions: test.NewMockSessionRepository(db),
		profiles: test.NewMockProfileRepository(db),
		hasher:   hasher,
	}
	log := logging.Discard()
	resolver := auth.NewResolver(e.accounts, hasher)
	e.auth = NewAuthService(resolver, e.accounts, e.sessions, hasher, TokenConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}, log)
	e.approvals = NewApprovalService(e.accounts, log)
	e.bootstrap = NewBootstrapService(e.accounts, hasher)
	e.profile = NewProfileService(e.profiles, log)
	return e
}

func (e *env) superAdmin(t *testing.T) *model.Account {
	t.Helper()
	ctx := context.Background()
	_, err := e.bootstrap.CreateSuperAdmin(ctx, DefaultSuperAdminEmail, DefaultSuperAdminPassword, DefaultSuperAdminName)
	require.NoError(t, err)
	a, err := e.accounts.GetAccountByEmail(ctx, DefaultSuperAdminEmail)
	require.NoError(t, err)
	return a
}

func validRegistration(email string) RegisterInput {
	return RegisterInput{
		Email:           email,
		Password:        "password123",
		PasswordConfirm: "password123",
		Name:            "Ahmad",
		FatherName:      "Karim",
		Gender:          model.GenderMale,
	}
}
