package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Stewz00/school-service/internal/auth"
	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
)

// Defaults for the provisioning command.
const (
	DefaultSuperAdminEmail    = "admin@school.com"
	DefaultSuperAdminPassword = "Admin@123"
	DefaultSuperAdminName     = "Super Admin"
)

// BootstrapService provisions the first privileged account.
type BootstrapService struct {
	accounts interfaces.AccountRepository
	hasher   auth.PasswordHasher
}

func NewBootstrapService(accounts interfaces.AccountRepository, hasher auth.PasswordHasher) *BootstrapService {
	return &BootstrapService{accounts: accounts, hasher: hasher}
}

// CreateSuperAdmin creates an active, approved super admin. It reports false
// and changes nothing when the email is already taken.
func (s *BootstrapService) CreateSuperAdmin(ctx context.Context, email, password, name string) (bool, error) {
	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.accounts.CreateAccount(ctx, &model.Account{
		Email:          email,
		PasswordHash:   hash,
		Name:           name,
		Gender:         model.GenderMale,
		Role:           model.RoleSuperAdmin,
		IsActive:       true,
		IsStaff:        true,
		IsSuperuser:    true,
		ApprovalStatus: model.StatusApproved,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// lost a race with a concurrent run
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
