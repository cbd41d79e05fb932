package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
)

// ApprovalService lets administrators accept or refuse student registrations.
type ApprovalService struct {
	accounts interfaces.AccountRepository
	log      logging.Logger
}

func NewApprovalService(accounts interfaces.AccountRepository, log logging.Logger) *ApprovalService {
	return &ApprovalService{accounts: accounts, log: log.With("component", "approval")}
}

// ListPending returns student registrations awaiting a decision, oldest first
func (s *ApprovalService) ListPending(ctx context.Context) ([]*model.Account, error) {
	return s.accounts.ListAccountsByStatus(ctx, model.RoleStudent, model.StatusPending)
}

func (s *ApprovalService) Approve(ctx context.Context, actor *model.Account, id int64) (*model.Account, error) {
	return s.decide(ctx, actor, id, model.StatusApproved, "")
}

// Reject refuses a pending registration. The reason is shown to the student.
func (s *ApprovalService) Reject(ctx context.Context, actor *model.Account, id int64, reason string) (*model.Account, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReason
	}
	return s.decide(ctx, actor, id, model.StatusRejected, reason)
}

func (s *ApprovalService) decide(ctx context.Context, actor *model.Account, id int64, status model.ApprovalStatus, reason string) (*model.Account, error) {
	if actor == nil || !actor.Role.IsAdministrative() {
		return nil, ErrForbidden
	}

	account, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if account.ApprovalStatus != model.StatusPending {
		return nil, ErrNotPending
	}

	// the repository repeats the pending check atomically; a concurrent
	// decision on the same account loses here
	if err := s.accounts.SetApprovalStatus(ctx, id, status, reason); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrNotPending
		case errors.Is(err, repository.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	account.ApprovalStatus = status
	account.RejectionReason = reason

	s.log.Info(ctx, "registration decided", "account_id", id, "status", string(status), "actor_id", actor.ID)
	return account, nil
}
