// Package auth resolves login credentials to accounts.
//
// Every failure (unknown email, wrong password, account not allowed to log
// in) yields the same nil result, and the unknown-email path still pays for a
// password verification, so callers and timing observers cannot tell the
// causes apart. Only data-store errors are returned as errors.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
)

// Resolver authenticates email/password pairs against an account store.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	accounts interfaces.AccountRepository
	hasher   PasswordHasher
	eligible func(*model.Account) bool
}

type Option func(*Resolver)

// WithStaffOnly additionally requires the staff flag to log in.
func WithStaffOnly() Option {
	return func(r *Resolver) {
		base := r.eligible
		r.eligible = func(a *model.Account) bool {
			return base(a) && a.IsStaff
		}
	}
}

func NewResolver(accounts interfaces.AccountRepository, hasher PasswordHasher, opts ...Option) *Resolver {
	r := &Resolver{
		accounts: accounts,
		hasher:   hasher,
		eligible: (*model.Account).CanAuthenticate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authenticate returns the account identified by email when password matches
// and the account may log in, and nil otherwise.
func (r *Resolver) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := r.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		r.hasher.VerifyDummy(password)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if r.hasher.Verify(account.PasswordHash, password) && r.eligible(account) {
		return account, nil
	}
	return nil, nil
}

// GetAccount returns the account with the given id, or nil if there is none.
// It restores the account behind an already established session.
func (r *Resolver) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	account, err := r.accounts.GetAccountByID(ctx, id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return account, nil
}

// Eligible reports whether the account passes the resolver's login policy.
func (r *Resolver) Eligible(a *model.Account) bool {
	return r.eligible(a)
}
