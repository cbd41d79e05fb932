package test

import (
	"context"
	"sync"
	"time"

	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
)

// MockDB is an in-memory stand-in for the Postgres schema
type MockDB struct {
	mu        sync.Mutex
	nextID    int64
	accounts  map[int64]*model.Account
	sessions  map[string]*model.Session
	locations map[model.ProfileKind]map[int64]model.Location

	// Err, when set, is returned by every repository call.
	Err error
}

func NewMockDB() *MockDB {
	return &MockDB{
		accounts: make(map[int64]*model.Account),
		sessions: make(map[string]*model.Session),
		locations: map[model.ProfileKind]map[int64]model.Location{
			model.ProfileStudent: {},
			model.ProfileTeacher: {},
		},
	}
}

// MockAccountRepository implements interfaces.AccountRepository
type MockAccountRepository struct {
	db *MockDB
}

var _ interfaces.AccountRepository = (*MockAccountRepository)(nil)

func NewMockAccountRepository(db *MockDB) *MockAccountRepository {
	return &MockAccountRepository{db: db}
}

// CreateAccount stores a copy of the account and its empty profile row
func (r *MockAccountRepository) CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}

	for _, existing := range r.db.accounts {
		if existing.Email == a.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}

	r.db.nextID++
	stored := *a
	stored.ID = r.db.nextID
	stored.Created = time.Now()
	r.db.accounts[stored.ID] = &stored

	switch a.Role {
	case model.RoleStudent:
		r.db.locations[model.ProfileStudent][stored.ID] = model.Location{}
	case model.RoleTeacher:
		r.db.locations[model.ProfileTeacher][stored.ID] = model.Location{}
	}

	out := stored
	return &out, nil
}

func (r *MockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}

	for _, a := range r.db.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *MockAccountRepository) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}

	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

func (r *MockAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetAccountByEmail(ctx, email)
	if err == repository.ErrAccountNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *MockAccountRepository) ListAccountsByStatus(ctx context.Context, role model.Role, status model.ApprovalStatus) ([]*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}

	out := []*model.Account{}
	for id := int64(1); id <= r.db.nextID; id++ {
		a, ok := r.db.accounts[id]
		if ok && a.Role == role && a.ApprovalStatus == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockAccountRepository) SetApprovalStatus(ctx context.Context, id int64, status model.ApprovalStatus, reason string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}

	a, ok := r.db.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	if a.ApprovalStatus != model.StatusPending {
		return repository.ErrNotPending
	}
	a.ApprovalStatus = status
	a.RejectionReason = reason
	return nil
}

func (r *MockAccountRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}

	if a, ok := r.db.accounts[id]; ok {
		now := time.Now()
		a.LastLogin = &now
	}
	return nil
}

// SetActive flips the active flag, standing in for an admin deactivation flow.
func (r *MockAccountRepository) SetActive(id int64, active bool) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if a, ok := r.db.accounts[id]; ok {
		a.IsActive = active
	}
}

// Count returns the number of stored accounts.
func (r *MockAccountRepository) Count() int {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.accounts)
}

// MockSessionRepository implements interfaces.SessionRepository
type MockSessionRepository struct {
	db *MockDB
}

var _ interfaces.SessionRepository = (*MockSessionRepository)(nil)

func NewMockSessionRepository(db *MockDB) *MockSessionRepository {
	return &MockSessionRepository{db: db}
}

func (r *MockSessionRepository) CreateSession(ctx context.Context, s *model.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}

	stored := *s
	stored.Created = time.Now()
	r.db.sessions[s.ID] = &stored
	return nil
}

func (r *MockSessionRepository) RevokeSession(ctx context.Context, sessionID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}

	s, ok := r.db.sessions[sessionID]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.Revoked = true
	return nil
}

func (r *MockSessionRepository) IsSessionValid(ctx context.Context, sessionID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return false, r.db.Err
	}

	s, ok := r.db.sessions[sessionID]
	if !ok {
		return false, nil
	}
	return !s.Revoked && time.Now().Before(s.ExpiresAt), nil
}

// MockProfileRepository implements interfaces.ProfileRepository
type MockProfileRepository struct {
	db *MockDB
}

var _ interfaces.ProfileRepository = (*MockProfileRepository)(nil)

func NewMockProfileRepository(db *MockDB) *MockProfileRepository {
	return &MockProfileRepository{db: db}
}

func (r *MockProfileRepository) GetLocation(ctx context.Context, kind model.ProfileKind, accountID int64) (*model.Location, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return nil, r.db.Err
	}

	rows, ok := r.db.locations[kind]
	if !ok {
		return nil, repository.ErrUnknownProfile
	}
	loc, ok := rows[accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return &loc, nil
}

func (r *MockProfileRepository) UpdateLocation(ctx context.Context, kind model.ProfileKind, accountID int64, loc model.Location) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.Err != nil {
		return r.db.Err
	}

	rows, ok := r.db.locations[kind]
	if !ok {
		return repository.ErrUnknownProfile
	}
	if _, ok := rows[accountID]; !ok {
		return repository.ErrProfileNotFound
	}
	rows[accountID] = loc
	return nil
}
