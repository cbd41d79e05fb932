package interfaces

import (
	"context"

	"github.com/Stewz00/school-service/internal/model"
)

// AccountRepository defines the account store operations used by the services
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAccountsByStatus(ctx context.Context, role model.Role, status model.ApprovalStatus) ([]*model.Account, error)
	SetApprovalStatus(ctx context.Context, id int64, status model.ApprovalStatus, reason string) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// SessionRepository persists login sessions so tokens can be revoked
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	RevokeSession(ctx context.Context, sessionID string) error
	IsSessionValid(ctx context.Context, sessionID string) (bool, error)
}

// ProfileRepository reads and writes the location fields of student and teacher profiles
type ProfileRepository interface {
	GetLocation(ctx context.Context, kind model.ProfileKind, accountID int64) (*model.Location, error)
	UpdateLocation(ctx context.Context, kind model.ProfileKind, accountID int64, loc model.Location) error
}
