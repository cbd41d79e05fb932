package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Stewz00/school-service/internal/database"
	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const accountColumns = `id, email, password_hash, name, father_name, gender, role,
	is_active, is_staff, is_superuser, approval_status, rejection_reason, created_at, last_login`

// AccountRepositoryImpl implements the AccountRepository interface on Postgres
type AccountRepositoryImpl struct {
	db *database.DB
}

var _ interfaces.AccountRepository = (*AccountRepositoryImpl)(nil)

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *database.DB) *AccountRepositoryImpl {
	return &AccountRepositoryImpl{db: db}
}

// CreateAccount inserts the account and, for students and teachers, an empty
// profile row in the same transaction.
func (r *AccountRepositoryImpl) CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := *a
	err = tx.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash, name, father_name, gender, role,
		                       is_active, is_staff, is_superuser, approval_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		a.Email, a.PasswordHash, a.Name, a.FatherName, string(a.Gender), string(a.Role),
		a.IsActive, a.IsStaff, a.IsSuperuser, string(a.ApprovalStatus),
	).Scan(&created.ID, &created.Created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if kind, ok := profileKindFor(a.Role); ok {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (account_id) VALUES ($1)`, kind), created.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAccountByEmail retrieves an account by exact email match
func (r *AccountRepositoryImpl) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// GetAccountByID retrieves an account by primary key
func (r *AccountRepositoryImpl) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// EmailExists reports whether an account already uses email
func (r *AccountRepositoryImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// ListAccountsByStatus returns accounts of a role in the given approval state, oldest first
func (r *AccountRepositoryImpl) ListAccountsByStatus(ctx context.Context, role model.Role, status model.ApprovalStatus) ([]*model.Account, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts
		 WHERE role = $1 AND approval_status = $2
		 ORDER BY created_at, id`,
		string(role), string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SetApprovalStatus records an approval decision. Only a pending account
// transitions; a decided one yields ErrNotPending.
func (r *AccountRepositoryImpl) SetApprovalStatus(ctx context.Context, id int64, status model.ApprovalStatus, reason string) error {
	result, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts
		 SET approval_status = $2, rejection_reason = $3
		 WHERE id = $1 AND approval_status = $4`,
		id, string(status), reason, string(model.StatusPending))
	if err != nil {
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAccountNotFound
	}
	return ErrNotPending
}

// UpdateLastLogin stamps the account's last successful login
func (r *AccountRepositoryImpl) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts SET last_login = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	var gender, role, status string
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.FatherName, &gender, &role,
		&a.IsActive, &a.IsStaff, &a.IsSuperuser, &status, &a.RejectionReason, &a.Created, &a.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Gender = model.Gender(gender)
	a.Role = model.Role(role)
	a.ApprovalStatus = model.ApprovalStatus(status)
	return &a, nil
}

func profileKindFor(role model.Role) (model.ProfileKind, bool) {
	switch role {
	case model.RoleStudent:
		return model.ProfileStudent, true
	case model.RoleTeacher:
		return model.ProfileTeacher, true
	}
	return "", false
}
