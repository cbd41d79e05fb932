package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Stewz00/school-service/internal/database"
	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/jackc/pgx/v4"
)

// SessionRepositoryImpl implements the SessionRepository interface on Postgres
type SessionRepositoryImpl struct {
	db *database.DB
}

var _ interfaces.SessionRepository = (*SessionRepositoryImpl)(nil)

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *database.DB) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{db: db}
}

// CreateSession creates a new session for an account
func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, s *model.Session) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, account_id, expires_at)
		 VALUES ($1, $2, $3)`,
		s.ID, s.AccountID, s.ExpiresAt)
	return err
}

// RevokeSession marks a session as revoked
func (r *SessionRepositoryImpl) RevokeSession(ctx context.Context, sessionID string) error {
	result, err := r.db.Pool.Exec(ctx,
		`UPDATE sessions SET is_revoked = true WHERE id = $1`, sessionID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// IsSessionValid checks if a session exists, is not revoked and has not expired
func (r *SessionRepositoryImpl) IsSessionValid(ctx context.Context, sessionID string) (bool, error) {
	var isRevoked bool
	var expiresAt time.Time

	err := r.db.Pool.QueryRow(ctx,
		`SELECT is_revoked, expires_at FROM sessions WHERE id = $1`,
		sessionID).Scan(&isRevoked, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return !isRevoked && time.Now().Before(expiresAt), nil
}
