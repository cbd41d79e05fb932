package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Stewz00/school-service/internal/database"
	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/jackc/pgx/v4"
)

// ProfileRepositoryImpl implements the ProfileRepository interface on Postgres
type ProfileRepositoryImpl struct {
	db *database.DB
}

var _ interfaces.ProfileRepository = (*ProfileRepositoryImpl)(nil)

// NewProfileRepository creates a new ProfileRepository instance
func NewProfileRepository(db *database.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

// GetLocation reads the location fields of a student or teacher profile
func (r *ProfileRepositoryImpl) GetLocation(ctx context.Context, kind model.ProfileKind, accountID int64) (*model.Location, error) {
	if !kind.Valid() {
		return nil, ErrUnknownProfile
	}

	var loc model.Location
	// kind is one of the two profile table names here.
	err := r.db.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT area, district, village FROM %s WHERE account_id = $1`, kind),
		accountID).Scan(&loc.Area, &loc.District, &loc.Village)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation overwrites the location fields of a student or teacher profile
func (r *ProfileRepositoryImpl) UpdateLocation(ctx context.Context, kind model.ProfileKind, accountID int64, loc model.Location) error {
	if !kind.Valid() {
		return ErrUnknownProfile
	}

	result, err := r.db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET area = $2, district = $3, village = $4 WHERE account_id = $1`, kind),
		accountID, loc.Area, loc.District, loc.Village)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
