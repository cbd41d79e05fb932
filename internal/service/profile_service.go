package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
)

// ProfileService manages the location fields on student and teacher profiles.
// Accounts may edit their own profile; administrators may edit any.
type ProfileService struct {
	profiles interfaces.ProfileRepository
	log      logging.Logger
}

func NewProfileService(profiles interfaces.ProfileRepository, log logging.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, log: log.With("component", "profile")}
}

func (s *ProfileService) GetLocation(ctx context.Context, actor *model.Account, kind model.ProfileKind, accountID int64) (*model.Location, error) {
	if err := authorizeProfile(actor, kind, accountID); err != nil {
		return nil, err
	}
	loc, err := s.profiles.GetLocation(ctx, kind, accountID)
	return loc, mapProfileErr(err)
}

func (s *ProfileService) UpdateLocation(ctx context.Context, actor *model.Account, kind model.ProfileKind, accountID int64, loc model.Location) (*model.Location, error) {
	if err := authorizeProfile(actor, kind, accountID); err != nil {
		return nil, err
	}

	clean := model.Location{
		Area:     strings.TrimSpace(loc.Area),
		District: strings.TrimSpace(loc.District),
		Village:  strings.TrimSpace(loc.Village),
	}
	fields := []struct{ name, value string }{
		{"area", clean.Area},
		{"district", clean.District},
		{"village", clean.Village},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > model.MaxLocationLength {
			return nil, validationError(fmt.Sprintf("%s (%s) must be at most %d characters", f.name, model.LocationLabels[f.name], model.MaxLocationLength))
		}
	}

	if err := s.profiles.UpdateLocation(ctx, kind, accountID, clean); err != nil {
		return nil, mapProfileErr(err)
	}
	s.log.Info(ctx, "location updated", "kind", string(kind), "account_id", accountID, "actor_id", actor.ID)
	return &clean, nil
}

func authorizeProfile(actor *model.Account, kind model.ProfileKind, accountID int64) error {
	if !kind.Valid() {
		return validationError(fmt.Sprintf("unknown profile kind %q", kind))
	}
	if actor == nil {
		return ErrForbidden
	}
	if actor.ID != accountID && !actor.Role.IsAdministrative() {
		return ErrForbidden
	}
	return nil
}

func mapProfileErr(err error) error {
	if errors.Is(err, repository.ErrProfileNotFound) {
		return ErrAccountNotFound
	}
	return err
}
