package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Stewz00/school-service/internal/auth"
	"github.com/Stewz00/school-service/internal/interfaces"
	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
	"github.com/google/uuid"
)

const minPasswordLength = 8

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type LoginResult struct {
	Account *model.Account
	Tokens  TokenPair
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Name            string
	FatherName      string
	Gender          model.Gender
}

type AuthService struct {
	resolver   *auth.Resolver
	accounts   interfaces.AccountRepository
	sessions   interfaces.SessionRepository
	hasher     auth.PasswordHasher
	tokens     *TokenIssuer
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        logging.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	resolver *auth.Resolver,
	accounts interfaces.AccountRepository,
	sessions interfaces.SessionRepository,
	hasher auth.PasswordHasher,
	cfg TokenConfig,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		resolver:   resolver,
		accounts:   accounts,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     NewTokenIssuer(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		log:        log.With("component", "auth"),
	}
}

// Register creates a student account awaiting approval. It cannot log in
// until an administrator approves it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	account, err := s.newAccount(in)
	if err != nil {
		return nil, err
	}
	account.Role = model.RoleStudent
	account.ApprovalStatus = model.StatusPending

	created, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "student registered", "account_id", created.ID)
	return created, nil
}

// CreateTeacher provisions an approved teacher account with an empty teacher
// profile. Only administrators may call it.
func (s *AuthService) CreateTeacher(ctx context.Context, actor *model.Account, in RegisterInput) (*model.Account, error) {
	if actor == nil || !actor.Role.IsAdministrative() {
		return nil, ErrForbidden
	}
	account, err := s.newAccount(in)
	if err != nil {
		return nil, err
	}
	account.Role = model.RoleTeacher
	account.IsStaff = true
	account.ApprovalStatus = model.StatusApproved

	created, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "teacher created", "account_id", created.ID, "actor_id", actor.ID)
	return created, nil
}

// newAccount validates the input and returns an active account with the
// password hashed. Role and approval state are left to the caller.
func (s *AuthService) newAccount(in RegisterInput) (*model.Account, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	if in.Password != in.PasswordConfirm {
		return nil, validationError("password confirmation does not match")
	}
	name := strings.TrimSpace(in.Name)
	fatherName := strings.TrimSpace(in.FatherName)
	if name == "" || fatherName == "" {
		return nil, validationError("name and father name are required")
	}
	if !in.Gender.Valid() {
		return nil, validationError("gender must be male or female")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &model.Account{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		FatherName:   fatherName,
		Gender:       in.Gender,
		IsActive:     true,
	}, nil
}

// Login authenticates the credentials and opens a session. Every
// authentication failure is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.resolver.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.log.Info(ctx, "login rejected")
		return nil, ErrInvalidCredentials
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	pair, err := s.issuePair(account, session.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "login succeeded", "account_id", account.ID, "session_id", session.ID)
	return &LoginResult{Account: account, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new access token on the same session.
// The account must still be allowed to log in.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.checkToken(ctx, refreshToken, TokenRefresh)
	if err != nil {
		return "", time.Time{}, err
	}

	account, err := s.accountFor(ctx, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	if !s.resolver.Eligible(account) {
		return "", time.Time{}, ErrInvalidToken
	}

	return s.tokens.Issue(account, claims.SessionID, TokenAccess, s.accessTTL)
}

// ValidateToken validates an access token and returns its claims
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (*Claims, error) {
	return s.checkToken(ctx, accessToken, TokenAccess)
}

// CurrentAccount loads the account behind validated claims. An account that
// can no longer log in loses bearer access immediately.
func (s *AuthService) CurrentAccount(ctx context.Context, claims *Claims) (*model.Account, error) {
	account, err := s.accountFor(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Eligible(account) {
		return nil, ErrInvalidToken
	}
	return account, nil
}

// Logout revokes the session behind an access or refresh token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.checkToken(ctx, token, "")
	if err != nil {
		return err
	}
	if err := s.sessions.RevokeSession(ctx, claims.SessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	s.log.Info(ctx, "logout", "session_id", claims.SessionID)
	return nil
}

func (s *AuthService) checkToken(ctx context.Context, token, typ string) (*Claims, error) {
	claims, err := s.tokens.Parse(token, typ)
	if err != nil {
		return nil, err
	}
	valid, err := s.sessions.IsSessionValid(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) accountFor(ctx context.Context, claims *Claims) (*model.Account, error) {
	id, err := claims.AccountID()
	if err != nil {
		return nil, err
	}
	account, err := s.resolver.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidToken
	}
	return account, nil
}

func (s *AuthService) issuePair(account *model.Account, sessionID string) (TokenPair, error) {
	access, accessExp, err := s.tokens.Issue(account, sessionID, TokenAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := s.tokens.Issue(account, sessionID, TokenRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// normalizeEmail trims the address and lowercases its domain part. The local
// part is kept as typed; lookups at login time are exact.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("a valid email address is required")
	}
	at := strings.LastIndex(email, "@")
	return email[:at] + "@" + strings.ToLower(email[at+1:]), nil
}
