package service

import (
	"context"
	"testing"
	"time"

	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	mutate := func(f func(*RegisterInput)) RegisterInput {
		in := validRegistration("student@school.com")
		f(&in)
		return in
	}

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
	}{
		{name: "valid registration", in: validRegistration("student@school.com")},
		{name: "duplicate email", in: validRegistration("student@school.com"), wantErr: repository.ErrDuplicateEmail},
		{name: "invalid email", in: mutate(func(in *RegisterInput) { in.Email = "invalid-email" }), wantErr: ErrValidation},
		{name: "short password", in: mutate(func(in *RegisterInput) { in.Password, in.PasswordConfirm = "short", "short" }), wantErr: ErrValidation},
		{name: "confirmation mismatch", in: mutate(func(in *RegisterInput) { in.PasswordConfirm = "password124" }), wantErr: ErrValidation},
		{name: "missing father name", in: mutate(func(in *RegisterInput) { in.FatherName = "  " }), wantErr: ErrValidation},
		{name: "bad gender", in: mutate(func(in *RegisterInput) { in.Gender = "other" }), wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := e.auth.Register(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.RoleStudent, a.Role)
			assert.Equal(t, model.StatusPending, a.ApprovalStatus)
			assert.NotEqual(t, tt.in.Password, a.PasswordHash)
		})
	}
}

func TestRegister_NormalizesDomain(t *testing.T) {
	e := newEnv(t)
	a, err := e.auth.Register(context.Background(), validRegistration("  Ali@School.COM "))
	require.NoError(t, err)
	assert.Equal(t, "Ali@school.com", a.Email)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)

	_, err := e.auth.Register(ctx, validRegistration("pending@school.com"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid login", email: "admin@school.com", password: "Admin@123"},
		{name: "wrong password", email: "admin@school.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "teacher1@school.com", password: "anything", wantErr: ErrInvalidCredentials},
		{name: "pending registration", email: "pending@school.com", password: "password123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.auth.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, admin.ID, res.Account.ID)
			assert.NotEmpty(t, res.Tokens.Access)
			assert.NotEmpty(t, res.Tokens.Refresh)
			assert.True(t, res.Tokens.RefreshExpiresAt.After(res.Tokens.AccessExpiresAt))

			claims, err := e.auth.ValidateToken(ctx, res.Tokens.Access)
			require.NoError(t, err)
			assert.Equal(t, model.RoleSuperAdmin, claims.Role)

			stored, err := e.accounts.GetAccountByID(ctx, admin.ID)
			require.NoError(t, err)
			assert.NotNil(t, stored.LastLogin)
		})
	}
}

func TestLogin_FailuresShareOneMessage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)
	e.accounts.SetActive(admin.ID, false)

	_, disabledErr := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	_, wrongErr := e.auth.Login(ctx, "admin@school.com", "wrong")
	_, unknownErr := e.auth.Login(ctx, "nobody@school.com", "Admin@123")

	assert.Equal(t, disabledErr.Error(), wrongErr.Error())
	assert.Equal(t, wrongErr.Error(), unknownErr.Error())
}

func TestValidateToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.superAdmin(t)

	res, err := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type:      TokenAccess,
		SessionID: "s",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Type: TokenAccess, SessionID: "s"}).SignedString([]byte("other"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid token", token: res.Tokens.Access},
		{name: "refresh token is not an access token", token: res.Tokens.Refresh, wantErr: ErrInvalidToken},
		{name: "expired token", token: expiredString, wantErr: ErrTokenExpired},
		{name: "wrong key", token: otherKey, wantErr: ErrInvalidToken},
		{name: "garbage", token: "invalid.token.string", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := e.auth.ValidateToken(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin@school.com", claims.Email)
		})
	}
}

func TestRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)

	res, err := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	require.NoError(t, err)

	access, expires, err := e.auth.Refresh(ctx, res.Tokens.Refresh)
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))
	_, err = e.auth.ValidateToken(ctx, access)
	assert.NoError(t, err)

	_, _, err = e.auth.Refresh(ctx, res.Tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not refresh")

	e.accounts.SetActive(admin.ID, false)
	_, _, err = e.auth.Refresh(ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "deactivated account must not refresh")
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.superAdmin(t)

	res, err := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	require.NoError(t, err)

	require.NoError(t, e.auth.Logout(ctx, res.Tokens.Access))

	_, err = e.auth.ValidateToken(ctx, res.Tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = e.auth.Refresh(ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.ErrorIs(t, e.auth.Logout(ctx, res.Tokens.Access), ErrInvalidToken)
	assert.ErrorIs(t, e.auth.Logout(ctx, "invalid.token.string"), ErrInvalidToken)
}

func TestCurrentAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)

	res, err := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	require.NoError(t, err)
	claims, err := e.auth.ValidateToken(ctx, res.Tokens.Access)
	require.NoError(t, err)

	a, err := e.auth.CurrentAccount(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, a.ID)

	claims.Subject = "9999"
	_, err = e.auth.CurrentAccount(ctx, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims.Subject = "not-a-number"
	_, err = e.auth.CurrentAccount(ctx, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCurrentAccount_DeactivatedLosesAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)

	res, err := e.auth.Login(ctx, "admin@school.com", "Admin@123")
	require.NoError(t, err)
	claims, err := e.auth.ValidateToken(ctx, res.Tokens.Access)
	require.NoError(t, err)

	e.accounts.SetActive(admin.ID, false)

	_, err = e.auth.CurrentAccount(ctx, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = e.auth.Refresh(ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	e.accounts.SetActive(admin.ID, true)
	a, err := e.auth.CurrentAccount(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, a.ID)
}

func TestCreateTeacher(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.superAdmin(t)

	teacher, err := e.auth.CreateTeacher(ctx, admin, validRegistration("teacher1@school.com"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, teacher.Role)
	assert.True(t, teacher.IsStaff)
	assert.True(t, teacher.CanAuthenticate())

	loc, err := e.profiles.GetLocation(ctx, model.ProfileTeacher, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Location{}, *loc)

	_, err = e.auth.Login(ctx, "teacher1@school.com", "password123")
	assert.NoError(t, err)

	_, err = e.auth.CreateTeacher(ctx, teacher, validRegistration("teacher2@school.com"))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.auth.CreateTeacher(ctx, nil, validRegistration("teacher2@school.com"))
	assert.ErrorIs(t, err, ErrForbidden)

	bad := validRegistration("teacher2@school.com")
	bad.PasswordConfirm = "mismatch"
	_, err = e.auth.CreateTeacher(ctx, admin, bad)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.auth.CreateTeacher(ctx, admin, validRegistration("teacher1@school.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}
