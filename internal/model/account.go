package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
)

// IsAdministrative reports whether the role may manage other accounts.
func (r Role) IsAdministrative() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

type Account struct {
	ID              int64
	Email           string
	PasswordHash    string // bcrypt
	Name            string
	FatherName      string
	Gender          Gender
	Role            Role
	IsActive        bool
	IsStaff         bool
	IsSuperuser     bool
	ApprovalStatus  ApprovalStatus
	RejectionReason string
	Created         time.Time
	LastLogin       *time.Time
}

// CanAuthenticate reports whether the account is allowed to log in at all.
// Disabled accounts and accounts still awaiting (or refused) approval are not.
func (a *Account) CanAuthenticate() bool {
	return a.IsActive && a.ApprovalStatus == StatusApproved
}
