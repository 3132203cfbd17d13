package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles an identity can hold. The role is derived from the profile variant.
const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"
)

// EditableUserInfo is part of user that owner can edit
type EditableUserInfo struct {
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
}

// User is the identity record. Exactly one of Employer or Candidate is set
// for employer and candidate roles, neither for admins.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username    string    `gorm:"type:text;uniqueIndex;not null;<-:create" json:"username"`
	Email       *string   `gorm:"type:text;uniqueIndex;<-:create" json:"email"`
	Password    string    `gorm:"type:text" json:"-"`
	Role        string    `gorm:"type:text;not null;<-:create" json:"role"`
	IsSuperuser bool      `gorm:"default:false" json:"-"`
	EditableUserInfo

	AvatarID          *int      `json:"avatar_id"`
	Avatar            *File     `gorm:"foreignKey:AvatarID;constraint:OnDelete:SET NULL" json:"-"`
	EmailNotification bool      `gorm:"default:true" json:"email_notification"`
	AverageRating     float64   `gorm:"default:0" json:"average_rating"`
	CreatedAt         time.Time `json:"created_at"`

	Employer  *Employer  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"employer,omitempty"`
	Candidate *Candidate `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"candidate,omitempty"`
}

// Profile is the role-specific extension of a User. It is one of
// EmployerProfile, CandidateProfile or AdminProfile.
type Profile interface {
	Role() string
	isProfile()
}

// EmployerProfile marks an employer identity.
type EmployerProfile struct{ Employer *Employer }

// CandidateProfile marks a candidate identity.
type CandidateProfile struct{ Candidate *Candidate }

// AdminProfile marks an administrator identity.
type AdminProfile struct{}

// Role implements Profile.
func (EmployerProfile) Role() string { return RoleEmployer }

// Role implements Profile.
func (CandidateProfile) Role() string { return RoleCandidate }

// Role implements Profile.
func (AdminProfile) Role() string { return RoleAdmin }

func (EmployerProfile) isProfile()  {}
func (CandidateProfile) isProfile() {}
func (AdminProfile) isProfile()     {}

// NewUser builds an identity whose role always matches its profile.
func NewUser(username string, email *string, hashedPassword string, profile Profile) User {
	u := User{
		ID:                uuid.New(),
		Username:          username,
		Email:             email,
		Password:          hashedPassword,
		Role:              profile.Role(),
		EmailNotification: true,
	}
	switch p := profile.(type) {
	case EmployerProfile:
		u.Employer = p.Employer
	case CandidateProfile:
		u.Candidate = p.Candidate
	}
	return u
}

// Profile return the profile variant of the user. Associations must be
// preloaded for the variant to carry its record.
func (u *User) Profile() Profile {
	switch u.Role {
	case RoleEmployer:
		return EmployerProfile{Employer: u.Employer}
	case RoleCandidate:
		return CandidateProfile{Candidate: u.Candidate}
	default:
		return AdminProfile{}
	}
}

// IsAdmin reports whether user has administrator rights.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// EmployerID return the employer profile id, if the user has one loaded.
func (u *User) EmployerID() (uint, bool) {
	if p, ok := u.Profile().(EmployerProfile); ok && p.Employer != nil {
		return p.Employer.ID, true
	}
	return 0, false
}

// CandidateID return the candidate profile id, if the user has one loaded.
func (u *User) CandidateID() (uint, bool) {
	if p, ok := u.Profile().(CandidateProfile); ok && p.Candidate != nil {
		return p.Candidate.ID, true
	}
	return 0, false
}

// EmailAddress return the email or empty string.
func (u *User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
