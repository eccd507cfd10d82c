package auth

import (
	"time"
)

// Closed role set. Lead/Chairperson and Faculty Coordinator are committee-scoped;
// TPO, Vice Principal and Principal are institution-wide; Student submits requests.
const (
	RoleStudent            = "Student"
	RoleLead               = "Lead"
	RoleChairperson        = "Chairperson"
	RoleFacultyCoordinator = "Faculty Coordinator"
	RoleTPO                = "TPO"
	RoleVicePrincipal      = "Vice Principal"
	RolePrincipal          = "Principal"
)

// Committees recognized by the institution.
var Committees = []string{
	"GDG Student Club",
	"Synapse Club",
	"ACM Student Chapter",
}

// InstitutionRoles are the approver roles not scoped to any committee.
var InstitutionRoles = []string{RoleTPO, RoleVicePrincipal, RolePrincipal}

// CommitteeRoles are the approver roles scoped to a single committee.
var CommitteeRoles = []string{RoleLead, RoleChairperson, RoleFacultyCoordinator}

var validRoles = map[string]bool{
	RoleStudent:            true,
	RoleLead:               true,
	RoleChairperson:        true,
	RoleFacultyCoordinator: true,
	RoleTPO:                true,
	RoleVicePrincipal:      true,
	RolePrincipal:          true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

func IsValidCommittee(committee string) bool {
	for _, c := range Committees {
		if c == committee {
			return true
		}
	}
	return false
}

// IsInstitutionRole reports whether role is institution-wide.
func IsInstitutionRole(role string) bool {
	for _, r := range InstitutionRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsCommitteeRole reports whether role is scoped to a committee.
func IsCommitteeRole(role string) bool {
	for _, r := range CommitteeRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account in the approver directory.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:10;uniqueIndex" json:"user_id"` // U0001
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:30;not null;index" json:"role"`
	Committee    string    `gorm:"size:60;index" json:"committee"` // "none" for institution-wide roles
	SignPath     string    `gorm:"size:255" json:"sign_path,omitempty"`
	Status       string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ApproverSummary is the display identity attached to enriched requests.
type ApproverSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}
