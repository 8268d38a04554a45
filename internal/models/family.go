package models

import "time"

// Member roles, in decreasing order of privilege
const (
	RoleAdmin     = "admin"
	RolePublisher = "publisher"
	RoleMember    = "member"
)

// ValidRole reports whether role is one of the recognised member roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RolePublisher || role == RoleMember
}

// Family represents a private group of users sharing posts, events and
// newsletters
type Family struct {
	ID            int64
	Name          string
	Description   string
	CoverImageURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FamilyMember represents the relationship between a user and a family.
// Role and approval are independent fields: a membership starts unapproved
// with the member role, and an admin approves it and may change the role
// afterwards.
type FamilyMember struct {
	ID         int64
	FamilyID   int64
	UserID     string
	Role       string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAdmin reports whether the membership carries the admin role
func (m *FamilyMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// CanPublish reports whether the membership may create and send newsletters
func (m *FamilyMember) CanPublish() bool {
	return m.Role == RoleAdmin || m.Role == RolePublisher
}

// MemberWithUser combines a membership with the user's display data
type MemberWithUser struct {
	FamilyMember
	User User
}
