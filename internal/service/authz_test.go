package service

import (
	"testing"

	"familyconnect/internal/models"
)

func member(role string, approved bool) *models.FamilyMember {
	return &models.FamilyMember{ID: 1, FamilyID: 1, UserID: "u", Role: role, IsApproved: approved}
}

func TestGuardPermissionMatrix(t *testing.T) {
	tests := []struct {
		name        string
		m           *models.FamilyMember
		view        bool
		create      bool
		interact    bool
		newsletters bool
		family      bool
		members     bool
	}{
		{"nil membership", nil, false, false, false, false, false, false},
		{"unapproved member", member(models.RoleMember, false), false, false, false, false, false, false},
		{"unapproved admin", member(models.RoleAdmin, false), false, false, false, false, true, true},
		{"approved member", member(models.RoleMember, true), true, true, true, false, false, false},
		{"approved publisher", member(models.RolePublisher, true), true, true, true, true, false, false},
		{"approved admin", member(models.RoleAdmin, true), true, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewFamily(tt.m); got != tt.view {
				t.Errorf("CanViewFamily = %v, want %v", got, tt.view)
			}
			if got := CanCreateContent(tt.m); got != tt.create {
				t.Errorf("CanCreateContent = %v, want %v", got, tt.create)
			}
			if got := CanInteract(tt.m); got != tt.interact {
				t.Errorf("CanInteract = %v, want %v", got, tt.interact)
			}
			if got := CanManageNewsletters(tt.m); got != tt.newsletters {
				t.Errorf("CanManageNewsletters = %v, want %v", got, tt.newsletters)
			}
			if got := CanManageFamily(tt.m); got != tt.family {
				t.Errorf("CanManageFamily = %v, want %v", got, tt.family)
			}
			if got := CanManageMembers(tt.m); got != tt.members {
				t.Errorf("CanManageMembers = %v, want %v", got, tt.members)
			}
		})
	}
}

func TestCanRemoveMember(t *testing.T) {
	admin := member(models.RoleAdmin, true)
	other := &models.FamilyMember{ID: 2, FamilyID: 1, UserID: "v", Role: models.RoleMember, IsApproved: true}
	pending := &models.FamilyMember{ID: 3, FamilyID: 1, UserID: "w", Role: models.RoleMember, IsApproved: false}

	if !CanRemoveMember(admin, other) {
		t.Error("admin should remove other members")
	}
	if CanRemoveMember(other, admin) {
		t.Error("plain member should not remove others")
	}
	if !CanRemoveMember(other, other) {
		t.Error("member should be able to leave")
	}
	if !CanRemoveMember(pending, pending) {
		t.Error("pending member should be able to withdraw")
	}
	// Last-admin self-removal is allowed; the guard does not count admins
	if !CanRemoveMember(admin, admin) {
		t.Error("admin should be able to leave")
	}
	// The admin role grants removal regardless of the actor's approval state
	if !CanRemoveMember(member(models.RoleAdmin, false), other) {
		t.Error("admin role alone should grant removal")
	}
}
