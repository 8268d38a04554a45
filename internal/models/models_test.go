package models

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RolePublisher, RoleMember} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "owner", "Admin", "superuser"} {
		if ValidRole(role) {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}

func TestMemberRoleChecks(t *testing.T) {
	admin := FamilyMember{Role: RoleAdmin}
	publisher := FamilyMember{Role: RolePublisher}
	plain := FamilyMember{Role: RoleMember}

	if !admin.IsAdmin() || publisher.IsAdmin() || plain.IsAdmin() {
		t.Error("IsAdmin must only be true for admins")
	}
	if !admin.CanPublish() || !publisher.CanPublish() {
		t.Error("admins and publishers can publish")
	}
	if plain.CanPublish() {
		t.Error("plain members cannot publish")
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{FirstName: "Ada", LastName: "Smith"}, "Ada Smith"},
		{User{FirstName: "Ada"}, "Ada"},
		{User{Email: "ada@example.com"}, "ada@example.com"},
		{User{ID: "u1"}, "u1"},
	}

	for _, tt := range tests {
		if got := tt.user.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
