package repository

import (
	"errors"
	"testing"

	"familyconnect/internal/models"
)

func TestCreateFamilyCreatorIsApprovedAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	familyRepo := NewFamilyRepository(db)

	membership, err := familyRepo.GetMembership(family.ID, "creator")
	if err != nil {
		t.Fatalf("failed to get membership: %v", err)
	}
	if membership == nil {
		t.Fatal("expected creator membership, got none")
	}
	if membership.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, membership.Role)
	}
	if !membership.IsApproved {
		t.Error("expected creator to be approved")
	}
}

func TestAddMemberDuplicateReturnsErrDuplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	createTestUser(t, db, "joiner")
	familyRepo := NewFamilyRepository(db)

	if _, err := familyRepo.AddMember(family.ID, "joiner", models.RoleMember, false); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := familyRepo.AddMember(family.ID, "joiner", models.RoleMember, false)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestApproveMemberAndUpdateRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	createTestUser(t, db, "joiner")
	familyRepo := NewFamilyRepository(db)

	member, err := familyRepo.AddMember(family.ID, "joiner", models.RoleMember, false)
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	if ok, err := familyRepo.ApproveMember(member.ID); err != nil || !ok {
		t.Fatalf("approve failed: ok=%v err=%v", ok, err)
	}
	if ok, err := familyRepo.UpdateMemberRole(member.ID, models.RolePublisher); err != nil || !ok {
		t.Fatalf("role update failed: ok=%v err=%v", ok, err)
	}

	got, err := familyRepo.GetMemberByID(member.ID)
	if err != nil {
		t.Fatalf("failed to get member: %v", err)
	}
	if !got.IsApproved {
		t.Error("expected member to be approved")
	}
	if got.Role != models.RolePublisher {
		t.Errorf("expected role %q, got %q", models.RolePublisher, got.Role)
	}
}

func TestApproveMemberMissingReturnsFalse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	familyRepo := NewFamilyRepository(db)

	ok, err := familyRepo.ApproveMember(9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for missing member")
	}
}

func TestGetUserFamiliesOnlyApproved(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	createTestUser(t, db, "pending")
	familyRepo := NewFamilyRepository(db)

	if _, err := familyRepo.AddMember(family.ID, "pending", models.RoleMember, false); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	families, err := familyRepo.GetUserFamilies("pending")
	if err != nil {
		t.Fatalf("failed to get families: %v", err)
	}
	if len(families) != 0 {
		t.Errorf("expected no families for unapproved member, got %d", len(families))
	}

	families, err = familyRepo.GetUserFamilies("creator")
	if err != nil {
		t.Fatalf("failed to get families: %v", err)
	}
	if len(families) != 1 {
		t.Errorf("expected 1 family for creator, got %d", len(families))
	}
}

func TestRemoveMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	createTestUser(t, db, "joiner")
	familyRepo := NewFamilyRepository(db)

	member, err := familyRepo.AddMember(family.ID, "joiner", models.RoleMember, true)
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	if ok, err := familyRepo.RemoveMember(member.ID); err != nil || !ok {
		t.Fatalf("remove failed: ok=%v err=%v", ok, err)
	}

	got, err := familyRepo.GetMembership(family.ID, "joiner")
	if err != nil {
		t.Fatalf("failed to get membership: %v", err)
	}
	if got != nil {
		t.Error("expected membership to be gone")
	}
}
