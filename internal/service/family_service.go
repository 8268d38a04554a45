package service

import (
	"errors"
	"fmt"

	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

// FamilyService handles family and membership business logic
type FamilyService struct {
	familyRepo *repository.FamilyRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repository.FamilyRepository) *FamilyService {
	return &FamilyService{familyRepo: familyRepo}
}

// CreateFamily creates a new family with the creator as an approved admin
func (s *FamilyService) CreateFamily(creatorUserID, name, description, coverImageURL string) (*models.Family, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: family name is required", ErrInvalidInput)
	}

	family, err := s.familyRepo.CreateFamily(name, description, coverImageURL, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, nil
}

// GetFamily retrieves a family. The caller must be an approved member.
func (s *FamilyService) GetFamily(userID string, familyID int64) (*models.Family, error) {
	family, membership, err := s.resolveFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}
	return family, nil
}

// GetUserFamilies retrieves all families where the user is an approved member
func (s *FamilyService) GetUserFamilies(userID string) ([]models.Family, error) {
	families, err := s.familyRepo.GetUserFamilies(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user families: %w", err)
	}
	return families, nil
}

// UpdateFamily updates a family's display details. Admins only. The update
// is partial: nil fields keep their current value.
func (s *FamilyService) UpdateFamily(userID string, familyID int64, name, description, coverImageURL *string) (*models.Family, error) {
	if name != nil && *name == "" {
		return nil, fmt.Errorf("%w: family name is required", ErrInvalidInput)
	}

	family, membership, err := s.resolveFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanManageFamily(membership) {
		return nil, ErrForbidden
	}

	if name != nil {
		family.Name = *name
	}
	if description != nil {
		family.Description = *description
	}
	if coverImageURL != nil {
		family.CoverImageURL = *coverImageURL
	}

	updated, err := s.familyRepo.UpdateFamily(familyID, family.Name, family.Description, family.CoverImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}
	if !updated {
		return nil, ErrFamilyNotFound
	}

	return s.familyRepo.GetFamilyByID(familyID)
}

// JoinFamily creates an unapproved membership request for the user. An
// admin must approve it before the user can see anything.
func (s *FamilyService) JoinFamily(userID string, familyID int64) (*models.FamilyMember, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	member, err := s.familyRepo.AddMember(familyID, userID, models.RoleMember, false)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	return member, nil
}

// ListMembers retrieves a family's members with user display data. The
// caller must be an approved member.
func (s *FamilyService) ListMembers(userID string, familyID int64) ([]models.MemberWithUser, error) {
	_, membership, err := s.resolveFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	members, err := s.familyRepo.ListMembers(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ApproveMember approves a pending membership. Admins of that family only.
func (s *FamilyService) ApproveMember(actorUserID string, familyID, memberID int64) (*models.FamilyMember, error) {
	target, actor, err := s.resolveMember(actorUserID, familyID, memberID)
	if err != nil {
		return nil, err
	}
	if !CanManageMembers(actor) {
		return nil, ErrForbidden
	}

	approved, err := s.familyRepo.ApproveMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to approve member: %w", err)
	}
	if !approved {
		return nil, ErrMemberNotFound
	}

	target.IsApproved = true
	return target, nil
}

// UpdateMemberRole changes a member's role. Admins of that family only.
func (s *FamilyService) UpdateMemberRole(actorUserID string, familyID, memberID int64, role string) (*models.FamilyMember, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}

	target, actor, err := s.resolveMember(actorUserID, familyID, memberID)
	if err != nil {
		return nil, err
	}
	if !CanManageMembers(actor) {
		return nil, ErrForbidden
	}

	updated, err := s.familyRepo.UpdateMemberRole(memberID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	if !updated {
		return nil, ErrMemberNotFound
	}

	target.Role = role
	return target, nil
}

// RemoveMember removes a membership. Admins may remove anyone in their
// family; any member may remove themselves.
func (s *FamilyService) RemoveMember(actorUserID string, familyID, memberID int64) error {
	target, actor, err := s.resolveMember(actorUserID, familyID, memberID)
	if err != nil {
		return err
	}
	if !CanRemoveMember(actor, target) {
		return ErrForbidden
	}

	removed, err := s.familyRepo.RemoveMember(memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if !removed {
		return ErrMemberNotFound
	}

	return nil
}

// resolveFamily loads the family and the caller's membership in it. A
// missing family is ErrFamilyNotFound; a missing membership comes back nil
// for the guard to reject.
func (s *FamilyService) resolveFamily(userID string, familyID int64) (*models.Family, *models.FamilyMember, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, nil, ErrFamilyNotFound
	}

	membership, err := s.familyRepo.GetMembership(familyID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return family, membership, nil
}

// resolveMember loads the target membership row and the actor's membership
// in the same family. A member addressed under the wrong family is treated
// as absent.
func (s *FamilyService) resolveMember(actorUserID string, familyID, memberID int64) (target, actor *models.FamilyMember, err error) {
	target, err = s.familyRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get member: %w", err)
	}
	if target == nil || target.FamilyID != familyID {
		return nil, nil, ErrMemberNotFound
	}

	actor, err = s.familyRepo.GetMembership(target.FamilyID, actorUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return target, actor, nil
}
