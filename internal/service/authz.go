package service

import "familyconnect/internal/models"

// The authorization guard. Every family-scoped operation resolves the
// caller's membership row and asks one of these questions before touching
// data. The functions are pure: membership row in, verdict out.
//
// A nil membership means the caller does not belong to the family at all;
// an unapproved membership grants nothing.

// CanViewFamily reports whether the member may read the family's content
// (posts, comments, events, newsletters, member list).
func CanViewFamily(m *models.FamilyMember) bool {
	return m != nil && m.IsApproved
}

// CanCreateContent reports whether the member may create posts and events.
// Any approved member qualifies.
func CanCreateContent(m *models.FamilyMember) bool {
	return m != nil && m.IsApproved
}

// CanInteract reports whether the member may comment on and like posts.
// Any approved member qualifies.
func CanInteract(m *models.FamilyMember) bool {
	return m != nil && m.IsApproved
}

// CanManageNewsletters reports whether the member may create and send
// newsletters. Requires the publisher or admin role.
func CanManageNewsletters(m *models.FamilyMember) bool {
	return m != nil && m.IsApproved && m.CanPublish()
}

// CanManageFamily reports whether the member may update the family's
// display details. The admin role alone grants this; approval is implied
// by holding it.
func CanManageFamily(m *models.FamilyMember) bool {
	return m != nil && m.IsAdmin()
}

// CanManageMembers reports whether the member may approve members and
// change roles. The admin role alone grants this.
func CanManageMembers(m *models.FamilyMember) bool {
	return m != nil && m.IsAdmin()
}

// CanRemoveMember reports whether actor may remove target from the family.
// Admins may remove anyone; everyone may remove their own membership,
// including the last admin, which can leave a family without one.
func CanRemoveMember(actor, target *models.FamilyMember) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.ID == target.ID {
		return true
	}
	return actor.IsAdmin()
}
