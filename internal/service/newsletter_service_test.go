package service

import (
	"context"
	"errors"
	"testing"

	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

func newNewsletterService(env *testEnv, sender EmailSender) *NewsletterService {
	return NewNewsletterService(repository.NewNewsletterRepository(env.db), env.familyRepo, env.postRepo, sender, "http://localhost:8080")
}

func TestSendNewsletterToApprovedMembers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	family := env.addFamily(t, "admin")
	env.addMember(t, family.ID, "reader", "reader@example.com", models.RoleMember, true)
	env.addMember(t, family.ID, "pending", "pending@example.com", models.RoleMember, false)

	sender := newFakeSender()
	svc := newNewsletterService(env, sender)

	draft, err := svc.CreateNewsletter("admin", family.ID, "Spring update", "<p>Hello</p>", nil)
	if err != nil {
		t.Fatalf("failed to create newsletter: %v", err)
	}
	if draft.IsSent {
		t.Fatal("new newsletter must be a draft")
	}

	sent, err := svc.SendNewsletter(context.Background(), "admin", draft.ID)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !sent.IsSent || sent.SentAt == nil {
		t.Error("expected newsletter to be marked sent")
	}

	recipients := sender.sentTo()
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d: %v", len(recipients), recipients)
	}
	for _, addr := range recipients {
		if addr == "pending@example.com" {
			t.Error("unapproved member must not receive the newsletter")
		}
	}
}

func TestSendNewsletterPartialFailureLeavesDraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	family := env.addFamily(t, "admin")
	env.addMember(t, family.ID, "reader", "reader@example.com", models.RoleMember, true)

	sender := newFakeSender()
	sender.failTo["reader@example.com"] = true
	svc := newNewsletterService(env, sender)

	draft, err := svc.CreateNewsletter("admin", family.ID, "Update", "content", nil)
	if err != nil {
		t.Fatalf("failed to create newsletter: %v", err)
	}

	_, err = svc.SendNewsletter(context.Background(), "admin", draft.ID)
	if !errors.Is(err, ErrEmailDelivery) {
		t.Fatalf("expected ErrEmailDelivery, got %v", err)
	}

	got, err := svc.GetNewsletter("admin", draft.ID)
	if err != nil {
		t.Fatalf("failed to get newsletter: %v", err)
	}
	if got.IsSent {
		t.Error("failed batch must leave the newsletter a draft")
	}

	// Retry after the provider recovers
	sender.failTo["reader@example.com"] = false
	if _, err := svc.SendNewsletter(context.Background(), "admin", draft.ID); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestSendNewsletterDemotedPublisherDenied(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	family := env.addFamily(t, "admin")
	publisher := env.addMember(t, family.ID, "pub", "pub@example.com", models.RolePublisher, true)

	sender := newFakeSender()
	svc := newNewsletterService(env, sender)

	draft, err := svc.CreateNewsletter("pub", family.ID, "Update", "content", nil)
	if err != nil {
		t.Fatalf("publisher should be able to draft: %v", err)
	}

	// Demote between drafting and sending
	if _, err := env.familyRepo.UpdateMemberRole(publisher.ID, models.RoleMember); err != nil {
		t.Fatalf("failed to demote: %v", err)
	}

	_, err = svc.SendNewsletter(context.Background(), "pub", draft.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(sender.sentTo()) != 0 {
		t.Error("no emails may go out on a denied send")
	}
}

func TestSendNewsletterResendAllowed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	family := env.addFamily(t, "admin")

	sender := newFakeSender()
	svc := newNewsletterService(env, sender)

	draft, err := svc.CreateNewsletter("admin", family.ID, "Update", "content", nil)
	if err != nil {
		t.Fatalf("failed to create newsletter: %v", err)
	}

	if _, err := svc.SendNewsletter(context.Background(), "admin", draft.ID); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if _, err := svc.SendNewsletter(context.Background(), "admin", draft.ID); err != nil {
		t.Fatalf("second send failed: %v", err)
	}
	if len(sender.sentTo()) != 2 {
		t.Errorf("expected 2 deliveries across both sends, got %d", len(sender.sentTo()))
	}
}

func TestCreateNewsletterRejectsForeignPosts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	family := env.addFamily(t, "admin")
	other := env.addFamily(t, "outsider")

	foreignPost, err := env.postRepo.CreatePost("outsider", other.ID, "elsewhere", nil)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	svc := newNewsletterService(env, newFakeSender())
	_, err = svc.CreateNewsletter("admin", family.ID, "Update", "content", []int64{foreignPost.ID})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
