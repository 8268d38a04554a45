package repository

import (
	"testing"
	"time"
)

func TestNewsletterRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	newsletterRepo := NewNewsletterRepository(db)

	created, err := newsletterRepo.CreateNewsletter(family.ID, "creator", "Spring update", "<p>Hello</p>", []int64{3, 7})
	if err != nil {
		t.Fatalf("failed to create newsletter: %v", err)
	}

	got, err := newsletterRepo.GetNewsletterByID(created.ID)
	if err != nil {
		t.Fatalf("failed to get newsletter: %v", err)
	}
	if got == nil {
		t.Fatal("expected newsletter, got none")
	}
	if got.IsSent {
		t.Error("new newsletter must be a draft")
	}
	if got.SentAt != nil {
		t.Error("draft must have no sent time")
	}
	if len(got.IncludedPostIDs) != 2 || got.IncludedPostIDs[0] != 3 || got.IncludedPostIDs[1] != 7 {
		t.Errorf("expected included post ids [3 7], got %v", got.IncludedPostIDs)
	}
}

func TestMarkSent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	newsletterRepo := NewNewsletterRepository(db)

	created, err := newsletterRepo.CreateNewsletter(family.ID, "creator", "Update", "content", nil)
	if err != nil {
		t.Fatalf("failed to create newsletter: %v", err)
	}

	sentAt := time.Now().UTC().Truncate(time.Second)
	ok, err := newsletterRepo.MarkSent(created.ID, sentAt)
	if err != nil || !ok {
		t.Fatalf("mark sent failed: ok=%v err=%v", ok, err)
	}

	got, err := newsletterRepo.GetNewsletterByID(created.ID)
	if err != nil {
		t.Fatalf("failed to get newsletter: %v", err)
	}
	if !got.IsSent {
		t.Error("expected newsletter to be sent")
	}
	if got.SentAt == nil {
		t.Fatal("expected sent time")
	}

	ok, err = newsletterRepo.MarkSent(9999, sentAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for missing newsletter")
	}
}

func TestPostIDSerialization(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want string
	}{
		{"empty", nil, ""},
		{"single", []int64{42}, "42"},
		{"several", []int64{1, 2, 3}, "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postIDsToString(tt.ids)
			if got != tt.want {
				t.Errorf("postIDsToString(%v) = %q, want %q", tt.ids, got, tt.want)
			}

			back, err := stringToPostIDs(got)
			if err != nil {
				t.Fatalf("stringToPostIDs(%q) failed: %v", got, err)
			}
			if len(back) != len(tt.ids) {
				t.Fatalf("round trip length mismatch: %v vs %v", back, tt.ids)
			}
			for i := range back {
				if back[i] != tt.ids[i] {
					t.Errorf("round trip mismatch at %d: %v vs %v", i, back, tt.ids)
				}
			}
		})
	}
}

func TestStringToPostIDsRejectsGarbage(t *testing.T) {
	if _, err := stringToPostIDs("1,abc,3"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
