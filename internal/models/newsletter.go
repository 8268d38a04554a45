package models

import "time"

// Newsletter is a compiled, emailable digest of family content. Lifecycle is
// draft (IsSent=false, SentAt=nil) to sent (IsSent=true, SentAt set), one
// way. Sending is not idempotent: a sent newsletter can be re-sent.
type Newsletter struct {
	ID              int64
	FamilyID        int64
	CreatedByUserID string
	Title           string
	Content         string
	IncludedPostIDs []int64
	IsSent          bool
	SentAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
