package handlers

import (
	"time"

	"familyconnect/internal/models"
)

// Request bodies

type createFamilyRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	CoverImageURL string `json:"coverImageUrl"`
}

// updateFamilyRequest uses pointers so an omitted field can be told apart
// from an explicitly cleared one
type updateFamilyRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"coverImageUrl"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role"`
}

type createPostRequest struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"eventDate"`
	EventType   string `json:"eventType"`
}

type createNewsletterRequest struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	IncludedPostIDs []int64 `json:"includedPostIds"`
}

type updateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Bio         string `json:"bio"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Birthday    string `json:"birthday"`
}

// Response bodies

type familyResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toFamilyResponse(f *models.Family) familyResponse {
	return familyResponse{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		CoverImageURL: f.CoverImageURL,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toFamilyResponses(families []models.Family) []familyResponse {
	out := make([]familyResponse, len(families))
	for i := range families {
		out[i] = toFamilyResponse(&families[i])
	}
	return out
}

type memberResponse struct {
	ID         int64     `json:"id"`
	FamilyID   int64     `json:"familyId"`
	UserID     string    `json:"userId"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMemberResponse(m *models.FamilyMember) memberResponse {
	return memberResponse{
		ID:         m.ID,
		FamilyID:   m.FamilyID,
		UserID:     m.UserID,
		Role:       m.Role,
		IsApproved: m.IsApproved,
		CreatedAt:  m.CreatedAt,
	}
}

type memberWithUserResponse struct {
	memberResponse
	User userResponse `json:"user"`
}

func toMemberWithUserResponses(members []models.MemberWithUser) []memberWithUserResponse {
	out := make([]memberWithUserResponse, len(members))
	for i, m := range members {
		out[i] = memberWithUserResponse{
			memberResponse: toMemberResponse(&m.FamilyMember),
			User:           toUserResponse(&m.User),
		}
	}
	return out
}

type userResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
	Bio             string `json:"bio"`
	PhoneNumber     string `json:"phoneNumber"`
	Address         string `json:"address"`
	Birthday        string `json:"birthday"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
		PhoneNumber:     u.PhoneNumber,
		Address:         u.Address,
		Birthday:        u.Birthday,
	}
}

type postResponse struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	FamilyID     int64     `json:"familyId"`
	Content      string    `json:"content"`
	Images       []string  `json:"images"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toPostResponse(p *models.Post) postResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return postResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		FamilyID:     p.FamilyID,
		Content:      p.Content,
		Images:       images,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPostResponses(posts []models.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i])
	}
	return out
}

type commentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i := range comments {
		out[i] = toCommentResponse(&comments[i])
	}
	return out
}

type likeResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type eventResponse struct {
	ID              int64     `json:"id"`
	FamilyID        int64     `json:"familyId"`
	CreatedByUserID string    `json:"createdByUserId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       time.Time `json:"eventDate"`
	EventType       string    `json:"eventType"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toEventResponse(e *models.Event) eventResponse {
	return eventResponse{
		ID:              e.ID,
		FamilyID:        e.FamilyID,
		CreatedByUserID: e.CreatedByUserID,
		Title:           e.Title,
		Description:     e.Description,
		EventDate:       e.EventDate,
		EventType:       e.EventType,
		CreatedAt:       e.CreatedAt,
	}
}

func toEventResponses(events []models.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	return out
}

type newsletterResponse struct {
	ID              int64      `json:"id"`
	FamilyID        int64      `json:"familyId"`
	CreatedByUserID string     `json:"createdByUserId"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	IncludedPostIDs []int64    `json:"includedPostIds"`
	IsSent          bool       `json:"isSent"`
	SentAt          *time.Time `json:"sentAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toNewsletterResponse(n *models.Newsletter) newsletterResponse {
	ids := n.IncludedPostIDs
	if ids == nil {
		ids = []int64{}
	}
	return newsletterResponse{
		ID:              n.ID,
		FamilyID:        n.FamilyID,
		CreatedByUserID: n.CreatedByUserID,
		Title:           n.Title,
		Content:         n.Content,
		IncludedPostIDs: ids,
		IsSent:          n.IsSent,
		SentAt:          n.SentAt,
		CreatedAt:       n.CreatedAt,
	}
}

func toNewsletterResponses(newsletters []models.Newsletter) []newsletterResponse {
	out := make([]newsletterResponse, len(newsletters))
	for i := range newsletters {
		out[i] = toNewsletterResponse(&newsletters[i])
	}
	return out
}
