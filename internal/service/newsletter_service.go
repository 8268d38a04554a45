package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"familyconnect/internal/metrics"
	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

// NewsletterService handles newsletter drafting and dispatch
type NewsletterService struct {
	newsletterRepo *repository.NewsletterRepository
	familyRepo     *repository.FamilyRepository
	postRepo       *repository.PostRepository
	sender         EmailSender
	appBaseURL     string
	now            func() time.Time
}

// NewNewsletterService creates a new newsletter service. appBaseURL is
// used for the link in the email footer.
func NewNewsletterService(newsletterRepo *repository.NewsletterRepository, familyRepo *repository.FamilyRepository, postRepo *repository.PostRepository, sender EmailSender, appBaseURL string) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		familyRepo:     familyRepo,
		postRepo:       postRepo,
		sender:         sender,
		appBaseURL:     appBaseURL,
		now:            time.Now,
	}
}

// CreateNewsletter creates a newsletter draft. Publishers and admins only.
// Every included post must belong to the same family.
func (s *NewsletterService) CreateNewsletter(userID string, familyID int64, title, content string, includedPostIDs []int64) (*models.Newsletter, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: newsletter title is required", ErrInvalidInput)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: newsletter content is required", ErrInvalidInput)
	}

	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanManageNewsletters(membership) {
		return nil, ErrForbidden
	}

	for _, postID := range includedPostIDs {
		post, err := s.postRepo.GetPostByID(postID)
		if err != nil {
			return nil, fmt.Errorf("failed to get post: %w", err)
		}
		if post == nil || post.FamilyID != familyID {
			return nil, fmt.Errorf("%w: post %d does not belong to this family", ErrInvalidInput, postID)
		}
	}

	newsletter, err := s.newsletterRepo.CreateNewsletter(familyID, userID, title, content, includedPostIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}

	return newsletter, nil
}

// GetNewsletter retrieves a newsletter. The caller must be an approved
// member of its family.
func (s *NewsletterService) GetNewsletter(userID string, newsletterID int64) (*models.Newsletter, error) {
	newsletter, _, err := s.resolveNewsletter(userID, newsletterID)
	return newsletter, err
}

// ListFamilyNewsletters retrieves a family's newsletters, newest first
func (s *NewsletterService) ListFamilyNewsletters(userID string, familyID int64) ([]models.Newsletter, error) {
	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	newsletters, err := s.newsletterRepo.ListFamilyNewsletters(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list newsletters: %w", err)
	}
	return newsletters, nil
}

// SendNewsletter emails a newsletter to every approved family member with
// an email address. Authorization is re-checked here, so a publisher
// demoted after drafting cannot dispatch. Sends run concurrently; the
// newsletter is marked sent only when the whole batch succeeds, and a
// failed batch leaves it a draft for retry. Re-sending an already sent
// newsletter is allowed.
func (s *NewsletterService) SendNewsletter(ctx context.Context, userID string, newsletterID int64) (*models.Newsletter, error) {
	newsletter, membership, err := s.resolveNewsletter(userID, newsletterID)
	if err != nil {
		return nil, err
	}
	if !CanManageNewsletters(membership) {
		return nil, ErrForbidden
	}

	family, err := s.familyRepo.GetFamilyByID(newsletter.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	members, err := s.familyRepo.ListMembers(newsletter.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	recipients := make([]models.MemberWithUser, 0, len(members))
	for _, m := range members {
		if m.IsApproved && m.User.HasEmail() {
			recipients = append(recipients, m)
		}
	}

	htmlBody, textBody, err := s.renderNewsletter(family, newsletter)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("%s - %s", family.Name, newsletter.Title)

	var wg sync.WaitGroup
	sendErrs := make([]error, len(recipients))
	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, r models.MemberWithUser) {
			defer wg.Done()
			sendErrs[i] = s.sender.Send(ctx, r.User.Email, subject, htmlBody, textBody)
		}(i, recipient)
	}
	wg.Wait()

	sent := 0
	var firstErr error
	for i, sendErr := range sendErrs {
		if sendErr != nil {
			log.Printf("Newsletter %d: send to %s failed: %v", newsletterID, recipients[i].User.Email, sendErr)
			if firstErr == nil {
				firstErr = sendErr
			}
			continue
		}
		sent++
	}
	metrics.NewsletterEmailsSent.Add(float64(sent))

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %d of %d sends failed", ErrEmailDelivery, len(recipients)-sent, len(recipients))
	}

	sentAt := s.now()
	marked, err := s.newsletterRepo.MarkSent(newsletterID, sentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mark newsletter sent: %w", err)
	}
	if !marked {
		return nil, ErrNewsletterNotFound
	}

	log.Printf("Newsletter %d sent to %d recipients", newsletterID, sent)

	newsletter.IsSent = true
	newsletter.SentAt = &sentAt
	return newsletter, nil
}

// renderNewsletter builds the email bodies. The newsletter content is the
// author's own HTML and goes out verbatim; included posts are appended as
// highlights.
func (s *NewsletterService) renderNewsletter(family *models.Family, newsletter *models.Newsletter) (htmlBody, textBody string, err error) {
	var highlightsHTML, highlightsText strings.Builder
	for _, postID := range newsletter.IncludedPostIDs {
		post, err := s.postRepo.GetPostByID(postID)
		if err != nil {
			return "", "", fmt.Errorf("failed to get post: %w", err)
		}
		if post == nil {
			continue
		}
		highlightsHTML.WriteString(fmt.Sprintf(`
			<div style="background-color: #fff; padding: 15px; margin: 10px 0; border-left: 4px solid #4a90e2;">
				<p>%s</p>
			</div>`, post.Content))
		highlightsText.WriteString(fmt.Sprintf("\n- %s\n", post.Content))
	}

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
			<p>%s</p>
		</div>
		<div class="content">
			%s
			%s
		</div>
		<div class="footer">
			<p>You are receiving this because you are a member of %s on FamilyConnect.</p>
			<p><a href="%s">Open FamilyConnect</a></p>
		</div>
	</div>
</body>
</html>
`, newsletter.Title, family.Name, newsletter.Content, highlightsHTML.String(), family.Name, s.appBaseURL)

	textBody = fmt.Sprintf(`%s
%s

%s
%s
---
You are receiving this because you are a member of %s on FamilyConnect.
%s
`, newsletter.Title, family.Name, newsletter.Content, highlightsText.String(), family.Name, s.appBaseURL)

	return htmlBody, textBody, nil
}

func (s *NewsletterService) resolveNewsletter(userID string, newsletterID int64) (*models.Newsletter, *models.FamilyMember, error) {
	newsletter, err := s.newsletterRepo.GetNewsletterByID(newsletterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get newsletter: %w", err)
	}
	if newsletter == nil {
		return nil, nil, ErrNewsletterNotFound
	}

	membership, err := s.familyRepo.GetMembership(newsletter.FamilyID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if !CanViewFamily(membership) {
		return nil, nil, ErrForbidden
	}

	return newsletter, membership, nil
}

func (s *NewsletterService) requireFamily(userID string, familyID int64) (*models.FamilyMember, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	membership, err := s.familyRepo.GetMembership(familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership, nil
}
