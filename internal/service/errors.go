package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP
// status codes; everything else is treated as an internal error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("operation not permitted")
	ErrFamilyNotFound     = errors.New("family not found")
	ErrMemberNotFound     = errors.New("family member not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrNewsletterNotFound = errors.New("newsletter not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrAlreadyMember      = errors.New("user is already a member of this family")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrEmailDelivery      = errors.New("email delivery failed")
)
