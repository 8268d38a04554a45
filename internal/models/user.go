package models

import "time"

// User mirrors the profile supplied by the identity provider. The ID is the
// provider's opaque subject; everything else is display data.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Bio             string
	PhoneNumber     string
	Address         string
	Birthday        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName returns a human-readable name for the user
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

// HasEmail reports whether the user has a known email address
func (u *User) HasEmail() bool {
	return u.Email != ""
}
