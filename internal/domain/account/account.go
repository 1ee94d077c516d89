package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the portfolio owner's public profile. There is exactly one.
type Account struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Summary         string    `json:"summary"`
	About           string    `json:"about"`
	Counters        Counters  `json:"counters"`
	ProfileImageURL string    `json:"profileImageUrl"`
	ProfileImageID  string    `json:"profileImageId"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Counters are the headline numbers shown next to the bio.
type Counters struct {
	Experience  int `json:"experience"`
	Project     int `json:"project"`
	Hackathon   int `json:"hackathon"`
	Certificate int `json:"certificate"`
	Award       int `json:"award"`
	Technology  int `json:"technology"`
}

var (
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidEmail    = errors.New("email must be a valid address")
	ErrNegativeCounter = errors.New("counters cannot be negative")
	ErrImagePairBroken = errors.New("profile image url and id must be set together")
)

func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return ErrInvalidEmail
	}
	c := a.Counters
	for _, n := range []int{c.Experience, c.Project, c.Hackathon, c.Certificate, c.Award, c.Technology} {
		if n < 0 {
			return ErrNegativeCounter
		}
	}
	if (a.ProfileImageURL == "") != (a.ProfileImageID == "") {
		return ErrImagePairBroken
	}
	return nil
}

// SetProfileImage replaces the url/handle pair and returns the previous handle.
func (a *Account) SetProfileImage(url, handle string) (previous string) {
	previous = a.ProfileImageID
	a.ProfileImageURL = url
	a.ProfileImageID = handle
	return previous
}

type Repository interface {
	// GetOrCreate returns the singleton, inserting defaults if none exists yet.
	GetOrCreate(ctx context.Context, defaults *Account) (*Account, error)
	// Update overwrites the singleton (last write wins) and bumps a.Version.
	Update(ctx context.Context, a *Account) error
}
