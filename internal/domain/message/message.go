package message

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a contact-form submission from a site visitor.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrFieldsRequired = errors.New("name, email, subject and message are required")
	ErrInvalidEmail   = errors.New("email must be a valid address")
)

func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrFieldsRequired
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, m *Message) error
	// SetRead flips the read flag and returns the updated message.
	SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	// List returns newest first.
	List(ctx context.Context) ([]*Message, error)
}
