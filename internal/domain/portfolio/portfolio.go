package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFullStack Category = "Full Stack"
	CategoryFrontend  Category = "Frontend"
	CategoryBackend   Category = "Backend"
	CategoryAIML      Category = "AI/ML"
)

var Categories = []Category{CategoryFullStack, CategoryFrontend, CategoryBackend, CategoryAIML}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Item struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	ImagePublicID string    `json:"imagePublicId"`
	GithubURL     string    `json:"githubUrl"`
	LiveURL       string    `json:"liveUrl,omitempty"`
	Category      Category  `json:"category"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrGithubURLRequired   = errors.New("githubUrl is required")
	ErrInvalidCategory     = errors.New("category is not one of the allowed values")
	ErrImageRequired       = errors.New("project screenshot is required")
)

func (p *Item) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(p.GithubURL) == "" {
		return ErrGithubURLRequired
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	if p.ImageURL == "" || p.ImagePublicID == "" {
		return ErrImageRequired
	}
	return nil
}

// ReplaceImage swaps the url/handle pair and returns the previous handle.
func (p *Item) ReplaceImage(url, handle string) (previous string) {
	previous = p.ImagePublicID
	p.ImageURL = url
	p.ImagePublicID = handle
	return previous
}

// Filter narrows List. Nil fields match everything.
type Filter struct {
	Category *Category
	Featured *bool
}

func (f Filter) Matches(p *Item) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

type Repository interface {
	Save(ctx context.Context, p *Item) error
	Update(ctx context.Context, p *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, error)
}
