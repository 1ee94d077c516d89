package skill

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
	CategoryFullStack  Category = "Full Stack"
	CategoryDevOps     Category = "DevOps & Tools"
	CategoryLanguages  Category = "Programming Languages"
	CategoryAIML       Category = "AI/ML"
	CategorySoftSkills Category = "Soft Skills"
)

var Categories = []Category{CategoryFullStack, CategoryDevOps, CategoryLanguages, CategoryAIML, CategorySoftSkills}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	MinLevel = 0
	MaxLevel = 100
)

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SkillSet groups skills under one category. Several sets may share a category.
type SkillSet struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Skills    []Skill   `json:"skills"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrInvalidCategory = errors.New("category is not one of the allowed values")
	ErrNoSkills        = errors.New("skills must contain at least one entry")
)

func (s *SkillSet) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, s.Category)
	}
	if len(s.Skills) == 0 {
		return ErrNoSkills
	}
	for i, sk := range s.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			return fmt.Errorf("skills[%d]: name is required", i)
		}
		if sk.Level < MinLevel || sk.Level > MaxLevel {
			return fmt.Errorf("skills[%d]: level %d is outside %d..%d", i, sk.Level, MinLevel, MaxLevel)
		}
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, s *SkillSet) error
	Update(ctx context.Context, s *SkillSet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*SkillSet, error)
	List(ctx context.Context) ([]*SkillSet, error)
}
