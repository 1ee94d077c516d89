package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
)

// Requests

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest binds from JSON or multipart form fields.
type UpdateAccountRequest struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" form:"phone"`
	Summary     *string `json:"summary" form:"summary"`
	About       *string `json:"about" form:"about"`
	Experience  *int    `json:"experience" form:"experience" binding:"omitempty,min=0"`
	Project     *int    `json:"project" form:"project" binding:"omitempty,min=0"`
	Hackathon   *int    `json:"hackathon" form:"hackathon" binding:"omitempty,min=0"`
	Certificate *int    `json:"certificate" form:"certificate" binding:"omitempty,min=0"`
	Award       *int    `json:"award" form:"award" binding:"omitempty,min=0"`
	Technology  *int    `json:"technology" form:"technology" binding:"omitempty,min=0"`
}

type SkillRequest struct {
	Name  string `json:"name" binding:"required"`
	Level *int   `json:"level" binding:"required,min=0,max=100"`
}

type CreateSkillSetRequest struct {
	Category string         `json:"category" binding:"required"`
	Skills   []SkillRequest `json:"skills" binding:"required,min=1,dive"`
}

type UpdateSkillSetRequest struct {
	Category *string        `json:"category"`
	Skills   []SkillRequest `json:"skills" binding:"omitempty,min=1,dive"`
}

type CreatePortfolioItemRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	GithubURL   string `json:"githubUrl" form:"githubUrl" binding:"required"`
	LiveURL     string `json:"liveUrl" form:"liveUrl"`
	Category    string `json:"category" form:"category" binding:"required"`
	Featured    bool   `json:"featured" form:"featured"`
}

type UpdatePortfolioItemRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	GithubURL   *string `json:"githubUrl" form:"githubUrl"`
	LiveURL     *string `json:"liveUrl" form:"liveUrl"`
	Category    *string `json:"category" form:"category"`
	Featured    *bool   `json:"featured" form:"featured"`
}

type SubmitMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type SetMessageReadRequest struct {
	IsRead *bool `json:"isRead" binding:"required"`
}

// Responses

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserResponse
}

type UserResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

type CountersResponse struct {
	Experience  int `json:"experience"`
	Project     int `json:"project"`
	Hackathon   int `json:"hackathon"`
	Certificate int `json:"certificate"`
	Award       int `json:"award"`
	Technology  int `json:"technology"`
}

type PublicAccountResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Summary         string           `json:"summary"`
	About           string           `json:"about"`
	Counters        CountersResponse `json:"counters"`
	ProfileImageURL string           `json:"profileImageUrl,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type AccountResponse struct {
	PublicAccountResponse
	ProfileImageID string    `json:"profileImageId,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toPublicAccountResponse(a *account.Account) PublicAccountResponse {
	return PublicAccountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Phone:   a.Phone,
		Summary: a.Summary,
		About:   a.About,
		Counters: CountersResponse{
			Experience:  a.Counters.Experience,
			Project:     a.Counters.Project,
			Hackathon:   a.Counters.Hackathon,
			Certificate: a.Counters.Certificate,
			Award:       a.Counters.Award,
			Technology:  a.Counters.Technology,
		},
		ProfileImageURL: a.ProfileImageURL,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		PublicAccountResponse: toPublicAccountResponse(a),
		ProfileImageID:        a.ProfileImageID,
		Version:               a.Version,
		CreatedAt:             a.CreatedAt,
	}
}

type SkillResponse struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type SkillSetResponse struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Skills    []SkillResponse `json:"skills"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toSkillSetResponse(s *skill.SkillSet) SkillSetResponse {
	skills := make([]SkillResponse, 0, len(s.Skills))
	for _, sk := range s.Skills {
		skills = append(skills, SkillResponse{Name: sk.Name, Level: sk.Level})
	}
	return SkillSetResponse{
		ID:        s.ID,
		Category:  string(s.Category),
		Skills:    skills,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSkillSetResponses(sets []*skill.SkillSet) []SkillSetResponse {
	out := make([]SkillSetResponse, 0, len(sets))
	for _, s := range sets {
		out = append(out, toSkillSetResponse(s))
	}
	return out
}

type PublicPortfolioItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	GithubURL   string    `json:"githubUrl"`
	LiveURL     string    `json:"liveUrl,omitempty"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PortfolioItemResponse struct {
	PublicPortfolioItemResponse
	ImagePublicID string    `json:"imagePublicId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toPublicPortfolioItemResponse(p *portfolio.Item) PublicPortfolioItemResponse {
	return PublicPortfolioItemResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		GithubURL:   p.GithubURL,
		LiveURL:     p.LiveURL,
		Category:    string(p.Category),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}

func toPortfolioItemResponse(p *portfolio.Item) PortfolioItemResponse {
	return PortfolioItemResponse{
		PublicPortfolioItemResponse: toPublicPortfolioItemResponse(p),
		ImagePublicID:               p.ImagePublicID,
		UpdatedAt:                   p.UpdatedAt,
	}
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toMessageResponse(m *message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type SubmitMessageResponse struct {
	Message string          `json:"message"`
	Data    MessageResponse `json:"data"`
}
