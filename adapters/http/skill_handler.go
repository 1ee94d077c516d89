package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skilluc "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skilluc.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skilluc.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func toSkills(in []SkillRequest) []skill.Skill {
	if in == nil {
		return nil
	}
	out := make([]skill.Skill, 0, len(in))
	for _, s := range in {
		out = append(out, skill.Skill{Name: s.Name, Level: *s.Level})
	}
	return out
}

func (h *SkillHandler) List(c *gin.Context) {
	sets, err := h.skillUseCase.ListSkillSets(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSkillSetResponses(sets))
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req CreateSkillSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	set, err := h.skillUseCase.CreateSkillSet(c.Request.Context(), skilluc.CreateSkillSetInput{
		Category: skill.Category(req.Category),
		Skills:   toSkills(req.Skills),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toSkillSetResponse(set))
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, err := parseID(c, "skill set")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateSkillSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	in := skilluc.UpdateSkillSetInput{ID: id, Skills: toSkills(req.Skills)}
	if req.Category != nil {
		cat := skill.Category(*req.Category)
		in.Category = &cat
	}

	set, err := h.skillUseCase.UpdateSkillSet(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSkillSetResponse(set))
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "skill set")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.skillUseCase.DeleteSkillSet(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
