package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillSetValidate(t *testing.T) {
	valid := func() *SkillSet {
		return &SkillSet{Category: CategoryFullStack, Skills: []Skill{{Name: "Go", Level: 90}}}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		s := valid()
		s.Skills = []Skill{{Name: "a", Level: 0}, {Name: "b", Level: 100}}
		assert.NoError(t, s.Validate())
	})

	for _, level := range []int{-1, 101, 150} {
		s := valid()
		s.Skills[0].Level = level
		assert.Error(t, s.Validate(), "level %d", level)
	}

	t.Run("unknown category", func(t *testing.T) {
		s := valid()
		s.Category = "Cooking"
		assert.ErrorIs(t, s.Validate(), ErrInvalidCategory)
	})

	t.Run("empty skills", func(t *testing.T) {
		s := valid()
		s.Skills = nil
		assert.ErrorIs(t, s.Validate(), ErrNoSkills)
	})

	t.Run("blank name", func(t *testing.T) {
		s := valid()
		s.Skills[0].Name = "  "
		assert.Error(t, s.Validate())
	})
}
