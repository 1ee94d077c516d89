package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newItem() *Item {
	return &Item{
		Title:         "Portfolio API",
		Description:   "Content backend",
		GithubURL:     "https://github.com/example/api",
		Category:      CategoryBackend,
		ImageURL:      "https://res.cloudinary.com/x/image/upload/a.png",
		ImagePublicID: "portfolio/projects/a",
	}
}

func TestItemValidate(t *testing.T) {
	assert.NoError(t, newItem().Validate())

	p := newItem()
	p.ImageURL, p.ImagePublicID = "", ""
	assert.ErrorIs(t, p.Validate(), ErrImageRequired)

	p = newItem()
	p.Category = "Mobile"
	assert.ErrorIs(t, p.Validate(), ErrInvalidCategory)

	p = newItem()
	p.GithubURL = ""
	assert.ErrorIs(t, p.Validate(), ErrGithubURLRequired)
}

func TestReplaceImageReturnsPrevious(t *testing.T) {
	p := newItem()
	prev := p.ReplaceImage("https://new", "portfolio/projects/b")

	assert.Equal(t, "portfolio/projects/a", prev)
	assert.Equal(t, "portfolio/projects/b", p.ImagePublicID)
}

func TestFilterMatches(t *testing.T) {
	featured := true
	backend := CategoryBackend
	frontend := CategoryFrontend
	p := newItem()

	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{Category: &backend}.Matches(p))
	assert.False(t, Filter{Category: &frontend}.Matches(p))
	assert.False(t, Filter{Featured: &featured}.Matches(p))
}
