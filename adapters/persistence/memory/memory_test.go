package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

func TestAccountGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepo()

	first, err := repo.GetOrCreate(ctx, &account.Account{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, &account.Account{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada", second.Name)
	assert.EqualValues(t, 1, second.Version)
}

func TestAccountUpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepo()
	a, err := repo.GetOrCreate(ctx, &account.Account{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	a.Summary = "updated"
	require.NoError(t, repo.Update(ctx, a))
	assert.EqualValues(t, 2, a.Version)

	got, err := repo.GetOrCreate(ctx, &account.Account{})
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Summary)
	assert.EqualValues(t, 2, got.Version)
}

func TestSkillRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSkillRepo()
	s := &skill.SkillSet{ID: uuid.New(), Category: skill.CategoryAIML, Skills: []skill.Skill{{Name: "PyTorch", Level: 70}}}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	got.Skills[0].Level = 1

	again, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, again.Skills[0].Level)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMessageListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepo()
	older := &message.Message{ID: uuid.New(), Subject: "first", CreatedAt: time.Now().Add(-time.Minute)}
	newer := &message.Message{ID: uuid.New(), Subject: "second", CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Subject)
}

func TestTokenRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewTokenRevoker()
	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
