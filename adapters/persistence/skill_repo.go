package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanSkillSet(row pgx.Row, l logger.Logger) (*skill.SkillSet, error) {
	s := &skill.SkillSet{}
	var skillsBytes []byte

	err := row.Scan(&s.ID, &s.Category, &skillsBytes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("skill set", "")
		}
		return nil, apperror.NewInternal("failed to scan skill set row", err)
	}

	if err := json.Unmarshal(skillsBytes, &s.Skills); err != nil {
		l.Warn("Failed to unmarshal skills", zap.String("skill_set_id", s.ID.String()), zap.Error(err))
		s.Skills = []skill.Skill{}
	}
	return s, nil
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *skill.SkillSet) error {
	skillsBytes, err := json.Marshal(s.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}

	query := `
		INSERT INTO skill_sets (id, category, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(ctx, query, s.ID, s.Category, skillsBytes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("skill set", "id", s.ID.String())
		}
		return apperror.NewInternal("failed to save skill set", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.SkillSet) error {
	skillsBytes, err := json.Marshal(s.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills for update", err)
	}

	query := `
		UPDATE skill_sets SET category = $2, skills = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, s.ID, s.Category, skillsBytes).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("skill set", s.ID.String())
		}
		return apperror.NewInternal("failed to update skill set", err)
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM skill_sets WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete skill set", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill set", id.String())
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.SkillSet, error) {
	query := `SELECT id, category, skills, created_at, updated_at FROM skill_sets WHERE id = $1`
	s, err := scanSkillSet(r.db.QueryRow(ctx, query, id), r.logger)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("skill set", id.String())
	}
	return s, err
}

func (r *postgresSkillRepo) List(ctx context.Context) ([]*skill.SkillSet, error) {
	sql, args, err := psql.Select("id, category, skills, created_at, updated_at").
		From("skill_sets").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skill sets query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skill sets", err)
	}
	defer rows.Close()

	sets := make([]*skill.SkillSet, 0)
	for rows.Next() {
		s, err := scanSkillSet(rows, r.logger)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill set rows", err)
	}
	return sets, nil
}
