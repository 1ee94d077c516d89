package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

const portfolioColumns = "id, title, description, image_url, image_public_id, github_url, live_url, category, featured, created_at, updated_at"

func scanPortfolioItem(row pgx.Row) (*portfolio.Item, error) {
	p := &portfolio.Item{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.ImageURL,
		&p.ImagePublicID,
		&p.GithubURL,
		&p.LiveURL,
		&p.Category,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio item", "")
		}
		return nil, apperror.NewInternal("failed to scan portfolio item row", err)
	}
	return p, nil
}

func (r *postgresPortfolioRepo) Save(ctx context.Context, p *portfolio.Item) error {
	query := `
		INSERT INTO portfolio_items (id, title, description, image_url, image_public_id, github_url, live_url, category, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.ImageURL, p.ImagePublicID,
		p.GithubURL, p.LiveURL, p.Category, p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("portfolio item", "id", p.ID.String())
		}
		return apperror.NewInternal("failed to save portfolio item", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Update(ctx context.Context, p *portfolio.Item) error {
	query := `
		UPDATE portfolio_items SET
			title = $2, description = $3, image_url = $4, image_public_id = $5,
			github_url = $6, live_url = $7, category = $8, featured = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.ImageURL, p.ImagePublicID,
		p.GithubURL, p.LiveURL, p.Category, p.Featured,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("portfolio item", p.ID.String())
		}
		return apperror.NewInternal("failed to update portfolio item", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete portfolio item", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio item", id.String())
	}
	return nil
}

func (r *postgresPortfolioRepo) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = $1`, id)
	p, err := scanPortfolioItem(row)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("portfolio item", id.String())
	}
	return p, err
}

func (r *postgresPortfolioRepo) List(ctx context.Context, filter portfolio.Filter) ([]*portfolio.Item, error) {
	builder := psql.Select(portfolioColumns).
		From("portfolio_items").
		OrderBy("created_at ASC", "id ASC")
	if filter.Category != nil {
		builder = builder.Where(sq.Eq{"category": string(*filter.Category)})
	}
	if filter.Featured != nil {
		builder = builder.Where(sq.Eq{"featured": *filter.Featured})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list portfolio items query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query portfolio items", err)
	}
	defer rows.Close()

	items := make([]*portfolio.Item, 0)
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating portfolio item rows", err)
	}
	return items, nil
}
