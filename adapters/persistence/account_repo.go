package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/account"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresAccountRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAccountRepo(db *pgxpool.Pool, logger logger.Logger) account.Repository {
	return &postgresAccountRepo{db: db, logger: logger}
}

const accountColumns = `id, name, email, phone, summary, about, counters, profile_image_url, profile_image_id, version, created_at, updated_at`

func (r *postgresAccountRepo) GetOrCreate(ctx context.Context, defaults *account.Account) (*account.Account, error) {
	countersBytes, err := json.Marshal(defaults.Counters)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal account counters", err)
	}

	insert := `
		INSERT INTO account_info (id, name, email, phone, summary, about, counters, profile_image_url, profile_image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING
	`
	_, err = r.db.Exec(ctx, insert,
		defaults.ID, defaults.Name, defaults.Email, defaults.Phone, defaults.Summary, defaults.About,
		countersBytes, defaults.ProfileImageURL, defaults.ProfileImageID,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to insert default account info", err)
	}

	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM account_info WHERE singleton`)
	return r.scan(row)
}

func (r *postgresAccountRepo) scan(row pgx.Row) (*account.Account, error) {
	a := &account.Account{}
	var countersBytes []byte

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Summary,
		&a.About,
		&countersBytes,
		&a.ProfileImageURL,
		&a.ProfileImageID,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("account info", "singleton")
		}
		return nil, apperror.NewInternal("failed to scan account info", err)
	}

	if err := json.Unmarshal(countersBytes, &a.Counters); err != nil {
		r.logger.Warn("Failed to unmarshal account counters", zap.String("account_id", a.ID.String()), zap.Error(err))
		a.Counters = account.Counters{}
	}
	return a, nil
}

func (r *postgresAccountRepo) Update(ctx context.Context, a *account.Account) error {
	countersBytes, err := json.Marshal(a.Counters)
	if err != nil {
		return apperror.NewInternal("failed to marshal account counters for update", err)
	}

	query := `
		UPDATE account_info SET
			name = $2, email = $3, phone = $4, summary = $5, about = $6, counters = $7,
			profile_image_url = $8, profile_image_id = $9,
			version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING version, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		a.ID, a.Name, a.Email, a.Phone, a.Summary, a.About, countersBytes,
		a.ProfileImageURL, a.ProfileImageID,
	).Scan(&a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("account info", a.ID.String())
		}
		return apperror.NewInternal("failed to update account info", err)
	}
	return nil
}
