package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/message"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresMessageRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresMessageRepo(db *pgxpool.Pool, logger logger.Logger) message.Repository {
	return &postgresMessageRepo{db: db, logger: logger}
}

const messageColumns = "id, name, email, subject, message, is_read, created_at, updated_at"

func scanMessage(row pgx.Row) (*message.Message, error) {
	m := &message.Message{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.IsRead, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("message", "")
		}
		return nil, apperror.NewInternal("failed to scan message row", err)
	}
	return m, nil
}

func (r *postgresMessageRepo) Save(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Body, m.IsRead, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("message", "id", m.ID.String())
		}
		return apperror.NewInternal("failed to save message", err)
	}
	return nil
}

func (r *postgresMessageRepo) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*message.Message, error) {
	query := `
		UPDATE contact_messages SET is_read = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + messageColumns
	m, err := scanMessage(r.db.QueryRow(ctx, query, id, isRead))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("message", id.String())
	}
	return m, err
}

func (r *postgresMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete message", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("message", id.String())
	}
	return nil
}

func (r *postgresMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	m, err := scanMessage(r.db.QueryRow(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("message", id.String())
	}
	return m, err
}

func (r *postgresMessageRepo) List(ctx context.Context) ([]*message.Message, error) {
	sql, args, err := psql.Select(messageColumns).
		From("contact_messages").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list messages query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query messages", err)
	}
	defer rows.Close()

	msgs := make([]*message.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating message rows", err)
	}
	return msgs, nil
}
