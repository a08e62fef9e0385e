package postgres

import (
	"context"
	"fmt"

	"github.com/bnxs304/aniarchive-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	emailConstraint = "entrants_email_key"
	codeConstraint  = "entrants_raffle_code_key"
)

type EntrantRepository struct {
	pool *pgxpool.Pool
}

func NewEntrantRepository(pool *pgxpool.Pool) *EntrantRepository {
	return &EntrantRepository{pool: pool}
}

func (r *EntrantRepository) FindByEmail(ctx context.Context, email string) (*domain.Entrant, error) {
	const query = `
SELECT id, email, raffle_code, event_title, event_date, created_at
FROM entrants
WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *EntrantRepository) FindByCode(ctx context.Context, code string) (*domain.Entrant, error) {
	const query = `
SELECT id, email, raffle_code, event_title, event_date, created_at
FROM entrants
WHERE raffle_code = $1`
	return r.findOne(ctx, query, code)
}

// CreateEntrant inserts a new record. The unique indexes are the
// authoritative duplicate check: a violation on the email index maps to
// ErrDuplicateEntrant, one on the raffle-code index to
// ErrRaffleCodeTaken, so concurrent registrations cannot slip past the
// earlier point lookups. The insert runs outside any transaction so
// the caller can retry a code conflict with a fresh statement.
func (r *EntrantRepository) CreateEntrant(ctx context.Context, entrant domain.Entrant) error {
	const stmt = `
INSERT INTO entrants (id, email, raffle_code, event_title, event_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, stmt,
		entrant.ID,
		entrant.Email,
		entrant.RaffleCode,
		entrant.EventTitle,
		entrant.EventDate,
		entrant.CreatedAt,
	)
	if err != nil {
		switch uniqueConstraint(err) {
		case emailConstraint:
			return domain.ErrDuplicateEntrant
		case codeConstraint:
			return domain.ErrRaffleCodeTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create entrant: %w", err)
	}
	return nil
}

func (r *EntrantRepository) ListAll(ctx context.Context) ([]domain.Entrant, error) {
	const query = `
SELECT id, email, raffle_code, event_title, event_date, created_at
FROM entrants
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list entrants: %w", err)
	}
	defer rows.Close()

	var entrants []domain.Entrant
	for rows.Next() {
		var e domain.Entrant
		if err := rows.Scan(&e.ID, &e.Email, &e.RaffleCode, &e.EventTitle, &e.EventDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entrant: %w", err)
		}
		entrants = append(entrants, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate entrants: %w", rows.Err())
	}
	return entrants, nil
}

func (r *EntrantRepository) findOne(ctx context.Context, query string, arg any) (*domain.Entrant, error) {
	var e domain.Entrant
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&e.ID, &e.Email, &e.RaffleCode, &e.EventTitle, &e.EventDate, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find entrant: %w", err)
	}
	return &e, nil
}
