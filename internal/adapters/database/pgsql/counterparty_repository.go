package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
)

type counterpartyRepository struct {
	pool *pgxpool.Pool
}

// NewCounterpartyRepository creates a new repository for vendors and customers.
func NewCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &counterpartyRepository{pool: pool}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*counterpartyRepository)(nil)

const counterpartyColumns = `counterparty_id, kind, name, email, phone, address, contact_name, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCounterparty(row pgx.Row) (*domain.Counterparty, error) {
	var cp domain.Counterparty
	var kind string
	err := row.Scan(
		&cp.CounterpartyID, &kind, &cp.Name, &cp.Email, &cp.Phone, &cp.Address, &cp.ContactName, &cp.Notes,
		&cp.CreatedAt, &cp.CreatedBy, &cp.LastUpdatedAt, &cp.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	cp.Kind = domain.CounterpartyKind(kind)
	return &cp, nil
}

// SaveCounterparty inserts a new counterparty.
func (r *counterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		cp.CounterpartyID, string(cp.Kind), cp.Name, cp.Email, cp.Phone, cp.Address, cp.ContactName, cp.Notes,
		cp.CreatedAt, cp.CreatedBy, cp.LastUpdatedAt, cp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save counterparty %s: %w", cp.CounterpartyID, err)
	}
	return nil
}

// FindCounterpartyByID retrieves a counterparty. Soft-deleted rows are not
// returned.
func (r *counterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE counterparty_id = $1 AND deleted_at IS NULL;`
	cp, err := scanCounterparty(r.pool.QueryRow(ctx, query, counterpartyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("counterparty %s: %w", counterpartyID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find counterparty %s: %w", counterpartyID, err)
	}
	return cp, nil
}

// ListCounterpartiesByKind retrieves every live counterparty of one kind,
// alphabetically.
func (r *counterpartyRepository) ListCounterpartiesByKind(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties
		WHERE kind = $1 AND deleted_at IS NULL
		ORDER BY name ASC;`
	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s counterparties: %w", kind, err)
	}
	defer rows.Close()

	var cps []domain.Counterparty
	for rows.Next() {
		cp, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty: %w", err)
		}
		cps = append(cps, *cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counterparties: %w", err)
	}
	return cps, nil
}

// UpdateCounterparty rewrites an existing counterparty.
func (r *counterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	query := `
		UPDATE counterparties SET
			name = $2, email = $3, phone = $4, address = $5, contact_name = $6, notes = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE counterparty_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query,
		cp.CounterpartyID, cp.Name, cp.Email, cp.Phone, cp.Address, cp.ContactName, cp.Notes,
		cp.LastUpdatedAt, cp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update counterparty %s: %w", cp.CounterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("counterparty %s: %w", cp.CounterpartyID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCounterparty soft-deletes a counterparty so historic documents can
// still resolve its name.
func (r *counterpartyRepository) DeleteCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error {
	query := `
		UPDATE counterparties SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE counterparty_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, counterpartyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete counterparty %s: %w", counterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("counterparty %s: %w", counterpartyID, apperrors.ErrNotFound)
	}
	return nil
}
