package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ShowRepo manages persistence for shows.  The engine mutates only
// the status column; all other columns are operator edited through
// the CRUD screens outside this service.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

const showColumns = `id, title, date, time, price_cents, layout_id, status, created_at, updated_at`

func scanShow(row interface{ Scan(...any) error }, s *model.Show) error {
	return row.Scan(&s.ID, &s.Title, &s.Date, &s.StartTime, &s.PriceCents,
		&s.LayoutID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a show by its primary key.  Returns
// ErrShowNotFound when no row exists.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ?`
	var s model.Show
	if err := scanShow(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns shows optionally filtered by status and/or date,
// ordered by date and start time ascending.  Empty filter values are
// ignored.
func (r *ShowRepo) List(ctx context.Context, status, date string) ([]model.Show, error) {
	q := `SELECT ` + showColumns + ` FROM shows WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	if date != "" {
		q += ` AND date = ?`
		args = append(args, date)
	}
	q += ` ORDER BY date, time, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]model.Show, 0)
	for rows.Next() {
		var s model.Show
		if err := scanShow(rows, &s); err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}

// UpdateStatus persists a lifecycle transition.  Returns
// ErrShowNotFound when the show does not exist.
func (r *ShowRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE shows SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the status already matches;
		// verify existence before reporting not found.
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrShowNotFound
			}
			return err
		}
	}
	return nil
}
