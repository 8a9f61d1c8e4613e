package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// LayoutRepo provides read access to the layouts table.  The engine
// treats structure_json as an opaque blob; decoding happens in the
// layout package.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

// GetByID retrieves a layout by its primary key.  Returns
// ErrLayoutNotFound when no row exists.
func (r *LayoutRepo) GetByID(ctx context.Context, id uint64) (*model.Layout, error) {
	const q = `SELECT id, name, structure_json, created_at, updated_at
	           FROM layouts WHERE id = ?`
	var l model.Layout
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&l.ID, &l.Name, &l.StructureJSON, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &l, nil
}
