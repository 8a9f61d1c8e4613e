package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// TicketRepo provides persistence for tickets.  Tickets are created
// atomically with their booking and bulk-transitioned when the owning
// show finishes or the owning booking is cancelled.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateBulkTx inserts multiple tickets in a single statement inside
// the provided transaction.  Passing an empty slice has no effect.
func (r *TicketRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (booking_id, show_id, seat_code, ticket_code, price_cents, status) VALUES `
	args := make([]interface{}, 0, len(tickets)*6)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, t.BookingID, t.ShowID, t.SeatCode, t.TicketCode, t.PriceCents, t.Status)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CompleteByShow bulk-updates all ACTIVE tickets for a show to
// COMPLETED.  Runs when the status machine moves the show to
// SHOW_DONE.
func (r *TicketRepo) CompleteByShow(ctx context.Context, showID uint64) error {
	const q = `UPDATE tickets SET status = 'COMPLETED' WHERE show_id = ? AND status = 'ACTIVE'`
	_, err := r.db.ExecContext(ctx, q, showID)
	return err
}

// RevokeByBookingTx marks every ticket of a booking REVOKED within
// the provided transaction.
func (r *TicketRepo) RevokeByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	const q = `UPDATE tickets SET status = 'REVOKED' WHERE booking_id = ?`
	_, err := tx.ExecContext(ctx, q, bookingID)
	return err
}

// GetByCode retrieves a ticket by its unique ticket code.  Returns
// ErrTicketNotFound when no row exists.
func (r *TicketRepo) GetByCode(ctx context.Context, code string) (*model.Ticket, error) {
	const q = `SELECT id, booking_id, show_id, seat_code, ticket_code, price_cents, status, created_at
	           FROM tickets WHERE ticket_code = ?`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, code).
		Scan(&t.ID, &t.BookingID, &t.ShowID, &t.SeatCode, &t.TicketCode, &t.PriceCents, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}
