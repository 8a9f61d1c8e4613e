package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/booking"
	"github.com/iliyamo/venue-booking/internal/model"
)

// EngineHandler exposes the four engine operations over HTTP.  All
// routes assume JWT authentication and role validation have already
// run in middleware.
type EngineHandler struct {
	Engine *booking.Engine
}

// NewEngineHandler constructs an EngineHandler.
func NewEngineHandler(engine *booking.Engine) *EngineHandler {
	if engine == nil {
		panic("nil engine passed to NewEngineHandler")
	}
	return &EngineHandler{Engine: engine}
}

// showResponse is the wire shape of a show.  The model types carry no
// JSON tags; responses are mapped explicitly.
type showResponse struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	PriceCents uint32 `json:"price_cents"`
	LayoutID   uint64 `json:"layout_id"`
	Status     string `json:"status"`
}

func toShowResponse(s *model.Show) showResponse {
	return showResponse{
		ID:         s.ID,
		Title:      s.Title,
		Date:       s.Date,
		Time:       s.StartTime,
		PriceCents: s.PriceCents,
		LayoutID:   s.LayoutID,
		Status:     s.Status,
	}
}

// ListShows handles GET /v1/shows.  Listing reconciles each show
// through the status machine before returning, so the statuses in the
// response reflect the current clock and occupancy.  Optional query
// parameters `status` and `date` filter the result.
func (h *EngineHandler) ListShows(c echo.Context) error {
	filter := booking.ShowFilter{
		Status: c.QueryParam("status"),
		Date:   c.QueryParam("date"),
	}
	shows, err := h.Engine.ListShows(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list shows"})
	}
	items := make([]showResponse, 0, len(shows))
	for i := range shows {
		items = append(items, toShowResponse(&shows[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListAvailableSeats handles GET /v1/shows/:id/seats.  It returns the
// full seat universe of the show with per-seat occupancy flags.
func (h *EngineHandler) ListAvailableSeats(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	seats, err := h.Engine.ListAvailableSeats(c.Request().Context(), showID)
	if err != nil {
		return engineError(c, err)
	}
	occupied := 0
	for _, s := range seats {
		if s.Occupied {
			occupied++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id":  showID,
		"capacity": len(seats),
		"occupied": occupied,
		"items":    seats,
	})
}

// Book handles POST /v1/shows/:id/bookings.  The request body carries
// the selected seat identifiers and the customer name.  A conflict
// returns 409 with the exact contested seats so the operator can
// re-select precisely.
func (h *EngineHandler) Book(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var body struct {
		SeatIDs  []string `json:"seat_ids"`
		BookedBy string   `json:"booked_by"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Engine.Book(c.Request().Context(), showID, body.SeatIDs, body.BookedBy)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":   b.ID,
		"show_id":      b.ShowID,
		"seats":        booking.DecodeSeatCode(b.SeatCode),
		"booked_by":    b.BookedBy,
		"booking_time": b.BookingTime,
		"status":       b.Status,
	})
}

// CancelBooking handles DELETE /v1/bookings/:id.  It marks the
// booking CANCELLED, revokes its tickets and frees its seats.
func (h *EngineHandler) CancelBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Engine.CancelBooking(c.Request().Context(), bookingID); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// engineError maps engine error taxonomy onto HTTP responses.
func engineError(c echo.Context, err error) error {
	var vErr *booking.ValidationError
	var cErr *booking.ConflictError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Reason})
	case errors.As(err, &cErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":             "seats unavailable",
			"conflicting_seats": cErr.ConflictingSeats,
		})
	case errors.Is(err, booking.ErrShowNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	case errors.Is(err, booking.ErrLayoutNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
