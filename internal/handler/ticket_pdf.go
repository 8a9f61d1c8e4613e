package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// TicketHandler serves printable tickets.  PDF rendering is
// presentation, not engine logic, so it reads the store directly
// through the repositories.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Shows   *repository.ShowRepo
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(tickets *repository.TicketRepo, shows *repository.ShowRepo) *TicketHandler {
	if tickets == nil || shows == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Shows: shows}
}

// GetTicketPDF handles GET /v1/tickets/:code/pdf.  It renders a
// single-page A4 ticket with the booking details and a QR code
// carrying the ticket code for entry verification.  Revoked tickets
// are not printable.
func (h *TicketHandler) GetTicketPDF(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket code"})
	}
	ctx := c.Request().Context()
	t, err := h.Tickets.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if t.Status == model.TicketRevoked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket revoked"})
	}
	show, err := h.Shows.GetByID(ctx, t.ShowID)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	pdfBytes, err := renderTicketPDF(t, show)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render ticket"})
	}
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// renderTicketPDF builds the one-page ticket document.
func renderTicketPDF(t *model.Ticket, show *model.Show) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "VENUE BOOKING eTICKET")
	pdf.Ln(20)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "TICKET DETAILS")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Show: %s", show.Title))
	pdf.Ln(6)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s  %s", show.Date, show.StartTime))
	pdf.Ln(6)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Seat: %s", t.SeatCode))
	pdf.Ln(6)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Price: %.2f", float64(t.PriceCents)/100))
	pdf.Ln(6)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Ticket: %s", t.TicketCode))

	qrBytes, err := qrcode.Encode(t.TicketCode, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 63)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Scan this QR code for entry verification.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
