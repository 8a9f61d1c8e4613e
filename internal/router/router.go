package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the operator login endpoint.  Login lives
// under /v1/auth and requires no token; everything else under /v1
// does.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterEngine registers the booking engine endpoints.  All routes
// require a valid operator access token with the OPERATOR or ADMIN
// role, and pass through the token-bucket limiter when one is
// configured.
func RegisterEngine(e *echo.Echo, eh *handler.EngineHandler, th *handler.TicketHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OPERATOR", "ADMIN"))
	if limiter != nil {
		g.Use(limiter)
	}

	// Listing shows reconciles their lifecycle states as a side effect.
	g.GET("/shows", eh.ListShows)
	// Seat universe with occupancy flags for the seat-selection screen.
	g.GET("/shows/:id/seats", eh.ListAvailableSeats)
	// Conflict-checked booking commit.
	g.POST("/shows/:id/bookings", eh.Book)
	// Cancellation frees the seats and revokes the tickets.
	g.DELETE("/bookings/:id", eh.CancelBooking)
	// Printable ticket with QR code.
	g.GET("/tickets/:code/pdf", th.GetTicketPDF)
}
