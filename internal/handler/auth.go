package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

// AuthHandler implements the operator login boundary.  Account
// management itself (creating operators, assigning roles) belongs to
// the surrounding administration tool; this service only verifies
// credentials and issues short-lived access tokens.
type AuthHandler struct {
	Users        *repository.UserRepo
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *repository.UserRepo, jwtSecret string, accessTTLMin int) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, JWTSecret: jwtSecret, AccessTTLMin: accessTTLMin}
}

// Login handles POST /v1/auth/login.  On valid credentials it returns
// a signed access token and its expiry.  Invalid credentials and
// unknown accounts are indistinguishable in the response.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	user, err := h.Users.GetByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.CheckPassword(user.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.Role, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
		"role":         user.Role,
	})
}
