package httpapi

import (
	"net/http"
	"strings"

	"github.com/absingh09/mydocuments/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// Identity is the authenticated caller, reconstructed from token claims on
// every request. No database lookup is performed, so name and email may go
// stale relative to the account record until the token expires.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// bearerAuth extracts and validates the bearer token from the Authorization
// header and stores the resolved Identity in the request context. Missing,
// malformed, invalid and expired tokens all yield 401.
func (s *Server) bearerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Not authenticated"})
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Not authenticated"})
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Could not validate credentials"})
		}

		c.Set(identityKey, Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
			Name:   claims.Name,
		})

		return next(c)
	}
}

func currentIdentity(c echo.Context) Identity {
	id, _ := c.Get(identityKey).(Identity)
	return id
}
