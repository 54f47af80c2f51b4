package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// a recognised role must be present, their presence proves the middleware
// ran and the token was well formed.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	role = domain.Role(roleStr)

	if userID == "" || !domain.ValidRole(role) {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return userID, role, nil
}
