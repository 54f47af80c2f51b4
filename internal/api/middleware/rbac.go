package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/crm-system/internal/api/metrics"
)

// RBAC restricts a route to the given roles. It runs after Auth and reads
// the role claim from context; anything outside the allow list is rejected
// with 403 before the handler runs.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("route").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
