package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// AuditHandler exposes the audit trail to super users.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /v1/audit.
//
// @Summary      List recent audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return (default 100)"
// @Success      200    {object}  listAuditResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	events, err := h.service.List(c.Request().Context(), role, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditResponse(events))
}
