package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/crm-system/internal/api/metrics"
	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// LeadHandler handles lead requests. Isolation is enforced by the service:
// callers only see leads assigned to or created by themselves.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Create handles POST /v1/leads.
//
// @Summary      Create a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.Create(c.Request().Context(), ports.Actor{ID: actorID, Role: role}, toCreateLeadInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toLeadResponse(lead))
}

// List handles GET /v1/leads with status/priority/search/limit/offset query
// parameters. All supplied filters are ANDed.
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Funnel stage filter"
// @Param        priority  query     string  false  "Priority filter"
// @Param        search    query     string  false  "Case-insensitive match on name, email, destination"
// @Param        limit     query     int     false  "Page size (default 50, max 200)"
// @Param        offset    query     int     false  "Rows to skip (default 0)"
// @Success      200       {object}  listLeadsResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "offset must be a non-negative integer")
	}

	scope := "all"
	if role == domain.RoleCaller {
		scope = "isolated"
	}
	start := time.Now()

	result, err := h.service.List(c.Request().Context(), ports.Actor{ID: actorID, Role: role}, ports.ListLeadsInput{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	metrics.LeadQueryDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, toListLeadsResponse(result))
}

// Get handles GET /v1/leads/:id.
//
// @Summary      Get a lead by id
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  leadResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	lead, err := h.service.Get(c.Request().Context(), ports.Actor{ID: actorID, Role: role}, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// UpdateStatus handles PUT /v1/leads/:id/status.
//
// @Summary      Update a lead's funnel stage
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Lead id"
// @Param        body  body      updateLeadStatusRequest  true  "New status"
// @Success      200   {object}  leadResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.UpdateStatus(c.Request().Context(), ports.Actor{ID: actorID, Role: role}, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// queryInt parses an optional non-negative integer query parameter.
// Absent parameters return 0; the service applies its own defaults.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.ErrBadRequest
	}
	return n, nil
}
