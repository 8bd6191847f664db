package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// AuditHandler exposes the audit trail to superadmins.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns audit events, newest first.
//
// @Summary      List audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        skip      query     int     false  "Offset"
// @Param        limit     query     int     false  "Page size (1-1000)"
// @Param        username  query     string  false  "Subject username"
// @Param        type      query     string  false  "Event type, e.g. auth.login_failed"
// @Success      200       {object}  listResponse[domain.AuditEvent]
// @Failure      403       {object}  errorBody
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	events, total, err := h.repo.List(c.Request().Context(), domain.AuditFilter{
		Username: c.QueryParam("username"),
		Type:     domain.AuditType(c.QueryParam("type")),
		Page:     page,
	})
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.AuditEvent{}
	}

	return c.JSON(http.StatusOK, listResponse[*domain.AuditEvent]{
		Items: events,
		Total: total,
		Skip:  page.Skip,
		Limit: page.Limit,
	})
}
