package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-planta/internal/application/alerts"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// AlertHandler maneja las alertas de check-out vencido (protegido).
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas con filtros
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        status      query  string  false  "UNRESOLVED, RESOLVED o ALL"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	filter := repository.AlertFilter{
		ProductID: c.Query("product_id"),
		Status:    c.Query("status"),
	}
	var err error
	if filter.FromDate, err = parseTimeQuery(c, "from"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	if filter.ToDate, err = parseTimeQuery(c, "to"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListFiltered(c.UserContext(), filter, page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ListUnresolved godoc
// @Summary      Listar alertas pendientes
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/unresolved [get]
func (h *AlertHandler) ListUnresolved(c *fiber.Ctx) error {
	out, err := h.uc.ListUnresolved(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Escanear check-outs vencidos ahora
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        threshold_hours  query  int  false  "Umbral en horas"  default(2)
// @Success      200  {object}  dto.ScanResponse
// @Router       /api/alerts/scan [post]
func (h *AlertHandler) Scan(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold_hours", 0)
	created, err := h.uc.ScanOverdueCheckouts(c.UserContext(), threshold)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ScanResponse{AlertsCreated: created})
}

// Resolve godoc
// @Summary      Resolver una alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Ya resuelta"
// @Router       /api/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Resolve(c.UserContext(), id, GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
