package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/application/usecase"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// MovementHandler consultas de bitácora y stock (protegido, solo lectura).
type MovementHandler struct {
	uc *usecase.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        user_id      query  string  false  "Filtrar por usuario"
// @Param        action_type  query  string  false  "CHECK_IN, CHECK_OUT, TRANSFER o ALL"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		UserID:     c.Query("user_id"),
		ActionType: c.Query("action_type"),
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
	out, err := h.uc.ListMovements(filter, page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// StockByProduct godoc
// @Summary      Stock de un producto por ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LocationStockResponse
// @Router       /api/products/{id}/stock [get]
func (h *MovementHandler) StockByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListStockByProduct(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// StockByLocation godoc
// @Summary      Stock de una ubicación por producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.ProductStockResponse
// @Router       /api/locations/{id}/stock [get]
func (h *MovementHandler) StockByLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListStockByLocation(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// parseTimeQuery parsea un query param RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		UserID:         m.UserID,
		ActionType:     m.ActionType,
		Quantity:       m.Quantity,
		Timestamp:      m.Timestamp,
		Notes:          m.Notes,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
	}
}
