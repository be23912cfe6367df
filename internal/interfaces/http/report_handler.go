package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/application/reports"
)

// ReportHandler agregados diarios de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.DailyUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.DailyUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Daily godoc
// @Summary      Resumen diario de movimientos y alertas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Fecha (yyyy-MM-dd), por defecto hoy"
// @Success      200   {object}  dto.DailySummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválida (yyyy-MM-dd)"})
		}
		date = parsed
	}
	out, err := h.uc.Summary(c.UserContext(), date)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
