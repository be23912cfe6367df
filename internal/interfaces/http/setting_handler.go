package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// SettingHandler configuración operativa persistida (protegido).
// El planificador de alertas relee estas claves en caliente.
type SettingHandler struct {
	repo repository.SettingRepository
}

// NewSettingHandler construye el handler.
func NewSettingHandler(repo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

type settingBody struct {
	Value string `json:"value"`
}

// Get godoc
// @Summary      Leer una clave de configuración
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.repo.Get(key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clave no encontrada"})
		}
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

// Set godoc
// @Summary      Escribir una clave de configuración
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string       true  "Clave"
// @Param        body  body  settingBody  true  "Valor"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [put]
func (h *SettingHandler) Set(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "key es requerida"})
	}
	var in settingBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.repo.Set(key, in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "value": in.Value})
}
