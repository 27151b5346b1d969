package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
)

// ProcurementHandler expone salud de la cadena y recomendaciones de compra.
type ProcurementHandler struct {
	uc *procurement.ProcurementUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Health godoc
// @Summary      Salud de la cadena de abastecimiento
// @Description  Puntaje 0–100, estado (HEALTHY, WARNING, CRITICAL) y resumen matutino.
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/procurement/health [get]
func (h *ProcurementHandler) Health(c *fiber.Ctx) error {
	out, err := h.uc.GetHealth(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recommendations godoc
// @Summary      Recomendaciones de compra
// @Description  Hasta 10 productos bajo su nivel de seguridad, ordenados por urgencia, con el mejor proveedor.
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecommendationResponse
// @Router       /api/procurement/recommendations [get]
func (h *ProcurementHandler) Recommendations(c *fiber.Ctx) error {
	out, err := h.uc.GetRecommendations(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "recommendations": out})
}
