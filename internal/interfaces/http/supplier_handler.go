package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
)

// SupplierHandler maneja proveedores: alta, consulta, puntaje, análisis y correo de negociación.
type SupplierHandler struct {
	uc *procurement.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *procurement.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.CreateSupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/procurement/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/procurement/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Score godoc
// @Summary      Puntaje del proveedor
// @Description  Sin reference_price (o con valor <= 0) la componente de precio usa el valor neutro.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id               path   string  true   "ID del proveedor"
// @Param        reference_price  query  string  false  "Precio de referencia"
// @Success      200  {object}  dto.SupplierScoreResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/suppliers/{id}/score [get]
func (h *SupplierHandler) Score(c *fiber.Ctx) error {
	var ref *decimal.Decimal
	if raw := c.Query("reference_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: reference_price no es numérico", domain.ErrValidation))
		}
		ref = &d
	}
	out, err := h.uc.Score(c.Context(), c.Params("id"), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Analysis godoc
// @Summary      Análisis de proveedores
// @Description  Tasa de cumplimiento, puntaje y veredicto (PREFERRED, REVIEW_NEEDED, AT_RISK).
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierAnalysisItem
// @Router       /api/procurement/suppliers/analysis [get]
func (h *SupplierHandler) Analysis(c *fiber.Ctx) error {
	out, err := h.uc.Analyze(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NegotiationEmail godoc
// @Summary      Borrador de correo de negociación
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.NegotiationEmailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/suppliers/{id}/negotiation-email [post]
func (h *SupplierHandler) NegotiationEmail(c *fiber.Ctx) error {
	out, err := h.uc.NegotiationEmail(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
