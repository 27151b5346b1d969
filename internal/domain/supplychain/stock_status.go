package supplychain

import "github.com/jhoicas/Abastecimiento-api/internal/domain/entity"

// StockStatus clasificación de un producto frente a su stock de seguridad.
type StockStatus string

// Estados de stock del análisis de inventario.
const (
	StockCritical StockStatus = "CRITICAL"
	StockLow      StockStatus = "LOW"
	StockOK       StockStatus = "OK"
)

// ClassifyStock: por debajo del stock de seguridad CRITICAL, por debajo de 1.2x LOW, resto OK.
// Devuelve además la acción sugerida.
func ClassifyStock(p *entity.Product) (StockStatus, string) {
	current := float64(p.CurrentStock)
	safety := float64(p.SafetyStockLevel)
	switch {
	case current < safety:
		return StockCritical, "Reponer de inmediato."
	case current < safety*1.2:
		return StockLow, "Planificar reorden pronto."
	default:
		return StockOK, "Óptimo"
	}
}

// SupplierVerdict veredicto de desempeño de un proveedor.
type SupplierVerdict string

// Veredictos del análisis de proveedores.
const (
	VerdictPreferred    SupplierVerdict = "PREFERRED"
	VerdictAtRisk       SupplierVerdict = "AT_RISK"
	VerdictReviewNeeded SupplierVerdict = "REVIEW_NEEDED"
)

// ClassifySupplier combina confiabilidad y tasa de órdenes recibidas (0–100).
func ClassifySupplier(reliability, completionRate float64) SupplierVerdict {
	switch {
	case reliability >= 90 && completionRate >= 85:
		return VerdictPreferred
	case reliability < 70 || completionRate < 60:
		return VerdictAtRisk
	default:
		return VerdictReviewNeeded
	}
}
