package supplychain

import "github.com/jhoicas/Abastecimiento-api/internal/domain/entity"

// HealthStatus banda del puntaje de salud.
type HealthStatus string

// Bandas de salud: < 60 CRITICAL, < 80 WARNING, resto HEALTHY.
const (
	HealthCritical HealthStatus = "CRITICAL"
	HealthWarning  HealthStatus = "WARNING"
	HealthHealthy  HealthStatus = "HEALTHY"
)

const (
	criticalStockRatio     = 0.2
	criticalItemPenalty    = 5
	maxCriticalPenalty     = 40
	openPOPenalty          = 3
	maxOpenPOPenalty       = 20
	defaultAvgReliability  = 90.0
	reliabilityBonusAnchor = 80.0
)

// HealthReport resultado del cálculo de salud con sus componentes.
type HealthReport struct {
	Score           float64
	Status          HealthStatus
	CriticalCount   int
	CriticalPenalty float64
	POPenalty       float64
	AvgReliability  float64
	SupplierBonus   float64
}

// IsCriticalStock indica si el stock está por debajo del 20% del nivel óptimo.
func IsCriticalStock(p *entity.Product) bool {
	return float64(p.CurrentStock) < criticalStockRatio*float64(p.OptimalStockLevel)
}

// ComputeHealth agrega productos, proveedores y órdenes abiertas (DRAFT/APPROVED) en un puntaje [0,100].
//
//	score = clamp(100 - min(críticos*5, 40) - min(abiertas*3, 20) + (confiabilidad_media-80)/2, 0, 100)
//
// Sin proveedores la confiabilidad media es 90.
func ComputeHealth(products []*entity.Product, suppliers []*entity.Supplier, openPOCount int) HealthReport {
	critical := 0
	for _, p := range products {
		if IsCriticalStock(p) {
			critical++
		}
	}
	criticalPenalty := float64(min(critical*criticalItemPenalty, maxCriticalPenalty))
	poPenalty := float64(min(max(openPOCount, 0)*openPOPenalty, maxOpenPOPenalty))

	avg := defaultAvgReliability
	if len(suppliers) > 0 {
		sum := 0.0
		for _, s := range suppliers {
			sum += s.ReliabilityScore
		}
		avg = sum / float64(len(suppliers))
	}
	bonus := (avg - reliabilityBonusAnchor) / 2

	score := 100 - criticalPenalty - poPenalty + bonus
	score = max(0, min(100, score))

	return HealthReport{
		Score:           score,
		Status:          HealthBand(score),
		CriticalCount:   critical,
		CriticalPenalty: criticalPenalty,
		POPenalty:       poPenalty,
		AvgReliability:  avg,
		SupplierBonus:   bonus,
	}
}

// HealthBand clasifica un puntaje con umbrales semiabiertos en el límite inferior.
func HealthBand(score float64) HealthStatus {
	switch {
	case score < 60:
		return HealthCritical
	case score < 80:
		return HealthWarning
	default:
		return HealthHealthy
	}
}
