package supplychain

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// Urgency nivel de prioridad de reposición derivado del porcentaje de stock.
type Urgency string

// Niveles de urgencia, de mayor a menor.
const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
)

// MaxRecommendations límite de candidatos evaluados por corrida (truncamiento deliberado).
const MaxRecommendations = 10

const replenishmentRatio = 0.5

// Rank posición de orden: CRITICAL < HIGH < MEDIUM.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	default:
		return 2
	}
}

// Recommendation sugerencia de compra: producto, mejor proveedor, urgencia y costo estimado.
type Recommendation struct {
	Product         *entity.Product
	Supplier        *entity.Supplier
	Urgency         Urgency
	StockPercentage float64
	QuantityNeeded  int
	EstimatedCost   decimal.Decimal
	SupplierScore   float64
}

// NeedsReplenishment indica si el stock está por debajo del 50% del nivel óptimo.
func NeedsReplenishment(p *entity.Product) bool {
	return p.OptimalStockLevel > 0 && float64(p.CurrentStock) < replenishmentRatio*float64(p.OptimalStockLevel)
}

// ClassifyUrgency: p < 20 CRITICAL, 20 <= p < 35 HIGH, resto MEDIUM.
func ClassifyUrgency(stockPct float64) Urgency {
	switch {
	case stockPct < 20:
		return UrgencyCritical
	case stockPct < 35:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// Recommend genera las recomendaciones de compra ordenadas por urgencia y luego por porcentaje de stock.
// Listas vacías producen una lista vacía; un producto sin proveedor posible se omite.
func Recommend(products []*entity.Product, suppliers []*entity.Supplier) []Recommendation {
	out := []Recommendation{}
	if len(products) == 0 || len(suppliers) == 0 {
		return out
	}

	// 1. Candidatos bajo el 50% del óptimo, los 10 con menor porcentaje
	candidates := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if NeedsReplenishment(p) {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lessByStockPct(candidates[i], candidates[j])
	})
	if len(candidates) > MaxRecommendations {
		candidates = candidates[:MaxRecommendations]
	}

	// 2. Mejor proveedor, urgencia, cantidad y costo
	for _, p := range candidates {
		supplier, score, ok := BestSupplier(p, suppliers)
		if !ok {
			continue
		}
		pct := p.StockPercentage()
		qty := max(0, p.OptimalStockLevel-p.CurrentStock)
		out = append(out, Recommendation{
			Product:         p,
			Supplier:        supplier,
			Urgency:         ClassifyUrgency(pct),
			StockPercentage: pct,
			QuantityNeeded:  qty,
			EstimatedCost:   decimal.NewFromInt(int64(qty)).Mul(p.UnitPrice).Round(2),
			SupplierScore:   score,
		})
	}

	// 3. Orden final: urgencia, porcentaje de stock, ID y nombre del producto
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		return lessByStockPct(a.Product, b.Product)
	})
	return out
}

// BestSupplier elige el proveedor de mayor puntaje para el producto usando su precio como referencia.
// Filtra por categoría y, si no hay coincidencias, usa todos los proveedores.
// Empates: menor tiempo de entrega, luego menor ID, luego nombre.
func BestSupplier(p *entity.Product, suppliers []*entity.Supplier) (*entity.Supplier, float64, bool) {
	pool := make([]*entity.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if s.Category == p.Category {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		pool = suppliers
	}
	if len(pool) == 0 {
		return nil, 0, false
	}

	ref := p.UnitPrice
	var best *entity.Supplier
	bestScore := 0.0
	for _, s := range pool {
		score := ScoreSupplier(s, &ref)
		if best == nil || betterSupplier(s, score, best, bestScore) {
			best, bestScore = s, score
		}
	}
	return best, bestScore, true
}

func betterSupplier(s *entity.Supplier, score float64, cur *entity.Supplier, curScore float64) bool {
	if score != curScore {
		return score > curScore
	}
	if s.DeliverySpeedDays != cur.DeliverySpeedDays {
		return s.DeliverySpeedDays < cur.DeliverySpeedDays
	}
	if s.ID != cur.ID {
		return s.ID < cur.ID
	}
	return s.Name < cur.Name
}

func lessByStockPct(a, b *entity.Product) bool {
	pa, pb := a.StockPercentage(), b.StockPercentage()
	if pa != pb {
		return pa < pb
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Name < b.Name
}
