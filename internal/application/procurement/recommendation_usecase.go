package procurement

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

// GetRecommendations devuelve hasta 10 sugerencias de compra ordenadas por urgencia y porcentaje de stock,
// cada una con el razonamiento en texto.
func (uc *ProcurementUseCase) GetRecommendations(ctx context.Context) ([]dto.RecommendationResponse, error) {
	snap, err := uc.readSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	recs := supplychain.Recommend(snap.products, snap.suppliers)
	out := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.RecommendationResponse{
			ProductID:       r.Product.ID,
			SKU:             r.Product.SKU,
			ProductName:     r.Product.Name,
			CurrentStock:    r.Product.CurrentStock,
			OptimalStock:    r.Product.OptimalStockLevel,
			StockPercentage: roundTo(r.StockPercentage, 1),
			Urgency:         string(r.Urgency),
			QuantityNeeded:  r.QuantityNeeded,
			UnitPrice:       r.Product.UnitPrice,
			EstimatedCost:   r.EstimatedCost,
			SupplierID:      r.Supplier.ID,
			SupplierName:    r.Supplier.Name,
			SupplierScore:   r.SupplierScore,
			DeliveryDays:    r.Supplier.DeliverySpeedDays,
			Reasoning:       uc.urgencyReasoning(ctx, r),
		})
	}
	return out, nil
}

func (uc *ProcurementUseCase) urgencyReasoning(ctx context.Context, r supplychain.Recommendation) string {
	fallback := fmt.Sprintf(
		"%s está al %.1f%% de su nivel óptimo (%s). Se sugiere pedir %d unidades a %s, puntaje %.1f y entrega en %d días.",
		r.Product.Name, r.StockPercentage, r.Urgency, r.QuantityNeeded, r.Supplier.Name, r.SupplierScore, r.Supplier.DeliverySpeedDays,
	)
	return uc.narrator.explain(ctx, ports.NarrativeContext{
		Topic: ports.TopicUrgencyReasoning,
		Facts: []ports.NarrativeFact{
			fact("product", r.Product.Name),
			fact("sku", r.Product.SKU),
			fact("current_stock", strconv.Itoa(r.Product.CurrentStock)),
			fact("optimal_stock", strconv.Itoa(r.Product.OptimalStockLevel)),
			fact("stock_percentage", strconv.FormatFloat(r.StockPercentage, 'f', 1, 64)),
			fact("urgency", string(r.Urgency)),
			fact("quantity_needed", strconv.Itoa(r.QuantityNeeded)),
			fact("estimated_cost", r.EstimatedCost.StringFixed(2)),
			fact("supplier", r.Supplier.Name),
			fact("supplier_score", strconv.FormatFloat(r.SupplierScore, 'f', 2, 64)),
			fact("delivery_days", strconv.Itoa(r.Supplier.DeliverySpeedDays)),
		},
	}, fallback)
}
