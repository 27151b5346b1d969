package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

// AnalyzeInventory clasifica cada producto frente a su stock de seguridad (CRITICAL, LOW, OK)
// con la acción sugerida. Los críticos aparecen primero.
func (uc *LedgerUseCase) AnalyzeInventory(ctx context.Context) ([]dto.InventoryAnalysisItem, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryAnalysisItem, 0, len(products))
	for _, p := range products {
		status, advice := supplychain.ClassifyStock(p)
		items = append(items, dto.InventoryAnalysisItem{
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			CurrentStock:   p.CurrentStock,
			SafetyStock:    p.SafetyStockLevel,
			Status:         string(status),
			Recommendation: advice,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return stockStatusRank(items[i].Status) < stockStatusRank(items[j].Status)
	})
	return items, nil
}

func stockStatusRank(s string) int {
	switch supplychain.StockStatus(s) {
	case supplychain.StockCritical:
		return 0
	case supplychain.StockLow:
		return 1
	default:
		return 2
	}
}
