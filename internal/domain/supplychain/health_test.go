package supplychain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

func stockedProducts(total, critical int) []*entity.Product {
	list := make([]*entity.Product, 0, total)
	for i := 0; i < total; i++ {
		stock := 80
		if i < critical {
			stock = 10
		}
		list = append(list, &entity.Product{
			ID:                fmt.Sprintf("p%02d", i),
			CurrentStock:      stock,
			OptimalStockLevel: 100,
		})
	}
	return list
}

func suppliersWithReliability(values ...float64) []*entity.Supplier {
	list := make([]*entity.Supplier, 0, len(values))
	for i, v := range values {
		list = append(list, &entity.Supplier{ID: fmt.Sprintf("s%d", i), ReliabilityScore: v, DeliverySpeedDays: 5})
	}
	return list
}

// 12 productos, 3 críticos, 4 órdenes abiertas, confiabilidad media 88 => 100-15-12+4 = 77 WARNING.
func TestComputeHealth_EscenarioReferencia(t *testing.T) {
	report := supplychain.ComputeHealth(stockedProducts(12, 3), suppliersWithReliability(86, 88, 90), 4)

	assert.Equal(t, 3, report.CriticalCount)
	assert.Equal(t, 15.0, report.CriticalPenalty)
	assert.Equal(t, 12.0, report.POPenalty)
	assert.Equal(t, 4.0, report.SupplierBonus)
	assert.Equal(t, 77.0, report.Score)
	assert.Equal(t, supplychain.HealthWarning, report.Status)
}

func TestComputeHealth_PenalizacionesTopadas(t *testing.T) {
	report := supplychain.ComputeHealth(stockedProducts(30, 30), suppliersWithReliability(80), 50)
	assert.Equal(t, 40.0, report.CriticalPenalty)
	assert.Equal(t, 20.0, report.POPenalty)
	assert.Equal(t, 40.0, report.Score)
	assert.Equal(t, supplychain.HealthCritical, report.Status)
}

func TestComputeHealth_AcotadoEntre0y100(t *testing.T) {
	high := supplychain.ComputeHealth(nil, suppliersWithReliability(100, 100), 0)
	assert.Equal(t, 100.0, high.Score, "bono de +10 no debe superar 100")

	low := supplychain.ComputeHealth(stockedProducts(20, 20), suppliersWithReliability(0), 10)
	assert.Equal(t, 0.0, low.Score, "100-40-20-40 debe acotarse a 0")
	assert.Equal(t, supplychain.HealthCritical, low.Status)
}

func TestComputeHealth_SinProveedoresUsaConfiabilidad90(t *testing.T) {
	report := supplychain.ComputeHealth(stockedProducts(5, 2), nil, 1)
	assert.Equal(t, 90.0, report.AvgReliability)
	// 100 - 10 - 3 + 5
	assert.Equal(t, 92.0, report.Score)
	assert.Equal(t, supplychain.HealthHealthy, report.Status)
}

func TestHealthBand_Umbrales(t *testing.T) {
	cases := []struct {
		score float64
		want  supplychain.HealthStatus
	}{
		{0, supplychain.HealthCritical},
		{59.99, supplychain.HealthCritical},
		{60, supplychain.HealthWarning},
		{79.9, supplychain.HealthWarning},
		{80, supplychain.HealthHealthy},
		{100, supplychain.HealthHealthy},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, supplychain.HealthBand(tc.score), "score %v", tc.score)
	}
}

func TestIsCriticalStock_OptimoCeroNoEsCritico(t *testing.T) {
	assert.False(t, supplychain.IsCriticalStock(&entity.Product{CurrentStock: 0, OptimalStockLevel: 0}))
	assert.True(t, supplychain.IsCriticalStock(&entity.Product{CurrentStock: 19, OptimalStockLevel: 100}))
	assert.False(t, supplychain.IsCriticalStock(&entity.Product{CurrentStock: 20, OptimalStockLevel: 100}))
}
