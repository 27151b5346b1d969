package supplychain_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

func newProduct(id string, stock, optimal int, price int64) *entity.Product {
	return &entity.Product{
		ID:                id,
		SKU:               "SKU-" + id,
		Name:              "Producto " + id,
		Category:          "Metales",
		CurrentStock:      stock,
		SafetyStockLevel:  optimal / 5,
		OptimalStockLevel: optimal,
		UnitPrice:         decimal.NewFromInt(price),
	}
}

// Stock 50 de 500 (10%) con proveedor 95/3 días/precio 10 => CRITICAL, 450 unidades, puntaje 80.
func TestRecommend_EscenarioReferencia(t *testing.T) {
	p := newProduct("p1", 50, 500, 10)
	s := newSupplier("s1", 95, 3, 10)

	recs := supplychain.Recommend([]*entity.Product{p}, []*entity.Supplier{s})
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, supplychain.UrgencyCritical, r.Urgency)
	assert.Equal(t, 450, r.QuantityNeeded)
	assert.True(t, decimal.NewFromInt(4500).Equal(r.EstimatedCost))
	assert.Equal(t, 80.0, r.SupplierScore)
	assert.Equal(t, "s1", r.Supplier.ID)
	assert.InDelta(t, 10.0, r.StockPercentage, 1e-9)
}

func TestRecommend_ListasVaciasDevuelvenVacio(t *testing.T) {
	p := newProduct("p1", 10, 100, 5)
	s := newSupplier("s1", 90, 5, 5)

	assert.Empty(t, supplychain.Recommend(nil, []*entity.Supplier{s}))
	assert.Empty(t, supplychain.Recommend([]*entity.Product{p}, nil))
	assert.NotNil(t, supplychain.Recommend(nil, nil), "debe devolver lista vacía, no nil")
}

func TestRecommend_ExcluyeProductosSobreUmbral(t *testing.T) {
	products := []*entity.Product{
		newProduct("p1", 50, 100, 5), // 50% exacto: no es candidato
		newProduct("p2", 90, 100, 5),
		newProduct("p3", 0, 0, 5), // sin nivel óptimo
		newProduct("p4", 49, 100, 5),
	}
	recs := supplychain.Recommend(products, []*entity.Supplier{newSupplier("s1", 90, 5, 5)})
	require.Len(t, recs, 1)
	assert.Equal(t, "p4", recs[0].Product.ID)
	assert.Equal(t, supplychain.UrgencyMedium, recs[0].Urgency)
}

func TestRecommend_TopeDeDiezPorMenorPorcentaje(t *testing.T) {
	products := make([]*entity.Product, 0, 15)
	for i := 0; i < 15; i++ {
		// stock 44, 41, 38 ... el último es el más bajo
		products = append(products, newProduct(fmt.Sprintf("p%02d", i), 44-i*3, 100, 5))
	}
	recs := supplychain.Recommend(products, []*entity.Supplier{newSupplier("s1", 90, 5, 5)})
	require.Len(t, recs, supplychain.MaxRecommendations)

	for _, r := range recs {
		assert.Less(t, float64(r.Product.CurrentStock), 0.5*float64(r.Product.OptimalStockLevel))
		assert.NotContains(t, []string{"p00", "p01", "p02", "p03", "p04"}, r.Product.ID,
			"los 5 con mayor porcentaje quedan fuera del tope")
	}
}

func TestRecommend_BandasDeUrgencia(t *testing.T) {
	cases := []struct {
		stock int
		want  supplychain.Urgency
	}{
		{0, supplychain.UrgencyCritical},
		{19, supplychain.UrgencyCritical},
		{20, supplychain.UrgencyHigh},
		{34, supplychain.UrgencyHigh},
		{35, supplychain.UrgencyMedium},
		{49, supplychain.UrgencyMedium},
	}
	supplier := newSupplier("s1", 90, 5, 5)
	for _, tc := range cases {
		recs := supplychain.Recommend([]*entity.Product{newProduct("p", tc.stock, 100, 5)}, []*entity.Supplier{supplier})
		require.Len(t, recs, 1)
		assert.Equal(t, tc.want, recs[0].Urgency, "stock %d%%", tc.stock)
		assert.Equal(t, tc.want, supplychain.ClassifyUrgency(recs[0].StockPercentage))
	}
}

func TestRecommend_OrdenPorUrgenciaYPorcentaje(t *testing.T) {
	products := []*entity.Product{
		newProduct("medium", 40, 100, 5),
		newProduct("high", 25, 100, 5),
		newProduct("crit-10", 10, 100, 5),
		newProduct("crit-5", 5, 100, 5),
	}
	recs := supplychain.Recommend(products, []*entity.Supplier{newSupplier("s1", 90, 5, 5)})
	require.Len(t, recs, 4)

	ids := []string{recs[0].Product.ID, recs[1].Product.ID, recs[2].Product.ID, recs[3].Product.ID}
	assert.Equal(t, []string{"crit-5", "crit-10", "high", "medium"}, ids)
}

func TestBestSupplier_FiltraPorCategoriaYHaceFallback(t *testing.T) {
	p := newProduct("p1", 10, 100, 10)

	match := newSupplier("match", 60, 20, 19)
	other := newSupplier("other", 100, 1, 1)
	other.Category = "Textiles"

	best, _, ok := supplychain.BestSupplier(p, []*entity.Supplier{other, match})
	require.True(t, ok)
	assert.Equal(t, "match", best.ID, "debe preferir la categoría aunque otro puntúe más")

	best, _, ok = supplychain.BestSupplier(p, []*entity.Supplier{other})
	require.True(t, ok)
	assert.Equal(t, "other", best.ID, "sin coincidencias usa todos los proveedores")

	_, _, ok = supplychain.BestSupplier(p, nil)
	assert.False(t, ok)
}

func TestBestSupplier_DesempateDeterminista(t *testing.T) {
	p := newProduct("p1", 10, 100, 10)
	b := newSupplier("b", 90, 5, 10)
	a := newSupplier("a", 90, 5, 10)

	best, _, ok := supplychain.BestSupplier(p, []*entity.Supplier{b, a})
	require.True(t, ok)
	assert.Equal(t, "a", best.ID, "empate total: menor ID")

	// Mismo puntaje, gana el de menor tiempo de entrega aunque su ID sea mayor.
	// b: 0.36 + 0.25 + 0.15 = 0.76; z: 0.35 + 0.26 + 0.15 = 0.76
	fast := newSupplier("z", 87.5, 4, 10)
	best, score, _ := supplychain.BestSupplier(p, []*entity.Supplier{b, fast})
	assert.Equal(t, 76.0, score)
	assert.Equal(t, "z", best.ID)
}
