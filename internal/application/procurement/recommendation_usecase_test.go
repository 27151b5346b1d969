package procurement_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
)

func TestGetRecommendations_EscenarioReferencia(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 50, 500, 10)
	f.addProduct(t, "p2", 400, 500, 10) // 80%: no es candidato
	f.addSupplier(t, "Aceros del Norte", 95, 3, 10)
	f.narrator.text = "Reponer ya: stock al 10%."

	recs, err := f.procurement.GetRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "p1", r.ProductID)
	assert.Equal(t, "CRITICAL", r.Urgency)
	assert.Equal(t, 450, r.QuantityNeeded)
	assert.True(t, decimal.NewFromInt(4500).Equal(r.EstimatedCost))
	assert.Equal(t, 80.0, r.SupplierScore)
	assert.Equal(t, "Aceros del Norte", r.SupplierName)
	assert.Equal(t, 10.0, r.StockPercentage)
	assert.Equal(t, "Reponer ya: stock al 10%.", r.Reasoning)
	assert.Equal(t, ports.TopicUrgencyReasoning, f.narrator.lastCall().Topic)
}

func TestGetRecommendations_SinProveedoresListaVacia(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 5, 100, 10)

	recs, err := f.procurement.GetRecommendations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGetRecommendations_FuncionaSinGenerador(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.addProduct(t, fmt.Sprintf("p%02d", i), i*3, 100, 2)
	}
	f.addSupplier(t, "Aceros del Norte", 90, 5, 2)
	f.narrator.err = errors.New("sin cuota")

	recs, err := f.procurement.GetRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 10, "tope de 10 recomendaciones")
	for i, r := range recs {
		assert.Contains(t, r.Reasoning, r.ProductName, "respaldo determinista")
		if i > 0 {
			assert.LessOrEqual(t, recs[i-1].StockPercentage, r.StockPercentage)
		}
	}
}
