package procurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Create / Score
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSupplier_PuntajeInicialYDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.CreateSupplierRequest{
		Name:              "Aceros del Norte",
		ContactEmail:      "ventas@aceros.test",
		Category:          "Metales",
		ReliabilityScore:  95,
		DeliverySpeedDays: 3,
		PricePerUnit:      decimal.NewFromInt(10),
	}

	out, err := f.supplierUC.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.SupplierID)
	assert.Equal(t, 86.0, out.InitialTrustScore, "sin precio de referencia el eje de precio es neutral")

	_, err = f.supplierUC.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	list, err := f.supplierUC.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "el duplicado no debe persistir")
}

func TestCreateSupplier_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := dto.CreateSupplierRequest{Name: "X", Category: "Metales", ReliabilityScore: 50, DeliverySpeedDays: 2}

	bad := base
	bad.DeliverySpeedDays = 0
	_, err := f.supplierUC.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = base
	bad.ReliabilityScore = 101
	_, err = f.supplierUC.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = base
	bad.PricePerUnit = decimal.NewFromInt(-1)
	_, err = f.supplierUC.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = base
	bad.Name = "  "
	_, err = f.supplierUC.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestScoreSupplier_ConYSinReferencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addSupplier(t, "Aceros del Norte", 95, 3, 10)

	ref := decimal.NewFromInt(10)
	out, err := f.supplierUC.Score(ctx, id, &ref)
	require.NoError(t, err)
	assert.Equal(t, 80.0, out.Score)
	require.NotNil(t, out.ReferencePrice)

	zero := decimal.Zero
	out, err = f.supplierUC.Score(ctx, id, &zero)
	require.NoError(t, err)
	assert.Equal(t, 86.0, out.Score)
	assert.Nil(t, out.ReferencePrice, "precio 0 se trata como ausente")

	_, err = f.supplierUC.Score(ctx, "no-existe", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.supplierUC.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Analyze / NegotiationEmail
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyzeSuppliers_Veredictos(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10, 100, 10)
	good := f.addSupplier(t, "Confiable", 95, 3, 10)
	f.addSupplier(t, "Nuevo", 95, 3, 10)
	risky := f.addSupplier(t, "Riesgoso", 65, 10, 10)

	po := f.createPO(t, good, "p1", 5)
	f.advance(t, po.ID, entity.POStatusApproved, entity.POStatusInTransit, entity.POStatusReceived)
	f.createPO(t, risky, "p1", 5)

	items, err := f.supplierUC.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	byName := map[string]dto.SupplierAnalysisItem{}
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.Equal(t, "PREFERRED", byName["Confiable"].Verdict)
	assert.Equal(t, 100.0, byName["Confiable"].CompletionRate)
	assert.Equal(t, 1, byName["Confiable"].ReceivedPOs)

	assert.Equal(t, 0, byName["Nuevo"].TotalPOs)
	assert.Equal(t, "AT_RISK", byName["Nuevo"].Verdict, "sin órdenes la tasa es 0")

	assert.Equal(t, "AT_RISK", byName["Riesgoso"].Verdict)
	assert.Equal(t, 86.0, byName["Confiable"].OverallScore)
}

func TestNegotiationEmail_UsaOrdenesRecientes(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10, 100, 10)
	id := f.addSupplier(t, "Aceros del Norte", 92, 4, 10)
	for i := 0; i < 7; i++ {
		f.createPO(t, id, "p1", 10) // 10 x 10 = 100 cada una
	}
	f.narrator.text = "Estimados, conversemos precios."

	out, err := f.supplierUC.NegotiationEmail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalPOs)
	assert.True(t, decimal.NewFromInt(500).Equal(out.TotalVolume))
	assert.Equal(t, "Estimados, conversemos precios.", out.Email)

	call := f.narrator.lastCall()
	assert.Equal(t, ports.TopicNegotiationEmail, call.Topic)
	assert.Contains(t, call.Facts, ports.NarrativeFact{Key: "recent_volume", Value: "500.00"})
}

func TestNegotiationEmail_RespaldoAnteFalla(t *testing.T) {
	f := newFixture(t)
	id := f.addSupplier(t, "Aceros del Norte", 92, 4, 10)
	f.narrator.err = errors.New("timeout")

	out, err := f.supplierUC.NegotiationEmail(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, out.Email, "Aceros del Norte")
	assert.Equal(t, 0, out.TotalPOs)

	_, err = f.supplierUC.NegotiationEmail(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
