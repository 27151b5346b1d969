package procurement_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/memory"
)

// 12 productos (3 críticos), 4 órdenes abiertas, confiabilidad media 88 => 77 WARNING.
func seedHealthScenario(t *testing.T, f *fixture) {
	for i := 0; i < 12; i++ {
		stock := 80
		if i < 3 {
			stock = 10
		}
		f.addProduct(t, fmt.Sprintf("p%02d", i), stock, 100, 5)
	}
	s1 := f.addSupplier(t, "Aceros del Norte", 86, 5, 5)
	f.addSupplier(t, "Metales Andinos", 88, 5, 5)
	f.addSupplier(t, "Fundiciones Sur", 90, 5, 5)

	// 4 abiertas (2 DRAFT, 2 APPROVED) + 1 IN_TRANSIT + 1 RECEIVED que no cuentan
	for i := 0; i < 6; i++ {
		po := f.createPO(t, s1, fmt.Sprintf("p%02d", i), 10)
		switch i {
		case 2, 3:
			f.advance(t, po.ID, entity.POStatusApproved)
		case 4:
			f.advance(t, po.ID, entity.POStatusApproved, entity.POStatusInTransit)
		case 5:
			f.advance(t, po.ID, entity.POStatusApproved, entity.POStatusInTransit, entity.POStatusReceived)
		}
	}
}

func TestGetHealth_EscenarioReferencia(t *testing.T) {
	f := newFixture(t)
	seedHealthScenario(t, f)
	f.narrator.text = "  Buenos días: la cadena está en alerta.  "

	h, err := f.procurement.GetHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 77.0, h.Score)
	assert.Equal(t, "WARNING", h.Status)
	assert.Equal(t, 3, h.CriticalCount)
	assert.Equal(t, 4, h.PendingPOs)
	assert.Equal(t, "Buenos días: la cadena está en alerta.", h.Briefing)

	call := f.narrator.lastCall()
	assert.Equal(t, ports.TopicMorningBriefing, call.Topic)
	assert.Contains(t, call.Facts, ports.NarrativeFact{Key: "health_score", Value: "77.0"})
}

func TestGetHealth_FallaNarrativaUsaRespaldo(t *testing.T) {
	f := newFixture(t)
	seedHealthScenario(t, f)
	f.narrator.err = errors.New("servicio caído")

	h, err := f.procurement.GetHealth(context.Background())
	require.NoError(t, err, "la falla de narrativa no debe abortar el cálculo")
	assert.Equal(t, 77.0, h.Score)
	assert.Contains(t, h.Briefing, "77.0/100")
	assert.Contains(t, h.Briefing, "WARNING")
}

func TestGetHealth_NarrativaVaciaUsaRespaldo(t *testing.T) {
	f := newFixture(t)
	f.narrator.text = "   "

	h, err := f.procurement.GetHealth(context.Background())
	require.NoError(t, err)
	// Sin datos: 100 + (90-80)/2 acotado a 100
	assert.Equal(t, 100.0, h.Score)
	assert.Equal(t, "HEALTHY", h.Status)
	assert.Contains(t, h.Briefing, "100.0/100")
}

func TestGetHealth_IgnoraProductosArchivados(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 0, 100, 5)
	require.NoError(t, f.products.Archive(context.Background(), "p1"))

	h, err := f.procurement.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, h.CriticalCount)
}

// countingRunner registra cuántas lecturas pasan por una instantánea de solo lectura.
type countingRunner struct {
	ports.TxRunner
	readOnly int
	writes   int
}

func (r *countingRunner) RunReadOnly(ctx context.Context, fn func(ports.TxRepos) error) error {
	r.readOnly++
	return r.TxRunner.RunReadOnly(ctx, fn)
}

func (r *countingRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	r.writes++
	return r.TxRunner.Run(ctx, fn)
}

func TestLecturasUsanUnaSolaInstantanea(t *testing.T) {
	f := newFixture(t)
	seedHealthScenario(t, f)
	runner := &countingRunner{TxRunner: memory.NewTxRunner(f.store)}
	uc := procurement.NewProcurementUseCase(runner, f.narrator, time.Second)

	h, err := uc.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, h.CriticalCount)
	assert.Equal(t, 4, h.PendingPOs)

	_, err = uc.GetRecommendations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, runner.readOnly, "una instantánea por consulta")
	assert.Zero(t, runner.writes)
}
