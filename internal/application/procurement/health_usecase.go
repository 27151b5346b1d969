package procurement

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

// ProcurementUseCase lecturas del motor de decisión: salud de la cadena y recomendaciones de compra.
// Opera sobre una instantánea de productos, proveedores y órdenes; no modifica estado.
type ProcurementUseCase struct {
	txRunner ports.TxRunner
	narrator narrator
}

// NewProcurementUseCase construye el caso de uso. gen puede ser nil (solo textos de respaldo).
func NewProcurementUseCase(txRunner ports.TxRunner, gen ports.NarrativeGenerator, narrativeTimeout time.Duration) *ProcurementUseCase {
	return &ProcurementUseCase{
		txRunner: txRunner,
		narrator: newNarrator(gen, narrativeTimeout),
	}
}

// snapshot estado leído en una sola transacción de solo lectura.
type snapshot struct {
	products  []*entity.Product
	suppliers []*entity.Supplier
	pending   int
}

// readSnapshot lee productos, proveedores y (si withPending) las órdenes abiertas sobre la misma instantánea.
// La narrativa se genera después, fuera de la transacción.
func (uc *ProcurementUseCase) readSnapshot(ctx context.Context, withPending bool) (*snapshot, error) {
	var snap snapshot
	err := uc.txRunner.RunReadOnly(ctx, func(repos ports.TxRepos) error {
		var err error
		if snap.products, err = repos.Products.List(ctx); err != nil {
			return err
		}
		if snap.suppliers, err = repos.Suppliers.List(ctx); err != nil {
			return err
		}
		if withPending {
			snap.pending, err = repos.PurchaseOrders.CountByStatus(ctx, entity.POStatusDraft, entity.POStatusApproved)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetHealth calcula el puntaje de salud y adjunta el briefing matutino.
func (uc *ProcurementUseCase) GetHealth(ctx context.Context) (*dto.HealthResponse, error) {
	snap, err := uc.readSnapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	pending := snap.pending

	report := supplychain.ComputeHealth(snap.products, snap.suppliers, pending)
	score := roundTo(report.Score, 1)

	fallback := fmt.Sprintf(
		"Salud de la cadena de abastecimiento: %.1f/100 (%s). %d productos en nivel crítico y %d órdenes de compra pendientes de aprobación o envío.",
		score, report.Status, report.CriticalCount, pending,
	)
	briefing := uc.narrator.explain(ctx, ports.NarrativeContext{
		Topic: ports.TopicMorningBriefing,
		Facts: []ports.NarrativeFact{
			fact("health_score", strconv.FormatFloat(score, 'f', 1, 64)),
			fact("status", string(report.Status)),
			fact("critical_items", strconv.Itoa(report.CriticalCount)),
			fact("pending_pos", strconv.Itoa(pending)),
			fact("avg_supplier_reliability", strconv.FormatFloat(report.AvgReliability, 'f', 1, 64)),
		},
	}, fallback)

	return &dto.HealthResponse{
		Score:         score,
		Status:        string(report.Status),
		CriticalCount: report.CriticalCount,
		PendingPOs:    pending,
		Briefing:      briefing,
	}, nil
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
