package memory

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo ledger en memoria; solo agrega entradas.
type InventoryLogRepo struct {
	store *Store
	inTx  bool
}

// NewInventoryLogRepository construye el repositorio fuera de transacción.
func NewInventoryLogRepository(store *Store) *InventoryLogRepo {
	return &InventoryLogRepo{store: store}
}

// Append agrega una entrada al ledger.
func (r *InventoryLogRepo) Append(_ context.Context, entry *entity.InventoryLogEntry) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		cp := *entry
		d.logs = append(d.logs, &cp)
		return nil
	})
}

// ListByProduct entradas del producto, más recientes primero.
func (r *InventoryLogRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	var out []*entity.InventoryLogEntry
	err := r.store.access(r.inTx, func(d *dataset) error {
		out = []*entity.InventoryLogEntry{}
		skipped := 0
		for i := len(d.logs) - 1; i >= 0; i-- {
			e := d.logs[i]
			if e.ProductID != productID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			cp := *e
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// SumByProduct suma de quantity_change del producto.
func (r *InventoryLogRepo) SumByProduct(_ context.Context, productID string) (int, error) {
	sum := 0
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, e := range d.logs {
			if e.ProductID == productID {
				sum += e.QuantityChange
			}
		}
		return nil
	})
	return sum, err
}
