package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo ledger append-only sobre la tabla inventory_logs.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta una entrada del ledger.
func (r *InventoryLogRepo) Append(ctx context.Context, e *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_logs (id, product_id, quantity_change, reason, resulting_stock, stockout_flag, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.QuantityChange, e.Reason, e.ResultingStock, e.StockoutFlag, e.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByProduct devuelve las entradas del producto, más recientes primero.
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, product_id, quantity_change, reason, resulting_stock, stockout_flag, changed_at
		FROM inventory_logs WHERE product_id = $1
		ORDER BY changed_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.QuantityChange, &e.Reason, &e.ResultingStock, &e.StockoutFlag, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByProduct suma quantity_change del producto (0 si no hay entradas).
func (r *InventoryLogRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_change), 0)::INTEGER FROM inventory_logs WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum inventory logs: %w", err)
	}
	return total, nil
}
