package repository

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// InventoryLogRepository puerto del ledger de inventario. Solo inserciones: nunca se actualiza ni elimina.
type InventoryLogRepository interface {
	Append(ctx context.Context, entry *entity.InventoryLogEntry) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error)
	SumByProduct(ctx context.Context, productID string) (int, error)
}
