package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra y sus ítems.
type PurchaseOrderRepository interface {
	// Create persiste la cabecera y sus ítems.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus ítems o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate igual que GetByID pero bloquea la fila de la orden (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.POStatus, receivedAt *time.Time) error
	// List devuelve las órdenes (con ítems) de la más reciente a la más antigua.
	List(ctx context.Context) ([]*entity.PurchaseOrder, error)
	ListBySupplier(ctx context.Context, supplierID string, limit int) ([]*entity.PurchaseOrder, error)
	CountByStatus(ctx context.Context, statuses ...entity.POStatus) (int, error)
	// CountByNumberPrefix cuenta las órdenes cuyo número inicia con prefix; serializa la numeración dentro de la tx.
	CountByNumberPrefix(ctx context.Context, prefix string) (int, error)
	// CountOpenByProduct cuenta órdenes no recibidas que referencian el producto.
	CountOpenByProduct(ctx context.Context, productID string) (int, error)
}
