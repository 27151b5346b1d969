package ports

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products       repository.ProductRepository
	Suppliers      repository.SupplierRepository
	PurchaseOrders repository.PurchaseOrderRepository
	InventoryLogs  repository.InventoryLogRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
	// RunReadOnly ejecuta fn sobre una instantánea consistente; fn no debe escribir.
	RunReadOnly(ctx context.Context, fn func(repos TxRepos) error) error
}
