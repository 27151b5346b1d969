package memory

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el Store: lock exclusivo durante fn y restauración del estado previo si falla.
// Dentro de fn solo deben usarse los repositorios recibidos; los repositorios sueltos del mismo Store bloquearían.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la transacción; si fn devuelve error se descartan sus cambios.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.data.clone()
	if err := fn(r.txRepos()); err != nil {
		r.store.data = snapshot
		return err
	}
	return nil
}

// RunReadOnly mantiene el lock durante fn, así ninguna escritura se intercala entre sus lecturas.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.txRepos())
}

func (r *TxRunner) txRepos() ports.TxRepos {
	return ports.TxRepos{
		Products:       &ProductRepo{store: r.store, inTx: true},
		Suppliers:      &SupplierRepo{store: r.store, inTx: true},
		PurchaseOrders: &PurchaseOrderRepo{store: r.store, inTx: true},
		InventoryLogs:  &InventoryLogRepo{store: r.store, inTx: true},
	}
}
