package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación en memoria de PurchaseOrderRepository.
type PurchaseOrderRepo struct {
	store *Store
	inTx  bool
}

// NewPurchaseOrderRepository construye el repositorio fuera de transacción.
func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{store: store}
}

// Create persiste la orden con sus ítems; número repetido devuelve ErrDuplicate.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		for _, o := range d.orders {
			if o.PONumber == po.PONumber {
				return domain.ErrDuplicate
			}
		}
		d.orders[po.ID] = cloneOrder(po)
		d.orderSeq = append(d.orderSeq, po.ID)
		return nil
	})
}

// GetByID obtiene la orden con sus ítems.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.store.access(r.inTx, func(d *dataset) error {
		if po, ok := d.orders[id]; ok {
			out = cloneOrder(po)
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: el lock del Store ya serializa la transacción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus cambia el estado y, si se indica, la fecha de recepción.
func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, id string, status entity.POStatus, receivedAt *time.Time) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		po, ok := d.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		po.Status = status
		if receivedAt != nil {
			t := *receivedAt
			po.ReceivedAt = &t
		}
		po.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// List devuelve las órdenes de la más reciente a la más antigua.
func (r *PurchaseOrderRepo) List(_ context.Context) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.store.access(r.inTx, func(d *dataset) error {
		out = make([]*entity.PurchaseOrder, 0, len(d.orderSeq))
		for i := len(d.orderSeq) - 1; i >= 0; i-- {
			out = append(out, cloneOrder(d.orders[d.orderSeq[i]]))
		}
		return nil
	})
	return out, err
}

// ListBySupplier órdenes del proveedor, más recientes primero; limit <= 0 sin límite.
func (r *PurchaseOrderRepo) ListBySupplier(_ context.Context, supplierID string, limit int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.store.access(r.inTx, func(d *dataset) error {
		out = []*entity.PurchaseOrder{}
		for i := len(d.orderSeq) - 1; i >= 0; i-- {
			po := d.orders[d.orderSeq[i]]
			if po.SupplierID != supplierID {
				continue
			}
			out = append(out, cloneOrder(po))
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// CountByStatus cuenta las órdenes en cualquiera de los estados indicados.
func (r *PurchaseOrderRepo) CountByStatus(_ context.Context, statuses ...entity.POStatus) (int, error) {
	n := 0
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, po := range d.orders {
			for _, st := range statuses {
				if po.Status == st {
					n++
					break
				}
			}
		}
		return nil
	})
	return n, err
}

// CountByNumberPrefix cuenta órdenes cuyo número inicia con prefix.
func (r *PurchaseOrderRepo) CountByNumberPrefix(_ context.Context, prefix string) (int, error) {
	n := 0
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, po := range d.orders {
			if strings.HasPrefix(po.PONumber, prefix) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountOpenByProduct cuenta órdenes no recibidas con alguna línea del producto.
func (r *PurchaseOrderRepo) CountOpenByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, po := range d.orders {
			if po.Status == entity.POStatusReceived {
				continue
			}
			for _, it := range po.Items {
				if it.ProductID == productID {
					n++
					break
				}
			}
		}
		return nil
	})
	return n, err
}
