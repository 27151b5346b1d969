package memory

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	store *Store
	inTx  bool
}

// NewSupplierRepository construye el repositorio fuera de transacción.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

// Create persiste un proveedor; nombre repetido devuelve ErrDuplicateName.
func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		for _, s := range d.suppliers {
			if s.Name == supplier.Name {
				return domain.ErrDuplicateName
			}
		}
		d.suppliers[supplier.ID] = cloneSupplier(supplier)
		d.supplierOrder = append(d.supplierOrder, supplier.ID)
		return nil
	})
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.store.access(r.inTx, func(d *dataset) error {
		if s, ok := d.suppliers[id]; ok {
			out = cloneSupplier(s)
		}
		return nil
	})
	return out, err
}

// GetByName obtiene un proveedor por nombre exacto.
func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, s := range d.suppliers {
			if s.Name == name {
				out = cloneSupplier(s)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List devuelve los proveedores en orden de creación.
func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.store.access(r.inTx, func(d *dataset) error {
		out = make([]*entity.Supplier, 0, len(d.supplierOrder))
		for _, id := range d.supplierOrder {
			out = append(out, cloneSupplier(d.suppliers[id]))
		}
		return nil
	})
	return out, err
}
