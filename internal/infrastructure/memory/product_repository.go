package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
	inTx  bool
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un producto nuevo; SKU duplicado devuelve ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		for _, p := range d.products {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		d.products[product.ID] = cloneProduct(product)
		d.productOrder = append(d.productOrder, product.ID)
		return nil
	})
}

// GetByID obtiene un producto por ID (incluye archivados).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.access(r.inTx, func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			out = cloneProduct(p)
		}
		return nil
	})
	return out, err
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.access(r.inTx, func(d *dataset) error {
		for _, p := range d.products {
			if p.SKU == sku {
				out = cloneProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: el lock del Store ya serializa la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update modifica metadatos; no toca CurrentStock.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		cur, ok := d.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := cloneProduct(product)
		next.CurrentStock = cur.CurrentStock
		next.Archived = cur.Archived
		d.products[product.ID] = next
		return nil
	})
}

// UpdateStock fija el stock cacheado del producto.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CurrentStock = stock
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Archive marca el producto como archivado.
func (r *ProductRepo) Archive(_ context.Context, id string) error {
	return r.store.access(r.inTx, func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Archived = true
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// List devuelve los productos no archivados en orden de creación.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.access(r.inTx, func(d *dataset) error {
		out = make([]*entity.Product, 0, len(d.productOrder))
		for _, id := range d.productOrder {
			if p := d.products[id]; !p.Archived {
				out = append(out, cloneProduct(p))
			}
		}
		return nil
	})
	return out, err
}
