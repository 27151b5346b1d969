package repository

import (
	"context"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	// Create devuelve domain.ErrDuplicateName si el nombre ya existe.
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	// List devuelve todos los proveedores en orden de creación.
	List(ctx context.Context) ([]*entity.Supplier, error)
}
