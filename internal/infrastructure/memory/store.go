// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo, demos) y como doble de repositorios en los tests.
package memory

import (
	"sync"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// Store contenedor de datos compartido por todos los repositorios en memoria.
// Un único mutex serializa el acceso; TxRunner lo mantiene tomado durante toda la transacción.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

type dataset struct {
	products      map[string]*entity.Product
	productOrder  []string
	suppliers     map[string]*entity.Supplier
	supplierOrder []string
	orders        map[string]*entity.PurchaseOrder
	orderSeq      []string
	logs          []*entity.InventoryLogEntry
	users         map[string]*entity.User
}

func newDataset() *dataset {
	return &dataset{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		orders:    make(map[string]*entity.PurchaseOrder),
		users:     make(map[string]*entity.User),
	}
}

// clone copia profunda usada como punto de restauración de una transacción.
func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.products {
		c.products[k] = cloneProduct(v)
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = cloneSupplier(v)
	}
	for k, v := range d.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	c.productOrder = append([]string(nil), d.productOrder...)
	c.supplierOrder = append([]string(nil), d.supplierOrder...)
	c.orderSeq = append([]string(nil), d.orderSeq...)
	c.logs = make([]*entity.InventoryLogEntry, len(d.logs))
	for i, e := range d.logs {
		cp := *e
		c.logs[i] = &cp
	}
	return c
}

// access ejecuta fn sobre los datos; si el repo pertenece a una transacción el lock ya está tomado.
func (s *Store) access(inTx bool, fn func(d *dataset) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func cloneSupplier(s *entity.Supplier) *entity.Supplier {
	cp := *s
	return &cp
}

func cloneOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *po
	cp.Items = append([]entity.POItem(nil), po.Items...)
	if po.ReceivedAt != nil {
		t := *po.ReceivedAt
		cp.ReceivedAt = &t
	}
	return &cp
}
