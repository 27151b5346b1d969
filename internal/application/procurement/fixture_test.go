package procurement_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/memory"
)

// stubNarrator generador de narrativa controlado por el test.
type stubNarrator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []ports.NarrativeContext
}

func (s *stubNarrator) Explain(_ context.Context, nc ports.NarrativeContext) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, nc)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubNarrator) lastCall() ports.NarrativeContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

type fixture struct {
	store     *memory.Store
	products  *memory.ProductRepo
	suppliers *memory.SupplierRepo
	orders    *memory.PurchaseOrderRepo
	logs      *memory.InventoryLogRepo
	narrator  *stubNarrator

	procurement *procurement.ProcurementUseCase
	supplierUC  *procurement.SupplierUseCase
	poUC        *procurement.PurchaseOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		products:  memory.NewProductRepository(store),
		suppliers: memory.NewSupplierRepository(store),
		orders:    memory.NewPurchaseOrderRepository(store),
		logs:      memory.NewInventoryLogRepository(store),
		narrator:  &stubNarrator{text: "texto generado"},
	}
	tx := memory.NewTxRunner(store)
	f.procurement = procurement.NewProcurementUseCase(tx, f.narrator, time.Second)
	f.supplierUC = procurement.NewSupplierUseCase(tx, f.suppliers, f.orders, f.narrator, time.Second)
	f.poUC = procurement.NewPurchaseOrderUseCase(tx, f.orders, f.suppliers, f.products, &fakeRenderer{})
	return f
}

func (f *fixture) addProduct(t *testing.T, id string, stock, optimal int, price int64) {
	t.Helper()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID:                id,
		SKU:               "SKU-" + id,
		Name:              "Producto " + id,
		Category:          "Metales",
		Stage:             entity.StageRawMaterial,
		CurrentStock:      stock,
		SafetyStockLevel:  optimal / 5,
		OptimalStockLevel: optimal,
		UnitPrice:         decimal.NewFromInt(price),
	}))
	if stock > 0 {
		require.NoError(t, f.logs.Append(context.Background(), &entity.InventoryLogEntry{
			ID: "seed-" + id, ProductID: id, QuantityChange: stock, Reason: "Stock inicial", ResultingStock: stock,
		}))
	}
}

func (f *fixture) addSupplier(t *testing.T, name string, reliability float64, days int, price int64) string {
	t.Helper()
	out, err := f.supplierUC.Create(context.Background(), dto.CreateSupplierRequest{
		Name:              name,
		Category:          "Metales",
		ReliabilityScore:  reliability,
		DeliverySpeedDays: days,
		PricePerUnit:      decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return out.SupplierID
}

func (f *fixture) createPO(t *testing.T, supplierID, productID string, qty int) *dto.CreatePOResponse {
	t.Helper()
	out, err := f.poUC.Create(context.Background(), dto.CreatePORequest{
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   qty,
		UnitPrice:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) advance(t *testing.T, poID string, statuses ...entity.POStatus) {
	t.Helper()
	for _, st := range statuses {
		_, err := f.poUC.SetStatus(context.Background(), poID, string(st))
		require.NoError(t, err, "transición a %s", st)
	}
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) ledgerSum(t *testing.T, productID string) int {
	t.Helper()
	sum, err := f.logs.SumByProduct(context.Background(), productID)
	require.NoError(t, err)
	return sum
}

type fakeRenderer struct {
	last ports.PODocument
}

func (r *fakeRenderer) RenderPurchaseOrder(doc ports.PODocument) ([]byte, error) {
	r.last = doc
	return []byte(fmt.Sprintf("%%PDF %s", doc.Order.PONumber)), nil
}
