package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, repo *memory.ProductRepo, id, sku string, stock int) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Product{
		ID:                id,
		SKU:               sku,
		Name:              "Producto " + sku,
		Category:          "Metales",
		Stage:             entity.StageRawMaterial,
		CurrentStock:      stock,
		OptimalStockLevel: 100,
		UnitPrice:         decimal.NewFromInt(10),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	logs := memory.NewInventoryLogRepository(store)
	seedProduct(t, products, "p1", "SKU-1", 10)

	boom := errors.New("falla simulada")
	err := memory.NewTxRunner(store).Run(ctx, func(repos ports.TxRepos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "p1", 99))
		require.NoError(t, repos.InventoryLogs.Append(ctx, &entity.InventoryLogEntry{ID: "l1", ProductID: "p1", QuantityChange: 89}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.CurrentStock, "el stock debe volver al valor previo")

	sum, err := logs.SumByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum, "la entrada del ledger no debe quedar")
}

func TestTxRunner_CommitPersisteCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seedProduct(t, products, "p1", "SKU-1", 10)

	err := memory.NewTxRunner(store).Run(ctx, func(repos ports.TxRepos) error {
		return repos.Products.UpdateStock(ctx, "p1", 25)
	})
	require.NoError(t, err)

	p, _ := products.GetByID(ctx, "p1")
	assert.Equal(t, 25, p.CurrentStock)
}

func TestTxRunner_ContextoCanceladoNoEjecuta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewTxRunner(memory.NewStore()).Run(ctx, func(ports.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// Una escritura concurrente no se intercala entre lecturas de RunReadOnly; se aplica al terminar.
func TestTxRunner_RunReadOnlyInstantaneaEstable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seedProduct(t, products, "p1", "SKU-1", 10)
	runner := memory.NewTxRunner(store)

	writeDone := make(chan error, 1)
	var first, second int
	err := runner.RunReadOnly(ctx, func(repos ports.TxRepos) error {
		p, err := repos.Products.GetByID(ctx, "p1")
		if err != nil {
			return err
		}
		first = p.CurrentStock

		go func() {
			writeDone <- runner.Run(ctx, func(w ports.TxRepos) error {
				return w.Products.UpdateStock(ctx, "p1", 70)
			})
		}()
		time.Sleep(20 * time.Millisecond)

		p, err = repos.Products.GetByID(ctx, "p1")
		if err != nil {
			return err
		}
		second = p.CurrentStock
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, first)
	assert.Equal(t, 10, second, "la lectura no debe ver la escritura concurrente")

	require.NoError(t, <-writeDone)
	p, _ := products.GetByID(ctx, "p1")
	assert.Equal(t, 70, p.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	seedProduct(t, repo, "p1", "SKU-1", 10)

	p, _ := repo.GetByID(ctx, "p1")
	p.CurrentStock = 500

	again, _ := repo.GetByID(ctx, "p1")
	assert.Equal(t, 10, again.CurrentStock, "mutar la copia no debe afectar el almacén")
}

func TestProductRepo_SKUDuplicadoYArchivado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	seedProduct(t, repo, "p1", "SKU-1", 10)
	seedProduct(t, repo, "p2", "SKU-2", 10)

	err := repo.Create(ctx, &entity.Product{ID: "p3", SKU: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, repo.Archive(ctx, "p1"))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)

	archived, _ := repo.GetByID(ctx, "p1")
	require.NotNil(t, archived)
	assert.True(t, archived.Archived)
}

func TestProductRepo_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	seedProduct(t, repo, "p1", "SKU-1", 10)

	p, _ := repo.GetByID(ctx, "p1")
	p.Name = "Nuevo nombre"
	p.CurrentStock = 999
	require.NoError(t, repo.Update(ctx, p))

	got, _ := repo.GetByID(ctx, "p1")
	assert.Equal(t, "Nuevo nombre", got.Name)
	assert.Equal(t, 10, got.CurrentStock)
}

func TestSupplierRepo_NombreDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSupplierRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.Supplier{ID: "s1", Name: "Acme"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Supplier{ID: "s2", Name: "Acme"}), domain.ErrDuplicateName)
}

func TestPurchaseOrderRepo_ConteosYOrden(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPurchaseOrderRepository(memory.NewStore())
	now := time.Now()
	orders := []*entity.PurchaseOrder{
		{ID: "o1", PONumber: "PO-202601-0001", SupplierID: "s1", Status: entity.POStatusDraft, Items: []entity.POItem{{ProductID: "p1", QuantityOrdered: 5}}, CreatedAt: now},
		{ID: "o2", PONumber: "PO-202601-0002", SupplierID: "s1", Status: entity.POStatusApproved, Items: []entity.POItem{{ProductID: "p2", QuantityOrdered: 5}}, CreatedAt: now},
		{ID: "o3", PONumber: "PO-202602-0001", SupplierID: "s2", Status: entity.POStatusReceived, Items: []entity.POItem{{ProductID: "p1", QuantityOrdered: 5}}, CreatedAt: now},
	}
	for _, o := range orders {
		require.NoError(t, repo.Create(ctx, o))
	}

	open, _ := repo.CountByStatus(ctx, entity.POStatusDraft, entity.POStatusApproved)
	assert.Equal(t, 2, open)

	jan, _ := repo.CountByNumberPrefix(ctx, "PO-202601-")
	assert.Equal(t, 2, jan)

	pending, _ := repo.CountOpenByProduct(ctx, "p1")
	assert.Equal(t, 1, pending, "la orden recibida no cuenta")

	list, _ := repo.List(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, "o3", list[0].ID, "más reciente primero")

	bySupplier, _ := repo.ListBySupplier(ctx, "s1", 1)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, "o2", bySupplier[0].ID)

	assert.ErrorIs(t, repo.Create(ctx, &entity.PurchaseOrder{ID: "o4", PONumber: "PO-202601-0001"}), domain.ErrDuplicate)
}

func TestInventoryLogRepo_PaginaMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInventoryLogRepository(memory.NewStore())
	for i, delta := range []int{10, -3, 5, 7} {
		require.NoError(t, repo.Append(ctx, &entity.InventoryLogEntry{ID: string(rune('a' + i)), ProductID: "p1", QuantityChange: delta}))
	}
	require.NoError(t, repo.Append(ctx, &entity.InventoryLogEntry{ID: "x", ProductID: "p2", QuantityChange: 100}))

	page, err := repo.ListByProduct(ctx, "p1", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 5, page[0].QuantityChange)
	assert.Equal(t, -3, page[1].QuantityChange)

	sum, _ := repo.SumByProduct(ctx, "p1")
	assert.Equal(t, 19, sum)
}
