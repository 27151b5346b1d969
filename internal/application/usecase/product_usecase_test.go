package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/usecase"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/memory"
)

type productFixture struct {
	uc     *usecase.ProductUseCase
	logs   *memory.InventoryLogRepo
	orders *memory.PurchaseOrderRepo
}

func newProductFixture() productFixture {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	return productFixture{
		uc:     usecase.NewProductUseCase(memory.NewTxRunner(store), products),
		logs:   memory.NewInventoryLogRepository(store),
		orders: memory.NewPurchaseOrderRepository(store),
	}
}

func validProduct(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:               sku,
		Name:              "Lámina de acero",
		Category:          "Metales",
		Stage:             entity.StageRawMaterial,
		CurrentStock:      40,
		SafetyStockLevel:  20,
		OptimalStockLevel: 100,
		UnitPrice:         decimal.RequireFromString("12.50"),
	}
}

func TestCreateProduct_RegistraStockInicialEnLedger(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)
	assert.Equal(t, 40, out.CurrentStock)
	assert.Equal(t, 40.0, out.StockPercentage)

	entries, err := f.logs.ListByProduct(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, usecase.ReasonInitialStock, entries[0].Reason)
	assert.Equal(t, 40, entries[0].QuantityChange)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, validProduct("LAM-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	bad := validProduct("LAM-002")
	bad.SafetyStockLevel = 200
	_, err = f.uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation, "seguridad mayor al óptimo")

	bad = validProduct("LAM-003")
	bad.Stage = "Scrap"
	_, err = f.uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = validProduct("LAM-004")
	bad.UnitPrice = decimal.NewFromInt(-3)
	_, err = f.uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProduct_CambioDeStockEsAjuste(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	created, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)

	stock := 25
	name := "Lámina galvanizada"
	out, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, CurrentStock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 25, out.CurrentStock)
	assert.Equal(t, "Lámina galvanizada", out.Name)

	entries, _ := f.logs.ListByProduct(ctx, created.ID, 10, 0)
	require.Len(t, entries, 2)
	assert.Equal(t, -15, entries[0].QuantityChange)
	assert.Equal(t, usecase.ReasonManualAdjust, entries[0].Reason)

	sum, _ := f.logs.SumByProduct(ctx, created.ID)
	assert.Equal(t, 25, sum)
}

func TestUpdateProduct_ErrorNoDejaCambios(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	created, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)

	name := "Otro nombre"
	optimal := 10 // menor que el stock de seguridad (20)
	_, err = f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, OptimalStockLevel: &optimal})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lámina de acero", got.Name)
}

func TestUpdateProduct_NombreVacioRechazado(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	created, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)

	for _, name := range []string{"", "   "} {
		_, err = f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrValidation, "name %q", name)
	}

	got, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lámina de acero", got.Name)
}

func TestArchiveProduct_ConflictoConOrdenAbierta(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	created, err := f.uc.Create(ctx, validProduct("LAM-001"))
	require.NoError(t, err)

	require.NoError(t, f.orders.Create(ctx, &entity.PurchaseOrder{
		ID:        "po1",
		PONumber:  "PO-202601-0001",
		Items:     []entity.POItem{{ID: "i1", POID: "po1", ProductID: created.ID, QuantityOrdered: 5}},
		Status:    entity.POStatusApproved,
		CreatedAt: time.Now(),
	}))
	err = f.uc.Archive(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.orders.UpdateStatus(ctx, "po1", entity.POStatusReceived, nil))
	require.NoError(t, f.uc.Archive(ctx, created.ID))

	_, err = f.uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestListProducts_Pagina(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		_, err := f.uc.Create(ctx, validProduct(sku))
		require.NoError(t, err)
	}

	page, err := f.uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B", page.Items[0].SKU)
	assert.Equal(t, 3, page.Page.Total)

	empty, err := f.uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
