package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

// LedgerUseCase dueño del stock de los productos: cada cambio actualiza current_stock y agrega
// una entrada inmutable al ledger en la misma transacción, con bloqueo de fila (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner    ports.TxRunner
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		logRepo:     logRepo,
	}
}

// ApplyMovement aplica delta al stock del producto y registra el movimiento. Devuelve el stock resultante.
// Errores: ErrValidation (delta 0 o sin motivo), ErrNotFound, ErrInsufficientStock (resultado negativo).
// Ante cualquier error no queda nada aplicado.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, productID string, delta int, reason string) (int, error) {
	var newStock int
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		newStock, err = ApplyMovementInTx(ctx, repos, productID, delta, reason)
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("product_id", productID).Int("delta", delta).Msg("movimiento rechazado")
		return 0, err
	}
	return newStock, nil
}

// ApplyMovementInTx igual que ApplyMovement pero dentro de una transacción ya abierta por el llamador
// (recepción de órdenes, ajustes al editar un producto). No hace Commit.
func ApplyMovementInTx(ctx context.Context, repos ports.TxRepos, productID string, delta int, reason string) (int, error) {
	reason = strings.TrimSpace(reason)
	if delta == 0 {
		return 0, fmt.Errorf("%w: el movimiento no puede ser 0", domain.ErrValidation)
	}
	if reason == "" {
		return 0, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrValidation)
	}

	// Bloquea la fila del producto hasta el fin de la transacción
	product, err := repos.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	newStock := product.CurrentStock + delta
	if newStock < 0 {
		return 0, fmt.Errorf("%w: producto %s tiene %d, movimiento %d", domain.ErrInsufficientStock, product.SKU, product.CurrentStock, delta)
	}
	if err := repos.Products.UpdateStock(ctx, productID, newStock); err != nil {
		return 0, err
	}
	entry := &entity.InventoryLogEntry{
		ID:             uuid.New().String(),
		ProductID:      productID,
		QuantityChange: delta,
		Reason:         reason,
		ResultingStock: newStock,
		StockoutFlag:   newStock == 0,
		ChangedAt:      time.Now().UTC(),
	}
	if err := repos.InventoryLogs.Append(ctx, entry); err != nil {
		return 0, err
	}
	return newStock, nil
}
