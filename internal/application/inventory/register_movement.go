package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement.
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	newStock, err := uc.ApplyMovement(ctx, in.ProductID, in.Delta, in.Reason)
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{ProductID: in.ProductID, NewStock: newStock}, nil
}

// ListLogs devuelve el ledger del producto, del movimiento más reciente al más antiguo.
func (uc *LedgerUseCase) ListLogs(ctx context.Context, productID string, page dto.PageRequest) (*dto.InventoryLogListResponse, error) {
	page.DefaultPage()
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	entries, err := uc.logRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toInventoryLogResponse(e))
	}
	return &dto.InventoryLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AuditLedger verifica que current_stock sea igual a la suma de los movimientos registrados.
func (uc *LedgerUseCase) AuditLedger(ctx context.Context, productID string) (*dto.LedgerAuditResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	sum, err := uc.logRepo.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerAuditResponse{
		ProductID:    productID,
		CurrentStock: product.CurrentStock,
		LedgerSum:    sum,
		Consistent:   sum == product.CurrentStock,
	}, nil
}

func (uc *LedgerUseCase) ensureProduct(ctx context.Context, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

func toInventoryLogResponse(e *entity.InventoryLogEntry) dto.InventoryLogResponse {
	return dto.InventoryLogResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		QuantityChange: e.QuantityChange,
		Reason:         e.Reason,
		ResultingStock: e.ResultingStock,
		StockoutFlag:   e.StockoutFlag,
		ChangedAt:      e.ChangedAt,
	}
}
