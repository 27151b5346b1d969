package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/inventory"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

// Motivos registrados en el ledger por el CRUD de productos.
const (
	ReasonInitialStock = "Stock inicial"
	ReasonManualAdjust = "Ajuste manual"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía ledger.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un nuevo producto. El stock inicial se registra como movimiento en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrValidation)
	}
	if !entity.IsValidStage(in.Stage) {
		return nil, fmt.Errorf("%w: etapa %q", domain.ErrValidation, in.Stage)
	}
	if err := validateLevels(in.CurrentStock, in.SafetyStockLevel, in.OptimalStockLevel); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrValidation)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              strings.TrimSpace(in.Name),
		Category:          strings.TrimSpace(in.Category),
		Stage:             in.Stage,
		CurrentStock:      0,
		SafetyStockLevel:  in.SafetyStockLevel,
		OptimalStockLevel: in.OptimalStockLevel,
		UnitPrice:         in.UnitPrice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		existing, err := repos.Products.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, product.SKU)
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.CurrentStock > 0 {
			stock, err := inventory.ApplyMovementInTx(ctx, repos, product.ID, in.CurrentStock, ReasonInitialStock)
			if err != nil {
				return err
			}
			product.CurrentStock = stock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto activo por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Archived {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update actualiza metadatos. Un current_stock distinto del actual se registra como ajuste en el ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		product, err = repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || product.Archived {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name no puede quedar vacío", domain.ErrValidation)
			}
			product.Name = name
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if in.Stage != nil {
			if !entity.IsValidStage(*in.Stage) {
				return fmt.Errorf("%w: etapa %q", domain.ErrValidation, *in.Stage)
			}
			product.Stage = *in.Stage
		}
		if in.SafetyStockLevel != nil {
			product.SafetyStockLevel = *in.SafetyStockLevel
		}
		if in.OptimalStockLevel != nil {
			product.OptimalStockLevel = *in.OptimalStockLevel
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrValidation)
			}
			product.UnitPrice = *in.UnitPrice
		}
		target := product.CurrentStock
		if in.CurrentStock != nil {
			target = *in.CurrentStock
		}
		if err := validateLevels(target, product.SafetyStockLevel, product.OptimalStockLevel); err != nil {
			return err
		}
		product.UpdatedAt = time.Now().UTC()
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		if delta := target - product.CurrentStock; delta != 0 {
			stock, err := inventory.ApplyMovementInTx(ctx, repos, product.ID, delta, ReasonManualAdjust)
			if err != nil {
				return err
			}
			product.CurrentStock = stock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos activos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	total := len(list)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range list[start:end] {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Archive archiva el producto. Devuelve ErrConflict si alguna orden no recibida lo referencia.
func (uc *ProductUseCase) Archive(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || product.Archived {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		open, err := repos.PurchaseOrders.CountOpenByProduct(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: el producto tiene %d órdenes de compra pendientes", domain.ErrConflict, open)
		}
		return repos.Products.Archive(ctx, id)
	})
}

func validateLevels(current, safety, optimal int) error {
	if current < 0 || safety < 0 || optimal < 0 {
		return fmt.Errorf("%w: los niveles de stock no pueden ser negativos", domain.ErrValidation)
	}
	if safety > optimal {
		return fmt.Errorf("%w: safety_stock_level no puede superar optimal_stock_level", domain.ErrValidation)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Category:          p.Category,
		Stage:             p.Stage,
		CurrentStock:      p.CurrentStock,
		SafetyStockLevel:  p.SafetyStockLevel,
		OptimalStockLevel: p.OptimalStockLevel,
		StockPercentage:   p.StockPercentage(),
		UnitPrice:         p.UnitPrice,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
