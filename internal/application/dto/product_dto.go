package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. CurrentStock se registra como movimiento inicial.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Category          string          `json:"category" validate:"required,max=100"`
	Stage             string          `json:"stage" validate:"required,oneof='Raw Material' 'Work in Progress' 'Finished'"`
	CurrentStock      int             `json:"current_stock" validate:"min=0"`
	SafetyStockLevel  int             `json:"safety_stock_level" validate:"min=0"`
	OptimalStockLevel int             `json:"optimal_stock_level" validate:"min=0"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se modifican.
// Un CurrentStock distinto del actual se registra como ajuste en el ledger.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category          *string          `json:"category" validate:"omitempty,max=100"`
	Stage             *string          `json:"stage" validate:"omitempty,oneof='Raw Material' 'Work in Progress' 'Finished'"`
	CurrentStock      *int             `json:"current_stock" validate:"omitempty,min=0"`
	SafetyStockLevel  *int             `json:"safety_stock_level" validate:"omitempty,min=0"`
	OptimalStockLevel *int             `json:"optimal_stock_level" validate:"omitempty,min=0"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Stage             string          `json:"stage"`
	CurrentStock      int             `json:"current_stock"`
	SafetyStockLevel  int             `json:"safety_stock_level"`
	OptimalStockLevel int             `json:"optimal_stock_level"`
	StockPercentage   float64         `json:"stock_percentage"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
