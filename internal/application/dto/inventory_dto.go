package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Delta positivo es entrada, negativo es consumo.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta" validate:"ne=0"`
	Reason    string `json:"reason" validate:"required,max=200"`
}

// MovementResponse stock resultante tras aplicar un movimiento.
type MovementResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
}

// InventoryLogResponse entrada del ledger de inventario.
type InventoryLogResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	ResultingStock int       `json:"resulting_stock"`
	StockoutFlag   bool      `json:"stockout_flag"`
	ChangedAt      time.Time `json:"changed_at"`
}

// InventoryLogListResponse página del ledger de un producto (más reciente primero).
type InventoryLogListResponse struct {
	Items []InventoryLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// LedgerAuditResponse compara el stock cacheado con la suma del ledger.
type LedgerAuditResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
	LedgerSum    int    `json:"ledger_sum"`
	Consistent   bool   `json:"consistent"`
}

// InventoryAnalysisItem estado de stock de un producto frente a su stock de seguridad.
type InventoryAnalysisItem struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	CurrentStock   int    `json:"current_stock"`
	SafetyStock    int    `json:"safety_stock"`
	Status         string `json:"status"` // CRITICAL, LOW, OK
	Recommendation string `json:"recommendation"`
}
