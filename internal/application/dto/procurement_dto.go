package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HealthResponse salida de GET /api/procurement/health.
type HealthResponse struct {
	Score         float64 `json:"score"`
	Status        string  `json:"status"` // CRITICAL, WARNING, HEALTHY
	CriticalCount int     `json:"critical_count"`
	PendingPOs    int     `json:"pending_pos"`
	Briefing      string  `json:"briefing"`
}

// RecommendationResponse sugerencia de compra para un producto bajo el 50% del óptimo.
type RecommendationResponse struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	ProductName     string          `json:"product_name"`
	CurrentStock    int             `json:"current_stock"`
	OptimalStock    int             `json:"optimal_stock"`
	StockPercentage float64         `json:"stock_percentage"`
	Urgency         string          `json:"urgency"` // CRITICAL, HIGH, MEDIUM
	QuantityNeeded  int             `json:"quantity_needed"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	SupplierID      string          `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	SupplierScore   float64         `json:"supplier_score"`
	DeliveryDays    int             `json:"delivery_days"`
	Reasoning       string          `json:"reasoning"`
}

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	ContactEmail      string          `json:"contact_email" validate:"omitempty,email"`
	Category          string          `json:"category" validate:"required,max=100"`
	ReliabilityScore  float64         `json:"reliability_score" validate:"min=0,max=100"`
	DeliverySpeedDays int             `json:"delivery_speed_days" validate:"min=1"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
}

// CreateSupplierResponse id del proveedor y su puntaje inicial (sin precio de referencia).
type CreateSupplierResponse struct {
	SupplierID        string  `json:"supplier_id"`
	InitialTrustScore float64 `json:"initial_trust_score"`
}

// SupplierResponse salida de un proveedor con su puntaje recalculado.
type SupplierResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	ContactEmail      string          `json:"contact_email"`
	Category          string          `json:"category"`
	ReliabilityScore  float64         `json:"reliability_score"`
	DeliverySpeedDays int             `json:"delivery_speed_days"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	Score             float64         `json:"score"`
	CreatedAt         time.Time       `json:"created_at"`
}

// SupplierScoreResponse salida de GET /suppliers/:id/score.
type SupplierScoreResponse struct {
	SupplierID     string           `json:"supplier_id"`
	ReferencePrice *decimal.Decimal `json:"reference_price,omitempty"`
	Score          float64          `json:"score"`
}

// SupplierAnalysisItem desempeño histórico de un proveedor.
type SupplierAnalysisItem struct {
	SupplierID     string  `json:"supplier_id"`
	Name           string  `json:"name"`
	Reliability    float64 `json:"reliability"`
	TotalPOs       int     `json:"total_pos"`
	ReceivedPOs    int     `json:"received_pos"`
	CompletionRate float64 `json:"completion_rate"`
	OverallScore   float64 `json:"overall_score"`
	Verdict        string  `json:"verdict"` // PREFERRED, AT_RISK, REVIEW_NEEDED
}

// NegotiationEmailResponse borrador de correo de negociación.
type NegotiationEmailResponse struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	TotalPOs     int             `json:"total_pos"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
	Email        string          `json:"email"`
}

// CreatePORequest entrada para crear una orden de compra de un producto.
type CreatePORequest struct {
	SupplierID string          `json:"supplier_id" validate:"required"`
	ProductID  string          `json:"product_id" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Priority   string          `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
}

// CreatePOResponse número generado y fecha estimada de entrega.
type CreatePOResponse struct {
	ID               string          `json:"id"`
	PONumber         string          `json:"po_number"`
	TotalValue       decimal.Decimal `json:"total_value"`
	Status           string          `json:"status"`
	ExpectedDelivery time.Time       `json:"expected_delivery"`
}

// SetPOStatusRequest body para PUT /purchase-orders/:id/status.
type SetPOStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetPOStatusResponse estado resultante.
type SetPOStatusResponse struct {
	ID        string `json:"id"`
	PONumber  string `json:"po_number"`
	NewStatus string `json:"new_status"`
}

// POItemResponse línea de una orden de compra.
type POItemResponse struct {
	ProductID       string          `json:"product_id"`
	QuantityOrdered int             `json:"quantity_ordered"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// POResponse salida de una orden de compra.
type POResponse struct {
	ID               string           `json:"id"`
	PONumber         string           `json:"po_number"`
	SupplierID       string           `json:"supplier_id"`
	SupplierName     string           `json:"supplier_name"`
	Items            []POItemResponse `json:"items"`
	TotalValue       decimal.Decimal  `json:"total_value"`
	Priority         string           `json:"priority"`
	Status           string           `json:"status"`
	ExpectedDelivery time.Time        `json:"expected_delivery"`
	DaysRemaining    int              `json:"days_remaining"`
	ReceivedAt       *time.Time       `json:"received_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
