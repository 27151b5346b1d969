package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estado del ciclo de vida de una orden de compra.
type POStatus string

// Estados de una orden de compra. RECEIVED es terminal.
const (
	POStatusDraft     POStatus = "DRAFT"
	POStatusApproved  POStatus = "APPROVED"
	POStatusInTransit POStatus = "IN_TRANSIT"
	POStatusReceived  POStatus = "RECEIVED"
)

// Prioridades de una orden de compra.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// IsOpen indica si la orden cuenta como pendiente para el puntaje de salud (DRAFT o APPROVED).
func (s POStatus) IsOpen() bool {
	return s == POStatusDraft || s == POStatusApproved
}

// PurchaseOrder cabecera de una orden de compra con sus ítems.
type PurchaseOrder struct {
	ID               string
	PONumber         string // PO-YYYYMM-NNNN
	SupplierID       string
	Items            []POItem
	TotalValue       decimal.Decimal
	Priority         string
	Status           POStatus
	ExpectedDelivery time.Time // created_at + supplier.delivery_speed_days
	ReceivedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// POItem línea de una orden de compra; se elimina junto con la orden.
type POItem struct {
	ID              string
	POID            string
	ProductID       string
	QuantityOrdered int
	UnitPrice       decimal.Decimal
}

// IsValidPriority indica si p es una prioridad conocida.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
