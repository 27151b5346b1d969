package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor. El puntaje se recalcula en cada lectura, nunca se persiste.
type Supplier struct {
	ID                string
	Name              string // único
	ContactEmail      string
	Category          string
	ReliabilityScore  float64 // 0–100
	DeliverySpeedDays int     // >= 1
	PricePerUnit      decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
