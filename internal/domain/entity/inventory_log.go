package entity

import "time"

// InventoryLogEntry registro inmutable de un cambio de stock (append-only).
type InventoryLogEntry struct {
	ID             string
	ProductID      string
	QuantityChange int // positivo entrada, negativo salida
	Reason         string
	ResultingStock int
	StockoutFlag   bool // el movimiento dejó el stock en 0
	ChangedAt      time.Time
}
