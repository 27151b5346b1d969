package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas de producción de un producto.
const (
	StageRawMaterial    = "Raw Material"
	StageWorkInProgress = "Work in Progress"
	StageFinished       = "Finished"
)

// Product representa un SKU del inventario.
// CurrentStock es la suma acumulada de los movimientos del ledger; solo se modifica vía InventoryLedger.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Category          string
	Stage             string
	CurrentStock      int
	SafetyStockLevel  int
	OptimalStockLevel int
	UnitPrice         decimal.Decimal
	Archived          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockPercentage devuelve current/optimal*100. Con nivel óptimo 0 devuelve 0.
func (p *Product) StockPercentage() float64 {
	if p.OptimalStockLevel <= 0 {
		return 0
	}
	return float64(p.CurrentStock) / float64(p.OptimalStockLevel) * 100
}

// IsValidStage indica si s es una etapa conocida.
func IsValidStage(s string) bool {
	switch s {
	case StageRawMaterial, StageWorkInProgress, StageFinished:
		return true
	}
	return false
}
