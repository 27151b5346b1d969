// Package supplychain contiene los servicios de dominio puros del motor de abastecimiento:
// puntaje de proveedores, salud de la cadena, recomendaciones de compra y la máquina de estados
// de las órdenes de compra. No accede a persistencia; opera sobre instantáneas de entidades.
package supplychain

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// Pesos y constantes del puntaje de proveedor.
var (
	weightReliability = decimal.NewFromFloat(0.4)
	weightLeadTime    = decimal.NewFromFloat(0.3)
	weightPrice       = decimal.NewFromFloat(0.3)

	// neutralPriceNorm se usa cuando no hay precio de referencia.
	neutralPriceNorm = decimal.NewFromFloat(0.7)
	// leadTimeHorizonDays: a 30 días o más el eje de tiempo de entrega vale 0.
	leadTimeHorizonDays = decimal.NewFromInt(30)

	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// ScoreSupplier calcula el puntaje [0,100] de un proveedor como mezcla lineal ponderada:
//
//	40% confiabilidad + 30% tiempo de entrega (inverso) + 30% precio (inverso)
//
// referencePrice es opcional; nil o <= 0 usa el valor neutral 0.7 en el eje de precio.
// Se calcula en decimal para que el redondeo a 2 decimales sea reproducible.
func ScoreSupplier(s *entity.Supplier, referencePrice *decimal.Decimal) float64 {
	reliability := clampUnit(decimal.NewFromFloat(s.ReliabilityScore).Div(hundred))
	leadTime := clampUnit(one.Sub(decimal.NewFromInt(int64(s.DeliverySpeedDays)).Div(leadTimeHorizonDays)))

	price := neutralPriceNorm
	if referencePrice != nil && referencePrice.IsPositive() {
		price = clampUnit(one.Sub(s.PricePerUnit.Div(referencePrice.Mul(two))))
	}

	score := reliability.Mul(weightReliability).
		Add(leadTime.Mul(weightLeadTime)).
		Add(price.Mul(weightPrice)).
		Mul(hundred).
		Round(2)
	return score.InexactFloat64()
}

// clampUnit acota v a [0,1].
func clampUnit(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(one) {
		return one
	}
	return v
}
