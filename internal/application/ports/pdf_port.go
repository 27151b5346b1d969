package ports

import "github.com/jhoicas/Abastecimiento-api/internal/domain/entity"

// PODocumentLine línea de la orden con los datos del producto resueltos.
type PODocumentLine struct {
	SKU  string
	Name string
	Item entity.POItem
}

// PODocument datos necesarios para imprimir una orden de compra.
type PODocument struct {
	Order    *entity.PurchaseOrder
	Supplier *entity.Supplier
	Lines    []PODocumentLine
}

// PODocumentRenderer genera la representación imprimible (PDF) de una orden de compra.
type PODocumentRenderer interface {
	RenderPurchaseOrder(doc PODocument) ([]byte, error)
}
