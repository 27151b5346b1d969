package procurement

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/inventory"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

// ReceptionReasonPrefix motivo registrado en el ledger al recibir una orden.
const ReceptionReasonPrefix = "PO Received: "

// PurchaseOrderUseCase ciclo de vida de las órdenes de compra: alta, transiciones de estado
// (con la conciliación de stock al recibir), consultas y documento PDF.
type PurchaseOrderUseCase struct {
	txRunner     ports.TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	renderer     ports.PODocumentRenderer
}

// NewPurchaseOrderUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewPurchaseOrderUseCase(
	txRunner ports.TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	renderer ports.PODocumentRenderer,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		renderer:     renderer,
	}
}

// Create crea una orden DRAFT de un producto. Número PO-YYYYMM-NNNN secuencial por mes;
// la entrega esperada es la fecha de creación más los días de entrega del proveedor.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePORequest) (*dto.CreatePOResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrValidation)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrValidation)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.IsValidPriority(priority) {
		return nil, fmt.Errorf("%w: prioridad %q", domain.ErrValidation, priority)
	}

	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.Archived {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}

		now := time.Now().UTC()
		prefix := fmt.Sprintf("PO-%s-", now.Format("200601"))
		seq, err := repos.PurchaseOrders.CountByNumberPrefix(ctx, prefix)
		if err != nil {
			return err
		}
		poID := uuid.New().String()
		po = &entity.PurchaseOrder{
			ID:         poID,
			PONumber:   fmt.Sprintf("%s%04d", prefix, seq+1),
			SupplierID: supplier.ID,
			Items: []entity.POItem{{
				ID:              uuid.New().String(),
				POID:            poID,
				ProductID:       product.ID,
				QuantityOrdered: in.Quantity,
				UnitPrice:       in.UnitPrice,
			}},
			TotalValue:       decimal.NewFromInt(int64(in.Quantity)).Mul(in.UnitPrice).Round(2),
			Priority:         priority,
			Status:           entity.POStatusDraft,
			ExpectedDelivery: now.AddDate(0, 0, supplier.DeliverySpeedDays),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return repos.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatePOResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		TotalValue:       po.TotalValue,
		Status:           string(po.Status),
		ExpectedDelivery: po.ExpectedDelivery,
	}, nil
}

// SetStatus avanza la orden un paso en DRAFT→APPROVED→IN_TRANSIT→RECEIVED.
// Al pasar a RECEIVED suma cada línea al stock vía el ledger, en la misma transacción que el cambio de estado.
// La fila de la orden se bloquea antes de validar la transición: dos recepciones concurrentes se serializan
// y la segunda falla con ErrInvalidTransition.
func (uc *PurchaseOrderUseCase) SetStatus(ctx context.Context, poID, status string) (*dto.SetPOStatusResponse, error) {
	next, err := supplychain.ParsePOStatus(status)
	if err != nil {
		return nil, err
	}

	var po *entity.PurchaseOrder
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		po, err = repos.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, poID)
		}
		if err := supplychain.ValidateTransition(po.Status, next); err != nil {
			return err
		}

		var receivedAt *time.Time
		if next == entity.POStatusReceived {
			reason := ReceptionReasonPrefix + po.PONumber
			for _, item := range po.Items {
				if _, err := inventory.ApplyMovementInTx(ctx, repos, item.ProductID, item.QuantityOrdered, reason); err != nil {
					return err
				}
			}
			t := time.Now().UTC()
			receivedAt = &t
		}
		return repos.PurchaseOrders.UpdateStatus(ctx, po.ID, next, receivedAt)
	})
	if err != nil {
		return nil, err
	}

	if next == entity.POStatusReceived {
		log.Info().Str("po_number", po.PONumber).Int("items", len(po.Items)).Msg("orden recibida, stock conciliado")
	}
	return &dto.SetPOStatusResponse{ID: po.ID, PONumber: po.PONumber, NewStatus: string(next)}, nil
}

// List devuelve las órdenes (más recientes primero) con el nombre del proveedor y los días restantes.
func (uc *PurchaseOrderUseCase) List(ctx context.Context) ([]dto.POResponse, error) {
	orders, err := uc.poRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	now := time.Now().UTC()
	out := make([]dto.POResponse, 0, len(orders))
	for _, po := range orders {
		out = append(out, toPOResponse(po, names[po.SupplierID], now))
	}
	return out, nil
}

// Get obtiene una orden por ID.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.POResponse, error) {
	po, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	name := ""
	if s, err := uc.supplierRepo.GetByID(ctx, po.SupplierID); err == nil && s != nil {
		name = s.Name
	}
	resp := toPOResponse(po, name, time.Now().UTC())
	return &resp, nil
}

// RenderPDF genera el documento imprimible de la orden.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	po, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		return nil, "", fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, po.SupplierID)
	}
	lines := make([]ports.PODocumentLine, 0, len(po.Items))
	for _, item := range po.Items {
		line := ports.PODocumentLine{Item: item, SKU: item.ProductID}
		if p, err := uc.productRepo.GetByID(ctx, item.ProductID); err == nil && p != nil {
			line.SKU = p.SKU
			line.Name = p.Name
		}
		lines = append(lines, line)
	}
	pdf, err := uc.renderer.RenderPurchaseOrder(ports.PODocument{Order: po, Supplier: supplier, Lines: lines})
	if err != nil {
		return nil, "", fmt.Errorf("render purchase order: %w", err)
	}
	return pdf, po.PONumber + ".pdf", nil
}

func (uc *PurchaseOrderUseCase) mustGet(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return po, nil
}

// daysRemaining días (redondeados hacia arriba) hasta la entrega esperada; negativo si está atrasada.
// Una orden recibida devuelve 0.
func daysRemaining(po *entity.PurchaseOrder, now time.Time) int {
	if po.Status == entity.POStatusReceived {
		return 0
	}
	return int(math.Ceil(po.ExpectedDelivery.Sub(now).Hours() / 24))
}

func toPOResponse(po *entity.PurchaseOrder, supplierName string, now time.Time) dto.POResponse {
	items := make([]dto.POItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.POItemResponse{
			ProductID:       it.ProductID,
			QuantityOrdered: it.QuantityOrdered,
			UnitPrice:       it.UnitPrice,
			Subtotal:        decimal.NewFromInt(int64(it.QuantityOrdered)).Mul(it.UnitPrice).Round(2),
		})
	}
	return dto.POResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		SupplierID:       po.SupplierID,
		SupplierName:     supplierName,
		Items:            items,
		TotalValue:       po.TotalValue,
		Priority:         po.Priority,
		Status:           string(po.Status),
		ExpectedDelivery: po.ExpectedDelivery,
		DaysRemaining:    daysRemaining(po, now),
		ReceivedAt:       po.ReceivedAt,
		CreatedAt:        po.CreatedAt,
	}
}
