package procurement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abastecimiento-api/internal/application/dto"
	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/supplychain"
)

// negotiationHistorySize órdenes recientes consideradas para el correo de negociación.
const negotiationHistorySize = 5

// SupplierUseCase alta, consulta, puntaje y análisis de proveedores.
type SupplierUseCase struct {
	txRunner     ports.TxRunner
	supplierRepo repository.SupplierRepository
	poRepo       repository.PurchaseOrderRepository
	narrator     narrator
}

// NewSupplierUseCase construye el caso de uso. gen puede ser nil.
func NewSupplierUseCase(
	txRunner ports.TxRunner,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	gen ports.NarrativeGenerator,
	narrativeTimeout time.Duration,
) *SupplierUseCase {
	return &SupplierUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		poRepo:       poRepo,
		narrator:     newNarrator(gen, narrativeTimeout),
	}
}

// Create registra un proveedor y devuelve su puntaje inicial (sin precio de referencia).
// Devuelve ErrDuplicateName si ya existe uno con el mismo nombre.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.CreateSupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: nombre obligatorio", domain.ErrValidation)
	case in.ReliabilityScore < 0 || in.ReliabilityScore > 100:
		return nil, fmt.Errorf("%w: reliability_score debe estar entre 0 y 100", domain.ErrValidation)
	case in.DeliverySpeedDays < 1:
		return nil, fmt.Errorf("%w: delivery_speed_days debe ser >= 1", domain.ErrValidation)
	case in.PricePerUnit.IsNegative():
		return nil, fmt.Errorf("%w: price_per_unit no puede ser negativo", domain.ErrValidation)
	}

	now := time.Now().UTC()
	supplier := &entity.Supplier{
		ID:                uuid.New().String(),
		Name:              name,
		ContactEmail:      strings.TrimSpace(in.ContactEmail),
		Category:          strings.TrimSpace(in.Category),
		ReliabilityScore:  in.ReliabilityScore,
		DeliverySpeedDays: in.DeliverySpeedDays,
		PricePerUnit:      in.PricePerUnit,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		existing, err := repos.Suppliers.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
		}
		return repos.Suppliers.Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateSupplierResponse{
		SupplierID:        supplier.ID,
		InitialTrustScore: supplychain.ScoreSupplier(supplier, nil),
	}, nil
}

// List devuelve todos los proveedores con su puntaje recalculado.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// Get obtiene un proveedor por ID.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSupplierResponse(s)
	return &resp, nil
}

// Score puntaje [0,100] del proveedor; referencePrice opcional (nil o <= 0 usa el valor neutral).
func (uc *SupplierUseCase) Score(ctx context.Context, id string, referencePrice *decimal.Decimal) (*dto.SupplierScoreResponse, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if referencePrice != nil && !referencePrice.IsPositive() {
		referencePrice = nil
	}
	return &dto.SupplierScoreResponse{
		SupplierID:     s.ID,
		ReferencePrice: referencePrice,
		Score:          supplychain.ScoreSupplier(s, referencePrice),
	}, nil
}

// Analyze evalúa el desempeño histórico: tasa de órdenes recibidas y veredicto por proveedor.
func (uc *SupplierUseCase) Analyze(ctx context.Context) ([]dto.SupplierAnalysisItem, error) {
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierAnalysisItem, 0, len(suppliers))
	for _, s := range suppliers {
		orders, err := uc.poRepo.ListBySupplier(ctx, s.ID, 0)
		if err != nil {
			return nil, err
		}
		received := 0
		for _, po := range orders {
			if po.Status == entity.POStatusReceived {
				received++
			}
		}
		rate := 0.0
		if len(orders) > 0 {
			rate = roundTo(float64(received)/float64(len(orders))*100, 1)
		}
		out = append(out, dto.SupplierAnalysisItem{
			SupplierID:     s.ID,
			Name:           s.Name,
			Reliability:    s.ReliabilityScore,
			TotalPOs:       len(orders),
			ReceivedPOs:    received,
			CompletionRate: rate,
			OverallScore:   supplychain.ScoreSupplier(s, nil),
			Verdict:        string(supplychain.ClassifySupplier(s.ReliabilityScore, rate)),
		})
	}
	return out, nil
}

// NegotiationEmail redacta un correo de negociación a partir de las órdenes más recientes del proveedor.
func (uc *SupplierUseCase) NegotiationEmail(ctx context.Context, id string) (*dto.NegotiationEmailResponse, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := uc.poRepo.ListBySupplier(ctx, s.ID, negotiationHistorySize)
	if err != nil {
		return nil, err
	}
	volume := decimal.Zero
	for _, po := range orders {
		volume = volume.Add(po.TotalValue)
	}
	volume = volume.Round(2)

	fallback := fmt.Sprintf(
		"Estimado equipo de %s:\n\n"+
			"En nuestras últimas %d órdenes de compra hemos trabajado con ustedes por un volumen de %s. "+
			"Valoramos su confiabilidad (%.0f/100) y su tiempo de entrega de %d días. "+
			"Dado el volumen sostenido, quisiéramos revisar las condiciones de precio actuales (%s por unidad) "+
			"y explorar descuentos por volumen o mejores plazos de pago.\n\n"+
			"Quedamos atentos a su propuesta.\n\nCordialmente,\nEquipo de Abastecimiento",
		s.Name, len(orders), volume.StringFixed(2), s.ReliabilityScore, s.DeliverySpeedDays, s.PricePerUnit.StringFixed(2),
	)
	email := uc.narrator.explain(ctx, ports.NarrativeContext{
		Topic: ports.TopicNegotiationEmail,
		Facts: []ports.NarrativeFact{
			fact("supplier", s.Name),
			fact("category", s.Category),
			fact("reliability_score", strconv.FormatFloat(s.ReliabilityScore, 'f', 1, 64)),
			fact("delivery_speed_days", strconv.Itoa(s.DeliverySpeedDays)),
			fact("price_per_unit", s.PricePerUnit.StringFixed(2)),
			fact("recent_pos", strconv.Itoa(len(orders))),
			fact("recent_volume", volume.StringFixed(2)),
		},
	}, fallback)

	return &dto.NegotiationEmailResponse{
		SupplierID:   s.ID,
		SupplierName: s.Name,
		TotalPOs:     len(orders),
		TotalVolume:  volume,
		Email:        email,
	}, nil
}

func (uc *SupplierUseCase) mustGet(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:                s.ID,
		Name:              s.Name,
		ContactEmail:      s.ContactEmail,
		Category:          s.Category,
		ReliabilityScore:  s.ReliabilityScore,
		DeliverySpeedDays: s.DeliverySpeedDays,
		PricePerUnit:      s.PricePerUnit,
		Score:             supplychain.ScoreSupplier(s, nil),
		CreatedAt:         s.CreatedAt,
	}
}
