package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, supplier_id, total_value, priority, status, expected_delivery, received_at,
	created_at, updated_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
// Las lecturas cargan los ítems de cada orden desde po_items.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera e ítems. Llamar dentro de una tx para que sea atómico.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + poColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.SupplierID, po.TotalValue, po.Priority, string(po.Status), po.ExpectedDelivery,
		po.ReceivedAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, po.PONumber)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	for _, it := range po.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO po_items (id, po_id, product_id, quantity_ordered, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, po.ID, it.ProductID, it.QuantityOrdered, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert po item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus ítems.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden hasta el fin de la tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus cambia el estado; received_at solo se fija la primera vez.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.POStatus, receivedAt *time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders
		SET status = $2, received_at = COALESCE(received_at, $3), updated_at = now()
		WHERE id = $1`,
		id, string(status), receivedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las órdenes, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, `SELECT `+poColumns+` FROM purchase_orders ORDER BY created_at DESC, po_number DESC`)
}

// ListBySupplier devuelve las últimas órdenes del proveedor. limit <= 0 devuelve todas.
func (r *PurchaseOrderRepo) ListBySupplier(ctx context.Context, supplierID string, limit int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 {
		return r.list(ctx,
			`SELECT `+poColumns+` FROM purchase_orders WHERE supplier_id = $1 ORDER BY created_at DESC, po_number DESC`,
			supplierID)
	}
	return r.list(ctx,
		`SELECT `+poColumns+` FROM purchase_orders WHERE supplier_id = $1 ORDER BY created_at DESC, po_number DESC LIMIT $2`,
		supplierID, limit)
}

// CountByStatus cuenta órdenes en cualquiera de los estados dados.
func (r *PurchaseOrderRepo) CountByStatus(ctx context.Context, statuses ...entity.POStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE status = ANY($1)`, values).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders by status: %w", err)
	}
	return n, nil
}

// CountByNumberPrefix toma un advisory lock por prefijo (liberado al cerrar la tx) y cuenta las órdenes del mes.
// Dos creaciones concurrentes del mismo mes quedan serializadas y no repiten número.
func (r *PurchaseOrderRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return 0, fmt.Errorf("lock po numbering: %w", err)
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE po_number LIKE $1 || '%'`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders by prefix: %w", err)
	}
	return n, nil
}

// CountOpenByProduct cuenta órdenes no recibidas con ítems del producto.
func (r *PurchaseOrderRepo) CountOpenByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT po.id)
		FROM purchase_orders po
		JOIN po_items it ON it.po_id = po.id
		WHERE it.product_id = $1 AND po.status <> $2`,
		productID, string(entity.POStatusReceived),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open purchase orders by product: %w", err)
	}
	return n, nil
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if po.Items, err = r.loadItems(ctx, po.ID); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Los ítems se cargan después de cerrar rows: una tx no admite dos consultas abiertas a la vez.
	for _, po := range list {
		if po.Items, err = r.loadItems(ctx, po.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, poID string) ([]entity.POItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, po_id, product_id, quantity_ordered, unit_price FROM po_items WHERE po_id = $1 ORDER BY id`,
		poID,
	)
	if err != nil {
		return nil, fmt.Errorf("list po items: %w", err)
	}
	defer rows.Close()

	var items []entity.POItem
	for rows.Next() {
		var it entity.POItem
		if err := rows.Scan(&it.ID, &it.POID, &it.ProductID, &it.QuantityOrdered, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan po item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		po     entity.PurchaseOrder
		status string
	)
	err := row.Scan(
		&po.ID, &po.PONumber, &po.SupplierID, &po.TotalValue, &po.Priority, &status, &po.ExpectedDelivery,
		&po.ReceivedAt, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.Status = entity.POStatus(status)
	return &po, nil
}
