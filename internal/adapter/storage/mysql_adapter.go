package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) RunInTx(ctx context.Context, fn func(ctx context.Context, tx port.OrderTx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &mysqlTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error) {
	order, err := getOrder(ctx, m.db, orderID, scope, false)
	if err != nil || order == nil {
		return order, err
	}

	order.Items, err = listOrderItems(ctx, m.db, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context, scope domain.OrderScope) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, orderSelect+`
		WHERE (? = 0 OR o.customer_id = ?) AND (? = 0 OR r.vendor_id = ?)
		ORDER BY o.created_at DESC, o.id DESC`,
		scope.CustomerID, scope.CustomerID, scope.VendorID, scope.VendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetPayment(ctx context.Context, orderID int64) (*domain.Payment, error) {
	return getPayment(ctx, m.db, orderID)
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return getRestaurant(ctx, t.tx, `r.id = ?`, id)
}

func (t *mysqlTx) GetMenuItems(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	return getMenuItems(ctx, t.tx, ids)
}

func (t *mysqlTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, delivery_address, status, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.CustomerID, order.RestaurantID, order.DeliveryAddress, order.Status,
		order.TotalAmount, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	order.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	return nil
}

func (t *mysqlTx) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, price)
		VALUES (?, ?, ?, ?)`,
		item.OrderID, item.MenuItemID, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}

	item.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("order item id: %w", err)
	}
	return nil
}

func (t *mysqlTx) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return listOrderItems(ctx, t.tx, orderID)
}

func (t *mysqlTx) UpdateOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return execOrderUpdate(ctx, t.tx, `
		UPDATE orders SET total_amount = ?, updated_at = ? WHERE id = ?`,
		total, time.Now().UTC(), orderID,
	)
}

func (t *mysqlTx) LockOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (*domain.Order, error) {
	return getOrder(ctx, t.tx, orderID, scope, true)
}

func (t *mysqlTx) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return execOrderUpdate(ctx, t.tx, `
		UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), orderID,
	)
}

func (t *mysqlTx) SetGatewayOrderID(ctx context.Context, orderID int64, gatewayOrderID string) error {
	return execOrderUpdate(ctx, t.tx, `
		UPDATE orders SET gateway_order_id = ?, updated_at = ? WHERE id = ?`,
		gatewayOrderID, time.Now().UTC(), orderID,
	)
}

func (t *mysqlTx) UpsertPayment(ctx context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO payments (order_id, method, amount, status, transaction_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			method = VALUES(method),
			amount = VALUES(amount),
			status = VALUES(status),
			transaction_id = VALUES(transaction_id),
			updated_at = VALUES(updated_at)`,
		p.OrderID, p.Method, p.Amount, p.Status, p.TransactionID, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}

	saved, err := getPayment(ctx, t.tx, p.OrderID)
	if err != nil {
		return err
	}
	if saved == nil {
		return fmt.Errorf("payment for order %d missing after upsert", p.OrderID)
	}
	*p = *saved
	return nil
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.restaurant_id, o.delivery_address, o.status,
	       o.total_amount, o.gateway_order_id, o.created_at, o.updated_at
	FROM orders o
	JOIN restaurants r ON r.id = o.restaurant_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o              domain.Order
		gatewayOrderID sql.NullString
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DeliveryAddress, &o.Status,
		&o.TotalAmount, &gatewayOrderID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.GatewayOrderID = gatewayOrderID.String
	return &o, nil
}

func getOrder(ctx context.Context, q querier, orderID int64, scope domain.OrderScope, lock bool) (*domain.Order, error) {
	query := orderSelect + `
		WHERE o.id = ? AND (? = 0 OR o.customer_id = ?) AND (? = 0 OR r.vendor_id = ?)`
	if lock {
		query += ` FOR UPDATE OF o`
	}

	o, err := scanOrder(q.QueryRowContext(ctx, query,
		orderID, scope.CustomerID, scope.CustomerID, scope.VendorID, scope.VendorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	return o, nil
}

func listOrderItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func getPayment(ctx context.Context, q querier, orderID int64) (*domain.Payment, error) {
	var p domain.Payment
	err := q.QueryRowContext(ctx, `
		SELECT id, order_id, method, amount, status, transaction_id, created_at, updated_at
		FROM payments WHERE order_id = ?`, orderID,
	).Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query payment: %w", err)
	}
	return &p, nil
}

func execOrderUpdate(ctx context.Context, q querier, query string, args ...any) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// inClause returns "?, ?, ?" and the matching args.
func inClause(ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ", "), args
}
