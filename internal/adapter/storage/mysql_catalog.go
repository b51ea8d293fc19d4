package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/food-order/internal/core/domain"
)

const restaurantSelect = `
	SELECT r.id, r.vendor_id, r.name, r.slug, r.description, r.cuisine_type, r.rating,
	       r.delivery_time, r.delivery_fee, r.is_open
	FROM restaurants r`

const menuItemSelect = `
	SELECT m.id, m.restaurant_id, m.name, m.description, m.price, m.category, m.is_available
	FROM menu_items m`

func (m *MySQLAdapter) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return getRestaurant(ctx, m.db, `r.id = ?`, id)
}

func (m *MySQLAdapter) GetRestaurantBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return getRestaurant(ctx, m.db, `r.slug = ?`, slug)
}

func (m *MySQLAdapter) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		where = append(where, `(r.name LIKE ? OR r.description LIKE ? OR EXISTS (
			SELECT 1 FROM menu_items m WHERE m.restaurant_id = r.id
			AND (m.name LIKE ? OR m.description LIKE ? OR m.category LIKE ?)))`)
		args = append(args, like, like, like, like, like)
	}
	if filter.OpenOnly {
		where = append(where, `r.is_open = TRUE`)
	}

	query := restaurantSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.rating DESC, r.name"

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	mi, err := scanMenuItem(m.db.QueryRowContext(ctx, menuItemSelect+` WHERE m.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return mi, nil
}

func (m *MySQLAdapter) GetMenuItems(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	return getMenuItems(ctx, m.db, ids)
}

func (m *MySQLAdapter) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	where := []string{`m.is_available = TRUE`}
	var args []any

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		where = append(where, `(m.name LIKE ? OR m.description LIKE ? OR r.name LIKE ?)`)
		args = append(args, like, like, like)
	}
	if filter.Category != "" {
		where = append(where, `m.category = ?`)
		args = append(args, filter.Category)
	}
	if filter.RestaurantID != 0 {
		where = append(where, `m.restaurant_id = ?`)
		args = append(args, filter.RestaurantID)
	}
	if filter.PriceMin != nil {
		where = append(where, `m.price >= ?`)
		args = append(args, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		where = append(where, `m.price <= ?`)
		args = append(args, *filter.PriceMax)
	}

	query := menuItemSelect + ` JOIN restaurants r ON r.id = m.restaurant_id WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY r.name, m.category, m.name`

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func (m *MySQLAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (m *MySQLAdapter) GetVendorByUserID(ctx context.Context, userID int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := m.db.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_name, phone, address, is_active FROM vendors WHERE user_id = ?`, userID,
	).Scan(&v.ID, &v.UserID, &v.RestaurantName, &v.Phone, &v.Address, &v.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query vendor: %w", err)
	}
	return &v, nil
}

func (m *MySQLAdapter) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return getCustomer(ctx, m.db, `id = ?`, id)
}

func (m *MySQLAdapter) GetOrCreateCustomer(ctx context.Context, userID int64) (*domain.Customer, error) {
	_, err := m.db.ExecContext(ctx, `
		INSERT IGNORE INTO customers (user_id, phone, address) VALUES (?, '', '')`, userID)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	c, err := getCustomer(ctx, m.db, `user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer for user %d: %w", userID, domain.ErrNotFound)
	}
	return c, nil
}

func getCustomer(ctx context.Context, q querier, cond string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := q.QueryRowContext(ctx, `
		SELECT id, user_id, phone, address FROM customers WHERE `+cond, arg,
	).Scan(&c.ID, &c.UserID, &c.Phone, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func getRestaurant(ctx context.Context, q querier, cond string, arg any) (*domain.Restaurant, error) {
	r, err := scanRestaurant(q.QueryRowContext(ctx, restaurantSelect+` WHERE `+cond, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query restaurant: %w", err)
	}
	return r, nil
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var r domain.Restaurant
	err := row.Scan(&r.ID, &r.VendorID, &r.Name, &r.Slug, &r.Description, &r.CuisineType,
		&r.Rating, &r.DeliveryTime, &r.DeliveryFee, &r.IsOpen)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func getMenuItems(ctx context.Context, q querier, ids []int64) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	marks, args := inClause(ids)
	rows, err := q.QueryContext(ctx, menuItemSelect+` WHERE m.id IN (`+marks+`) ORDER BY m.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func collectMenuItems(rows *sql.Rows) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for rows.Next() {
		mi, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, *mi)
	}
	return out, rows.Err()
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var mi domain.MenuItem
	err := row.Scan(&mi.ID, &mi.RestaurantID, &mi.Name, &mi.Description, &mi.Price, &mi.Category, &mi.IsAvailable)
	if err != nil {
		return nil, err
	}
	return &mi, nil
}
