package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedMenuItem struct {
	name, description, category string
	price                       string
}

type seedRestaurant struct {
	name, slug, description, cuisine string
	rating, deliveryFee              string
	deliveryTime                     int
	items                            []seedMenuItem
}

var demoRestaurants = []seedRestaurant{
	{
		name: "Pizza Palace", slug: "pizza-palace", description: "Wood-fired pizza and sides",
		cuisine: "pizza", rating: "4.60", deliveryFee: "2.90", deliveryTime: 30,
		items: []seedMenuItem{
			{"Margherita", "Tomato, mozzarella, basil", "pizza", "12.90"},
			{"Quattro Formaggi", "Four cheeses", "pizza", "14.50"},
			{"Garlic Bread", "With herb butter", "side", "8.50"},
			{"Tiramisu", "House made", "dessert", "6.00"},
		},
	},
	{
		name: "Sushi Corner", slug: "sushi-corner", description: "Fresh rolls and bowls",
		cuisine: "sushi", rating: "4.40", deliveryFee: "3.50", deliveryTime: 40,
		items: []seedMenuItem{
			{"Salmon Maki", "8 pieces", "sushi", "9.80"},
			{"Chicken Teriyaki Bowl", "Rice, teriyaki chicken, sesame", "main", "13.20"},
			{"Miso Soup", "Tofu and wakame", "soup", "3.90"},
		},
	},
}

// Seed inserts a demo vendor, customer and catalog. It does nothing when the vendor exists.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = 'demo-vendor'`).Scan(&count); err != nil {
		return fmt.Errorf("check seed: %w", err)
	}
	if count > 0 {
		logger.Info("seed data already present")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	vendorUser, err := seedUser(ctx, tx, "demo-vendor", "vendor123")
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vendors (user_id, restaurant_name, phone, address, is_active)
		VALUES (?, 'Demo Kitchens', '+33 1 23 45 67 89', '1 Rue de la Paix, Paris', TRUE)`, vendorUser)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	vendorID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	customerUser, err := seedUser(ctx, tx, "demo-customer", "customer123")
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO customers (user_id, phone, address)
		VALUES (?, '+33 6 12 34 56 78', '10 Avenue des Champs, Paris')`, customerUser); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	for _, r := range demoRestaurants {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO restaurants (vendor_id, name, slug, description, cuisine_type, rating, delivery_time, delivery_fee, is_open)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE)`,
			vendorID, r.name, r.slug, r.description, r.cuisine,
			decimal.RequireFromString(r.rating), r.deliveryTime, decimal.RequireFromString(r.deliveryFee))
		if err != nil {
			return fmt.Errorf("insert restaurant %s: %w", r.slug, err)
		}
		restaurantID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, it := range r.items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO menu_items (restaurant_id, name, description, price, category, is_available)
				VALUES (?, ?, ?, ?, ?, TRUE)`,
				restaurantID, it.name, it.description, decimal.RequireFromString(it.price), it.category); err != nil {
				return fmt.Errorf("insert menu item %s: %w", it.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	logger.Info("seeded demo data", slog.Int("restaurants", len(demoRestaurants)))
	return nil
}

func seedUser(ctx context.Context, tx *sql.Tx, username, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, string(hash))
	if err != nil {
		return 0, fmt.Errorf("insert user %s: %w", username, err)
	}
	return res.LastInsertId()
}
