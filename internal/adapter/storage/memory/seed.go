package memory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/rl1809/food-order/internal/core/domain"
)

// Seed loads the demo accounts and catalog used by the memory driver.
func Seed(s *Store) error {
	vendorUser, err := seedUser(s, "demo-vendor", "vendor123")
	if err != nil {
		return err
	}
	vendor := s.AddVendor(domain.Vendor{
		UserID:         vendorUser.ID,
		RestaurantName: "Demo Kitchens",
		Phone:          "+33 1 23 45 67 89",
		Address:        "1 Rue de la Paix, Paris",
		IsActive:       true,
	})

	customerUser, err := seedUser(s, "demo-customer", "customer123")
	if err != nil {
		return err
	}
	s.AddCustomer(domain.Customer{
		UserID:  customerUser.ID,
		Phone:   "+33 6 12 34 56 78",
		Address: "10 Avenue des Champs-Elysees, Paris",
	})

	pizza := s.AddRestaurant(domain.Restaurant{
		VendorID: vendor.ID, Name: "Pizza Palace", Slug: "pizza-palace",
		Description: "Wood-fired pizza and sides", CuisineType: "pizza",
		Rating: decimal.RequireFromString("4.60"), DeliveryTime: 30,
		DeliveryFee: decimal.RequireFromString("2.90"), IsOpen: true,
	})
	addItems(s, pizza.ID, [][4]string{
		{"Margherita", "Tomato, mozzarella, basil", "pizza", "12.90"},
		{"Quattro Formaggi", "Four cheeses", "pizza", "14.50"},
		{"Garlic Bread", "With herb butter", "side", "8.50"},
		{"Tiramisu", "House made", "dessert", "6.00"},
	})

	sushi := s.AddRestaurant(domain.Restaurant{
		VendorID: vendor.ID, Name: "Sushi Corner", Slug: "sushi-corner",
		Description: "Fresh rolls and bowls", CuisineType: "sushi",
		Rating: decimal.RequireFromString("4.40"), DeliveryTime: 40,
		DeliveryFee: decimal.RequireFromString("3.50"), IsOpen: true,
	})
	addItems(s, sushi.ID, [][4]string{
		{"Salmon Maki", "8 pieces", "sushi", "9.80"},
		{"Chicken Teriyaki Bowl", "Rice, teriyaki chicken, sesame", "main", "13.20"},
		{"Miso Soup", "Tofu and wakame", "soup", "3.90"},
	})
	return nil
}

func seedUser(s *Store, username, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password for %s: %w", username, err)
	}
	return s.AddUser(domain.User{Username: username, PasswordHash: string(hash)}), nil
}

func addItems(s *Store, restaurantID int64, rows [][4]string) {
	for _, r := range rows {
		s.AddMenuItem(domain.MenuItem{
			RestaurantID: restaurantID,
			Name:         r[0],
			Description:  r[1],
			Category:     r[2],
			Price:        decimal.RequireFromString(r[3]),
			IsAvailable:  true,
		})
	}
}
