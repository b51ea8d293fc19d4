package domain

import "github.com/shopspring/decimal"

type Restaurant struct {
	ID           int64
	VendorID     int64
	Name         string
	Slug         string
	Description  string
	CuisineType  string
	Rating       decimal.Decimal
	DeliveryTime int // minutes
	DeliveryFee  decimal.Decimal
	IsOpen       bool
}

type MenuItem struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Category     string
	IsAvailable  bool
}

type RestaurantFilter struct {
	Query    string
	OpenOnly bool
}

type MenuFilter struct {
	Query        string
	Category     string
	RestaurantID int64
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
}
