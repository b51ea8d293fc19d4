package domain

import "time"

// Role is resolved once at authentication and carried with the request.
type Role int

const (
	RoleAnonymous Role = iota
	RoleCustomer
	RoleVendor
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleVendor:
		return "vendor"
	default:
		return "anonymous"
	}
}

func ParseRole(s string) Role {
	switch s {
	case "customer":
		return RoleCustomer
	case "vendor":
		return RoleVendor
	default:
		return RoleAnonymous
	}
}

// Principal identifies the acting account. ProfileID is the customer id for customers and
// the vendor id for vendors.
type Principal struct {
	UserID    int64
	Role      Role
	ProfileID int64
}

func (p Principal) Authenticated() bool {
	return p.Role != RoleAnonymous
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Customer struct {
	ID      int64
	UserID  int64
	Phone   string
	Address string
}

type Vendor struct {
	ID             int64
	UserID         int64
	RestaurantName string
	Phone          string
	Address        string
	IsActive       bool
}
