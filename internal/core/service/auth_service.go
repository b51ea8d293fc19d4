package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

type AuthService struct {
	accounts port.AccountRepository
	tokens   port.TokenIssuer
}

func NewAuthService(accounts port.AccountRepository, tokens port.TokenIssuer) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the password and resolves the account role: an active vendor profile makes
// the user a vendor, anyone else is a customer (the profile is created if missing).
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Principal, error) {
	user, err := s.accounts.GetUserByUsername(ctx, username)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal, err := s.resolvePrincipal(ctx, user.ID)
	if err != nil {
		return "", domain.Principal{}, err
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("issue token: %w", err)
	}
	return token, principal, nil
}

func (s *AuthService) resolvePrincipal(ctx context.Context, userID int64) (domain.Principal, error) {
	vendor, err := s.accounts.GetVendorByUserID(ctx, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("get vendor: %w", err)
	}
	if vendor != nil && vendor.IsActive {
		return domain.Principal{UserID: userID, Role: domain.RoleVendor, ProfileID: vendor.ID}, nil
	}

	customer, err := s.accounts.GetOrCreateCustomer(ctx, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("get customer: %w", err)
	}
	return domain.Principal{UserID: userID, Role: domain.RoleCustomer, ProfileID: customer.ID}, nil
}

func (s *AuthService) Authenticate(token string) (domain.Principal, error) {
	p, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return p, nil
}

// Customer loads the profile of a customer principal.
func (s *AuthService) Customer(ctx context.Context, p domain.Principal) (*domain.Customer, error) {
	if p.Role != domain.RoleCustomer {
		return nil, domain.ErrPermission
	}
	c, err := s.accounts.GetCustomer(ctx, p.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("customer %d: %w", p.ProfileID, domain.ErrNotFound)
	}
	return c, nil
}
