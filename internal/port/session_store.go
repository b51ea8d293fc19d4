package port

import (
	"context"

	"github.com/rl1809/food-order/internal/core/domain"
)

type SessionStore interface {
	// GetCart returns an empty cart when the session has none.
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error
	ClearCart(ctx context.Context, sessionID string) error

	// AcquireCheckout returns false if another checkout of the session holds the guard.
	AcquireCheckout(ctx context.Context, sessionID string) (token string, ok bool, err error)
	ReleaseCheckout(ctx context.Context, sessionID, token string) error
}

type FlashStore interface {
	AddFlash(ctx context.Context, sessionID string, flash domain.Flash) error
	// PopFlashes returns and removes all pending messages.
	PopFlashes(ctx context.Context, sessionID string) ([]domain.Flash, error)
}
