package port

import "github.com/rl1809/food-order/internal/core/domain"

type TokenIssuer interface {
	Issue(principal domain.Principal) (string, error)
	Parse(token string) (domain.Principal, error)
}
