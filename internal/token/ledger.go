package token

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/namehaus/registrar/internal/domain"
)

// Ledger is the external ownership-token ledger a registry allocates from.
// Implementations must never allocate domain.TokenIDNone; the registry relies
// on it as the "unregistered" sentinel.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/token_ledger.go -package=mocks -mock_names=Ledger=MockTokenLedger
type Ledger interface {
	// Mint allocates a new token owned by the given address
	Mint(ctx context.Context, owner common.Address) (domain.TokenID, error)
	// OwnerOf returns the current owner of a token.
	// Returns domain.ErrNotFound for unallocated or burned tokens.
	OwnerOf(ctx context.Context, id domain.TokenID) (common.Address, error)
	// Burn permanently destroys a token.
	// Returns domain.ErrNotFound for unallocated or already burned tokens.
	Burn(ctx context.Context, id domain.TokenID) error
}
