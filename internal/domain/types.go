package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID is the ownership token identifier allocated by a token ledger.
// The zero value is reserved: a name hash that maps to TokenIDNone has
// never been registered, or has been burned.
type TokenID uint64

// TokenIDNone is the "no token" sentinel. Ledgers never allocate it.
const TokenIDNone TokenID = 0

// Valid reports whether the token id refers to an allocated token.
func (id TokenID) Valid() bool {
	return id != TokenIDNone
}

// DomainRecord is the mutable per-name state held by a registry.
// Resolver defaults to the registrant at creation time but can be repointed
// independently of token ownership. Expires is extended in place on renewal.
type DomainRecord struct {
	// Name is the canonical (lower-cased) name without the namespace suffix
	Name string
	// Resolver is the address the name currently routes to
	Resolver common.Address
	// Expires is the absolute expiry timestamp
	Expires time.Time
}

// Active reports whether the record is live at the given instant.
// An expired record still exists for ownership and renewal purposes; only
// name-resolution reads treat it as absent.
func (r DomainRecord) Active(now time.Time) bool {
	return r.Expires.After(now)
}

// LedgerEntry is an immutable historical record of a completed top-level
// registration. Entries survive later renewals, resolver changes and burns.
type LedgerEntry struct {
	// FullName is the registered name including the namespace suffix (e.g. "alice.haus")
	FullName string
	// Owner is the registrant at registration time
	Owner common.Address
	// RegistrationDate is when the registration committed
	RegistrationDate time.Time
	// ExpirationDate is the expiry assigned at registration time
	ExpirationDate time.Time
	// RegistrationPrice is the fee that was forwarded, in base units
	RegistrationPrice *big.Int
	// Source is the namespace label of the registry that produced the entry
	Source string
}

// PriceTier maps an exact name length to its registration price.
type PriceTier struct {
	Length int      `json:"length"`
	Price  *big.Int `json:"price"`
}

// RegistrationResult describes a committed registration or renewal.
type RegistrationResult struct {
	TokenID  TokenID
	NameHash common.Hash
	FullName string
	Owner    common.Address
	Price    *big.Int
	Refund   *big.Int
	Expires  time.Time
}

// ParseAddress parses a hex address, rejecting malformed input.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative decimal amount in base units.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
