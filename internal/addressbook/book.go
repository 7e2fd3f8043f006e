package addressbook

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Book is the external resolver address-book the registry notifies about
// name-to-owner bindings and primary display names.
//
//go:generate mockgen -source=book.go -destination=../mocks/address_book.go -package=mocks -mock_names=Book=MockAddressBook
type Book interface {
	// LinkName records that a name hash is owned by the given address
	LinkName(ctx context.Context, nameHash common.Hash, owner common.Address) error
	// SetPrimaryName marks the name hash as the owner's primary display name
	SetPrimaryName(ctx context.Context, owner common.Address, nameHash common.Hash) error
	// PrimaryNameOf returns the owner's primary name hash.
	// Returns domain.ErrNotFound when none is set.
	PrimaryNameOf(ctx context.Context, owner common.Address) (common.Hash, error)
}
