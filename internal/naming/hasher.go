package naming

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Canonicalize lower-cases a name so registrations are case-insensitive.
func Canonicalize(name string) string {
	return strings.ToLower(name)
}

// FullName joins a canonical name with its namespace label (e.g. "alice" +
// "haus" -> "alice.haus").
func FullName(name, label string) string {
	return Canonicalize(name) + "." + label
}

// Hash derives the 32-byte identifier of a top-level name scoped to its
// namespace. The name is canonicalized and joined with the label before
// hashing, so the same literal name under two namespaces never collides.
func Hash(name, label string) common.Hash {
	return crypto.Keccak256Hash([]byte(FullName(name, label)))
}

// SubHash derives the identifier of a sub-name scoped under a parent.
// The canonical sub-name is concatenated with the parent's hash bytes, not
// its string form, so "pay.alice" as a sub-name and "pay.alice" as a
// top-level name occupy distinct points in id space.
func SubHash(parent common.Hash, subName string) common.Hash {
	data := append([]byte(Canonicalize(subName)), parent.Bytes()...)
	return crypto.Keccak256Hash(data)
}
