package payment

import (
	"fmt"
	"math/big"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/domain"
)

// accountsFile is the on-disk shape of the balance seed document:
// a JSON object mapping account address to a decimal balance string,
// e.g. {"0xabc...": "1000"}.
type accountsFile map[string]string

// Loader reads a balance seed document from disk.
type Loader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewLoader creates a balance seed loader.
func NewLoader(fs adapter.FileSystem, jsonAdapter adapter.JSON) *Loader {
	return &Loader{fs: fs, json: jsonAdapter}
}

// Load parses the seed file at the given path and deposits each balance
// into the bank.
func (l *Loader) Load(path string, bank *Bank) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read accounts file: %w", err)
	}

	var raw accountsFile
	if err := l.json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse accounts file: %w", err)
	}

	for addressHex, balanceStr := range raw {
		account, err := domain.ParseAddress(addressHex)
		if err != nil {
			return fmt.Errorf("invalid seed account %q: %w", addressHex, err)
		}
		balance, ok := new(big.Int).SetString(balanceStr, 10)
		if !ok || balance.Sign() < 0 {
			return fmt.Errorf("invalid seed balance %q for account %s", balanceStr, addressHex)
		}
		bank.Deposit(account, balance)
	}
	return nil
}
