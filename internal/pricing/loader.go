package pricing

import (
	"fmt"
	"math/big"

	"github.com/namehaus/registrar/internal/adapter"
)

// tierFile is the on-disk shape of the price tier document:
// a JSON object mapping name length to a decimal price string,
// e.g. {"3": "10", "4": "5", "5": "3"}.
type tierFile map[string]string

// Loader reads a price tier document from disk.
type Loader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewLoader creates a price table loader.
func NewLoader(fs adapter.FileSystem, jsonAdapter adapter.JSON) *Loader {
	return &Loader{fs: fs, json: jsonAdapter}
}

// Load parses the tier file at the given path into a price table.
func (l *Loader) Load(path string) (*Table, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price tier file: %w", err)
	}

	var raw tierFile
	if err := l.json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse price tier file: %w", err)
	}

	table := NewTable()
	for lengthStr, priceStr := range raw {
		var length int
		if _, err := fmt.Sscanf(lengthStr, "%d", &length); err != nil || length <= 0 {
			return nil, fmt.Errorf("invalid tier length %q", lengthStr)
		}
		price, ok := new(big.Int).SetString(priceStr, 10)
		if !ok || price.Sign() < 0 {
			return nil, fmt.Errorf("invalid tier price %q for length %d", priceStr, length)
		}
		table.Upsert(length, price)
	}
	return table, nil
}
