package ledger_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/ledger"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func entry(fullName string, owner common.Address, source string) domain.LedgerEntry {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return domain.LedgerEntry{
		FullName:          fullName,
		Owner:             owner,
		RegistrationDate:  now,
		ExpirationDate:    now.AddDate(1, 0, 0),
		RegistrationPrice: big.NewInt(5),
		Source:            source,
	}
}

func TestLog_Append(t *testing.T) {
	log := ledger.NewLog()

	assert.Equal(t, 0, log.Append(entry("alice.haus", alice, "haus")))
	assert.Equal(t, 1, log.Append(entry("bob.haus", bob, "haus")))
	assert.Equal(t, 2, log.Len())
}

func TestLog_At(t *testing.T) {
	log := ledger.NewLog()
	log.Append(entry("alice.haus", alice, "haus"))

	got, err := log.At(0)
	require.NoError(t, err)
	assert.Equal(t, "alice.haus", got.FullName)
	assert.Equal(t, alice, got.Owner)
	assert.Equal(t, big.NewInt(5), got.RegistrationPrice)
}

func TestLog_At_OutOfBounds(t *testing.T) {
	log := ledger.NewLog()
	log.Append(entry("alice.haus", alice, "haus"))

	_, err := log.At(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = log.At(-1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLog_All(t *testing.T) {
	log := ledger.NewLog()
	log.Append(entry("alice.haus", alice, "haus"))
	log.Append(entry("bob.haus", bob, "haus"))

	all := log.All()
	require.Len(t, all, 2)
	assert.Equal(t, "alice.haus", all[0].FullName)
	assert.Equal(t, "bob.haus", all[1].FullName)
}

func TestLog_ByOwner(t *testing.T) {
	log := ledger.NewLog()
	log.Append(entry("alice.haus", alice, "haus"))
	log.Append(entry("bob.haus", bob, "haus"))
	log.Append(entry("ally.haus", alice, "haus"))

	got := log.ByOwner(alice)
	require.Len(t, got, 2)
	assert.Equal(t, "alice.haus", got[0].FullName)
	assert.Equal(t, "ally.haus", got[1].FullName)

	assert.Empty(t, log.ByOwner(common.HexToAddress("0x3333333333333333333333333333333333333333")))
}

func TestLog_BySource(t *testing.T) {
	log := ledger.NewLog()
	log.Append(entry("alice.haus", alice, "haus"))
	log.Append(entry("alice.casa", alice, "casa"))

	got := log.BySource("haus")
	require.Len(t, got, 1)
	assert.Equal(t, "alice.haus", got[0].FullName)

	assert.Empty(t, log.BySource("unknown"))
}

func TestLog_EntriesAreImmutable(t *testing.T) {
	log := ledger.NewLog()

	src := entry("alice.haus", alice, "haus")
	log.Append(src)

	// mutating the caller's copy after append must not leak into the log
	src.RegistrationPrice.SetInt64(999)

	got, err := log.At(0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), got.RegistrationPrice)

	// mutating a read result must not leak either
	got.RegistrationPrice.SetInt64(777)
	again, err := log.At(0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), again.RegistrationPrice)
}
