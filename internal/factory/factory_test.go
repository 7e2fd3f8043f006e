package factory_test

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namehaus/registrar/internal/addressbook"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/factory"
	"github.com/namehaus/registrar/internal/ledger"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/mocks"
	"github.com/namehaus/registrar/internal/payment"
	"github.com/namehaus/registrar/internal/pricing"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	admin       = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	feeReceiver = common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff")
	alice       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob         = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

const period = 365 * 24 * time.Hour

type testFactory struct {
	ctrl    *gomock.Controller
	clock   *mocks.MockClock
	bank    *payment.Bank
	records *ledger.Log
	factory *factory.Factory
	now     time.Time
}

func setupTestFactory(t *testing.T) *testFactory {
	ctrl := gomock.NewController(t)

	tf := &testFactory{
		ctrl:    ctrl,
		clock:   mocks.NewMockClock(ctrl),
		bank:    payment.NewBank(),
		records: ledger.NewLog(),
		now:     time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
	tf.clock.EXPECT().Now().DoAndReturn(func() time.Time { return tf.now }).AnyTimes()

	prices := pricing.NewTable(
		domain.PriceTier{Length: 4, Price: big.NewInt(5)},
		domain.PriceTier{Length: 5, Price: big.NewInt(3)},
	)

	tf.factory = factory.New(factory.Config{
		Shared: factory.SharedConfig{
			Book:        addressbook.NewMemoryBook(),
			Records:     tf.records,
			FeeReceiver: feeReceiver,
			Fee:         big.NewInt(50),
		},
		Admin:            admin,
		ExpirationPeriod: period,
	}, prices, tf.bank, tf.clock, nil)

	tf.bank.Deposit(alice, big.NewInt(200))
	tf.bank.Deposit(bob, big.NewInt(200))

	return tf
}

func (tf *testFactory) balance(t *testing.T, account common.Address) *big.Int {
	t.Helper()
	b, err := tf.bank.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return b
}

func TestFactory_DeployNamespace(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	reg, err := tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(50), alice)
	require.NoError(t, err)
	require.NotNil(t, reg)

	assert.Equal(t, "haus", reg.Label())
	assert.Equal(t, period, reg.ExpirationPeriod())

	// administration of the spawned registry goes to the deployer
	assert.Equal(t, alice, reg.Admin())

	// the deployment fee lands with the fee receiver in full
	assert.Equal(t, big.NewInt(150), tf.balance(t, alice))
	assert.Equal(t, big.NewInt(50), tf.balance(t, feeReceiver))
	assert.Equal(t, big.NewInt(0), tf.balance(t, factory.Account()))

	got, ok := tf.factory.GetNamespaceHandle("haus")
	assert.True(t, ok)
	assert.Same(t, reg, got)
	assert.Equal(t, []string{"haus"}, tf.factory.Labels())
}

func TestFactory_DeployNamespace_LabelTaken(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	_, err := tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(50), alice)
	require.NoError(t, err)

	_, err = tf.factory.DeployNamespace(ctx, "Other", "OTH", "haus", big.NewInt(50), bob)
	assert.ErrorIs(t, err, domain.ErrLabelTaken)
	assert.Equal(t, big.NewInt(200), tf.balance(t, bob))
}

func TestFactory_DeployNamespace_WrongFee(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	// the fee must match exactly, over and under both fail
	_, err := tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(49), alice)
	assert.ErrorIs(t, err, domain.ErrWrongFee)

	_, err = tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(51), alice)
	assert.ErrorIs(t, err, domain.ErrWrongFee)

	_, err = tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", nil, alice)
	assert.ErrorIs(t, err, domain.ErrWrongFee)

	assert.Equal(t, big.NewInt(200), tf.balance(t, alice))
}

func TestFactory_DeployNamespace_InsufficientFunds(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()

	broke := common.HexToAddress("0x3333333333333333333333333333333333333333")
	_, err := tf.factory.DeployNamespace(context.Background(), "Haus Names", "HAUS", "haus", big.NewInt(50), broke)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	_, ok := tf.factory.GetNamespaceHandle("haus")
	assert.False(t, ok)
}

func TestFactory_RegistriesShareLedgerAndPrices(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	haus, err := tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(50), alice)
	require.NoError(t, err)
	casa, err := tf.factory.DeployNamespace(ctx, "Casa Names", "CASA", "casa", big.NewInt(50), bob)
	require.NoError(t, err)

	_, err = haus.RegisterDomain(ctx, "fred", big.NewInt(5), alice)
	require.NoError(t, err)
	_, err = casa.RegisterDomain(ctx, "fred", big.NewInt(5), bob)
	require.NoError(t, err)

	// both registrations land in the one shared ledger, tagged by source
	require.Equal(t, 2, tf.records.Len())
	assert.Len(t, tf.records.BySource("haus"), 1)
	assert.Len(t, tf.records.BySource("casa"), 1)

	// a price change through one registry's admin is visible to the other
	require.NoError(t, haus.SetPriceConfig(4, big.NewInt(9), alice))
	price, err := casa.GetDomainPrice("fred")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), price)
}

func TestFactory_Withdraw(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	// strand some value in the factory account
	tf.bank.Deposit(factory.Account(), big.NewInt(30))

	_, err := tf.factory.Withdraw(ctx, alice)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	swept, err := tf.factory.Withdraw(ctx, feeReceiver)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), swept)
	assert.Equal(t, big.NewInt(30), tf.balance(t, feeReceiver))
	assert.Equal(t, big.NewInt(0), tf.balance(t, factory.Account()))
}

func TestFactory_Withdraw_EmptyBalance(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()

	swept, err := tf.factory.Withdraw(context.Background(), feeReceiver)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), swept)
}

func TestFactory_SetConfig(t *testing.T) {
	tf := setupTestFactory(t)
	defer tf.ctrl.Finish()
	ctx := context.Background()

	newReceiver := common.HexToAddress("0x5555555555555555555555555555555555555555")
	updated := factory.SharedConfig{
		Book:        addressbook.NewMemoryBook(),
		Records:     ledger.NewLog(),
		FeeReceiver: newReceiver,
		Fee:         big.NewInt(75),
	}

	err := tf.factory.SetConfig(updated, alice)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, tf.factory.SetConfig(updated, admin))
	assert.Equal(t, newReceiver, tf.factory.SharedConfig().FeeReceiver)
	assert.Equal(t, big.NewInt(75), tf.factory.SharedConfig().Fee)

	// new deployments are priced against the replaced config
	_, err = tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(50), alice)
	assert.ErrorIs(t, err, domain.ErrWrongFee)

	reg, err := tf.factory.DeployNamespace(ctx, "Haus Names", "HAUS", "haus", big.NewInt(75), alice)
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Equal(t, big.NewInt(75), tf.balance(t, newReceiver))
}

func TestFactory_DeployNamespace_EmitsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)).AnyTimes()

	events := mocks.NewMockEmitter(ctrl)
	bank := payment.NewBank()
	bank.Deposit(alice, big.NewInt(100))

	f := factory.New(factory.Config{
		Shared: factory.SharedConfig{
			Book:        addressbook.NewMemoryBook(),
			Records:     ledger.NewLog(),
			FeeReceiver: feeReceiver,
			Fee:         big.NewInt(50),
		},
		Admin:            admin,
		ExpirationPeriod: period,
	}, pricing.NewTable(), bank, clock, events)

	events.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event domain.Event) {
			assert.Equal(t, domain.EventTypeNamespaceDeployed, event.Type)
			assert.Equal(t, "haus", event.Namespace)
			assert.Equal(t, alice.Hex(), event.Owner)
			assert.Equal(t, "50", event.Payment)
		})

	_, err := f.DeployNamespace(context.Background(), "Haus Names", "HAUS", "haus", big.NewInt(50), alice)
	require.NoError(t, err)
}
