package rest_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/addressbook"
	"github.com/namehaus/registrar/internal/api/middleware"
	"github.com/namehaus/registrar/internal/api/rest"
	"github.com/namehaus/registrar/internal/api/rest/dto"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/factory"
	"github.com/namehaus/registrar/internal/ledger"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/payment"
	"github.com/namehaus/registrar/internal/pricing"
)

const testAPIKey = "test-api-key"

var (
	admin       = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	feeReceiver = common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff")
	alice       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob         = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

// testServer wires the REST handlers against a real in-memory factory.
type testServer struct {
	router  *gin.Engine
	factory *factory.Factory
	bank    *payment.Bank
	records *ledger.Log
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		bank:    payment.NewBank(),
		records: ledger.NewLog(),
	}

	prices := pricing.NewTable(
		domain.PriceTier{Length: 3, Price: big.NewInt(10)},
		domain.PriceTier{Length: 4, Price: big.NewInt(5)},
		domain.PriceTier{Length: 5, Price: big.NewInt(3)},
	)

	ts.factory = factory.New(factory.Config{
		Shared: factory.SharedConfig{
			Book:        addressbook.NewMemoryBook(),
			Records:     ts.records,
			FeeReceiver: feeReceiver,
			Fee:         big.NewInt(50),
		},
		Admin:            admin,
		ExpirationPeriod: 365 * 24 * time.Hour,
	}, prices, ts.bank, adapter.NewClock(), nil)

	ts.bank.Deposit(alice, big.NewInt(1000))
	ts.bank.Deposit(bob, big.NewInt(1000))

	ts.router = gin.New()
	handler := rest.NewHandler(false, ts.factory, ts.records)
	rest.SetupRoutes(ts.router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return ts
}

func (ts *testServer) request(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)
	return recorder
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "APIKey " + testAPIKey}
}

func (ts *testServer) deployNamespace(t *testing.T) {
	t.Helper()
	recorder := ts.request(t, http.MethodPost, "/api/v1/namespaces", dto.DeployNamespaceRequest{
		Name:    "Haus Names",
		Symbol:  "HAUS",
		Label:   "haus",
		Payment: "50",
		Caller:  alice.Hex(),
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func (ts *testServer) registerDomain(t *testing.T, name, payment string, caller common.Address) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains", dto.RegisterDomainRequest{
		Name:    name,
		Payment: payment,
		Caller:  caller.Hex(),
	}, nil)
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	recorder := ts.request(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	response := decode[dto.HealthResponse](t, recorder)
	assert.Equal(t, "ok", response.Status)
}

func TestDeployNamespace(t *testing.T) {
	ts := setupTestServer(t)

	recorder := ts.request(t, http.MethodPost, "/api/v1/namespaces", dto.DeployNamespaceRequest{
		Name:    "Haus Names",
		Symbol:  "HAUS",
		Label:   "haus",
		Payment: "50",
		Caller:  alice.Hex(),
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	response := decode[dto.NamespaceResponse](t, recorder)
	assert.Equal(t, "haus", response.Label)
	assert.Equal(t, alice.Hex(), response.Admin)
}

func TestDeployNamespace_WrongFee(t *testing.T) {
	ts := setupTestServer(t)

	recorder := ts.request(t, http.MethodPost, "/api/v1/namespaces", dto.DeployNamespaceRequest{
		Name:    "Haus Names",
		Symbol:  "HAUS",
		Label:   "haus",
		Payment: "49",
		Caller:  alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)
}

func TestDeployNamespace_LabelTaken(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodPost, "/api/v1/namespaces", dto.DeployNamespaceRequest{
		Name:    "Other",
		Symbol:  "OTH",
		Label:   "haus",
		Payment: "50",
		Caller:  bob.Hex(),
	}, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestDeployNamespace_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	recorder := ts.request(t, http.MethodPost, "/api/v1/namespaces", map[string]string{
		"label": "haus",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListNamespaces(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodGet, "/api/v1/namespaces", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	response := decode[dto.NamespaceListResponse](t, recorder)
	assert.Equal(t, []string{"haus"}, response.Labels)
}

func TestGetNamespace_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	recorder := ts.request(t, http.MethodGet, "/api/v1/namespaces/ghost", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRegisterDomain(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "8", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	response := decode[dto.RegistrationResponse](t, recorder)
	assert.Equal(t, uint64(1), response.TokenID)
	assert.Equal(t, "fred.haus", response.FullName)
	assert.Equal(t, bob.Hex(), response.Owner)
	assert.Equal(t, "5", response.Price)
	assert.Equal(t, "3", response.Refund)
}

func TestRegisterDomain_ErrorMapping(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// duplicate name
	recorder = ts.registerDomain(t, "fred", "5", alice)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// no price tier for the length
	recorder = ts.registerDomain(t, "ab", "50", alice)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	// payment below the price
	recorder = ts.registerDomain(t, "wilma", "1", alice)
	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)

	// malformed caller address
	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains", dto.RegisterDomainRequest{
		Name:    "wilma",
		Payment: "5",
		Caller:  "not-an-address",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	// unknown namespace
	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/ghost/domains", dto.RegisterDomainRequest{
		Name:    "wilma",
		Payment: "5",
		Caller:  alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRenewDomain(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)
	registered := decode[dto.RegistrationResponse](t, recorder)

	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/renewal", dto.RenewDomainRequest{
		Payment: "5",
		Caller:  bob.Hex(),
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	renewed := decode[dto.RegistrationResponse](t, recorder)
	assert.True(t, renewed.Expires.After(registered.Expires))

	// only the owner may renew
	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/renewal", dto.RenewDomainRequest{
		Payment: "5",
		Caller:  alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateSubdomain(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/subdomains", dto.CreateSubdomainRequest{
		Name:   "pay",
		Owner:  alice.Hex(),
		Caller: bob.Hex(),
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	response := decode[dto.RegistrationResponse](t, recorder)
	assert.Equal(t, "pay.fred.haus", response.FullName)
	assert.Equal(t, alice.Hex(), response.Owner)

	// only the parent owner may create sub-names
	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/subdomains", dto.CreateSubdomainRequest{
		Name:   "mail",
		Caller: alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestSetResolver(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	target := common.HexToAddress("0x4444444444444444444444444444444444444444")
	recorder = ts.request(t, http.MethodPut, "/api/v1/namespaces/haus/domains/fred/resolver", dto.SetResolverRequest{
		Resolver: target.Hex(),
		Caller:   bob.Hex(),
	}, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/fred", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decode[dto.DomainRecordResponse](t, recorder)
	assert.Equal(t, target.Hex(), response.Resolver)
	assert.Equal(t, bob.Hex(), response.Owner)
	assert.True(t, response.Active)
}

func TestSetPrimaryDomain(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/primary", dto.SetPrimaryRequest{
		Caller: bob.Hex(),
	}, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces/haus/domains/fred/primary", dto.SetPrimaryRequest{
		Caller: alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetDomain_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/ghost", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetDomainPrice(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/fred/price", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	response := decode[dto.PriceResponse](t, recorder)
	assert.Equal(t, "fred", response.Name)
	assert.Equal(t, 4, response.Length)
	assert.Equal(t, "5", response.Price)

	recorder = ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/ab/price", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestGetDomainHash(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/fred/hash", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	response := decode[dto.HashResponse](t, recorder)
	assert.Equal(t, "fred", response.Name)
	assert.Len(t, response.NameHash, 66)
}

func TestBurnDomain(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.registerDomain(t, "fred", "5", bob)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// burning requires authentication
	recorder = ts.request(t, http.MethodDelete, "/api/v1/namespaces/haus/domains/fred", dto.BurnDomainRequest{
		Caller: alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// the namespace admin is the deployer, not an arbitrary caller
	recorder = ts.request(t, http.MethodDelete, "/api/v1/namespaces/haus/domains/fred", dto.BurnDomainRequest{
		Caller: bob.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = ts.request(t, http.MethodDelete, "/api/v1/namespaces/haus/domains/fred", dto.BurnDomainRequest{
		Caller: alice.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/fred", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpsertPrice(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	recorder := ts.request(t, http.MethodPut, "/api/v1/namespaces/haus/prices", dto.UpsertPriceRequest{
		Length: 6,
		Price:  "2",
		Caller: alice.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = ts.request(t, http.MethodGet, "/api/v1/namespaces/haus/domains/barney/price", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decode[dto.PriceResponse](t, recorder)
	assert.Equal(t, "2", response.Price)

	// the namespace admin only
	recorder = ts.request(t, http.MethodPut, "/api/v1/namespaces/haus/prices", dto.UpsertPriceRequest{
		Length: 6,
		Price:  "2",
		Caller: bob.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestListLedgerEntries(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)

	require.Equal(t, http.StatusCreated, ts.registerDomain(t, "fred", "5", bob).Code)
	require.Equal(t, http.StatusCreated, ts.registerDomain(t, "wilma", "3", alice).Code)

	recorder := ts.request(t, http.MethodGet, "/api/v1/ledger/entries", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decode[dto.LedgerEntriesResponse](t, recorder)
	assert.Equal(t, 2, response.Total)
	require.Len(t, response.Entries, 2)
	assert.Equal(t, "fred.haus", response.Entries[0].FullName)

	recorder = ts.request(t, http.MethodGet, "/api/v1/ledger/entries?owner="+alice.Hex(), nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response = decode[dto.LedgerEntriesResponse](t, recorder)
	assert.Equal(t, 1, response.Total)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "wilma.haus", response.Entries[0].FullName)

	recorder = ts.request(t, http.MethodGet, "/api/v1/ledger/entries?source=haus", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response = decode[dto.LedgerEntriesResponse](t, recorder)
	assert.Equal(t, 2, response.Total)
}

func TestGetLedgerEntry(t *testing.T) {
	ts := setupTestServer(t)
	ts.deployNamespace(t)
	require.Equal(t, http.StatusCreated, ts.registerDomain(t, "fred", "5", bob).Code)

	recorder := ts.request(t, http.MethodGet, "/api/v1/ledger/entries/0", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decode[dto.LedgerEntryResponse](t, recorder)
	assert.Equal(t, 0, response.Index)
	assert.Equal(t, "fred.haus", response.FullName)
	assert.Equal(t, "5", response.RegistrationPrice)
	assert.Equal(t, "haus", response.Source)

	recorder = ts.request(t, http.MethodGet, "/api/v1/ledger/entries/5", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = ts.request(t, http.MethodGet, "/api/v1/ledger/entries/abc", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestWithdraw(t *testing.T) {
	ts := setupTestServer(t)
	ts.bank.Deposit(factory.Account(), big.NewInt(30))

	recorder := ts.request(t, http.MethodPost, "/api/v1/factory/withdrawal", dto.WithdrawRequest{
		Caller: feeReceiver.Hex(),
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = ts.request(t, http.MethodPost, "/api/v1/factory/withdrawal", dto.WithdrawRequest{
		Caller: alice.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = ts.request(t, http.MethodPost, "/api/v1/factory/withdrawal", dto.WithdrawRequest{
		Caller: feeReceiver.Hex(),
	}, authHeader())
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decode[dto.WithdrawResponse](t, recorder)
	assert.Equal(t, "30", response.Amount)
}

func TestSetFactoryConfig(t *testing.T) {
	ts := setupTestServer(t)

	newReceiver := common.HexToAddress("0x5555555555555555555555555555555555555555")

	recorder := ts.request(t, http.MethodPut, "/api/v1/factory/config", dto.SetFactoryConfigRequest{
		FeeReceiver: newReceiver.Hex(),
		DeployFee:   "75",
		Caller:      alice.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = ts.request(t, http.MethodPut, "/api/v1/factory/config", dto.SetFactoryConfigRequest{
		FeeReceiver: newReceiver.Hex(),
		DeployFee:   "75",
		Caller:      admin.Hex(),
	}, authHeader())
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	// the new fee applies to subsequent deployments
	recorder = ts.request(t, http.MethodPost, "/api/v1/namespaces", dto.DeployNamespaceRequest{
		Name:    "Haus Names",
		Symbol:  "HAUS",
		Label:   "haus",
		Payment: "50",
		Caller:  alice.Hex(),
	}, nil)
	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)
}
