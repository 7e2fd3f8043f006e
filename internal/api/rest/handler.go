package rest

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/namehaus/registrar/internal/api/rest/dto"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/factory"
	"github.com/namehaus/registrar/internal/ledger"
	"github.com/namehaus/registrar/internal/naming"
	"github.com/namehaus/registrar/internal/registry"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// DeployNamespace spawns a registry for a fresh label
	// POST /api/v1/namespaces
	DeployNamespace(c *gin.Context)

	// ListNamespaces lists deployed namespace labels
	// GET /api/v1/namespaces
	ListNamespaces(c *gin.Context)

	// GetNamespace returns the registry handle for a label
	// GET /api/v1/namespaces/:label
	GetNamespace(c *gin.Context)

	// RegisterDomain registers a top-level name
	// POST /api/v1/namespaces/:label/domains
	RegisterDomain(c *gin.Context)

	// RenewDomain extends an existing registration
	// POST /api/v1/namespaces/:label/domains/:name/renewal
	RenewDomain(c *gin.Context)

	// CreateSubdomain creates a sub-name under a parent the caller owns
	// POST /api/v1/namespaces/:label/domains/:name/subdomains
	CreateSubdomain(c *gin.Context)

	// SetResolver repoints where a name routes
	// PUT /api/v1/namespaces/:label/domains/:name/resolver
	SetResolver(c *gin.Context)

	// SetPrimaryDomain marks a name as the caller's primary display name
	// POST /api/v1/namespaces/:label/domains/:name/primary
	SetPrimaryDomain(c *gin.Context)

	// GetDomain returns a name's record
	// GET /api/v1/namespaces/:label/domains/:name
	GetDomain(c *gin.Context)

	// GetDomainPrice returns the registration price for a name
	// GET /api/v1/namespaces/:label/domains/:name/price
	GetDomainPrice(c *gin.Context)

	// GetDomainHash returns the namespace-scoped hash of a name
	// GET /api/v1/namespaces/:label/domains/:name/hash
	GetDomainHash(c *gin.Context)

	// BurnDomain destroys a name's token and record (admin only)
	// DELETE /api/v1/namespaces/:label/domains/:name
	BurnDomain(c *gin.Context)

	// UpsertPrice sets the registration price for a name length (admin only)
	// PUT /api/v1/namespaces/:label/prices
	UpsertPrice(c *gin.Context)

	// ListLedgerEntries lists registration ledger entries
	// GET /api/v1/ledger/entries?owner=<address>&source=<label>
	ListLedgerEntries(c *gin.Context)

	// GetLedgerEntry returns a single ledger entry by index
	// GET /api/v1/ledger/entries/:index
	GetLedgerEntry(c *gin.Context)

	// Withdraw sweeps the factory balance to the fee receiver
	// POST /api/v1/factory/withdrawal
	Withdraw(c *gin.Context)

	// SetFactoryConfig replaces the factory's shared configuration
	// PUT /api/v1/factory/config
	SetFactoryConfig(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug   bool
	factory *factory.Factory
	records *ledger.Log
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, f *factory.Factory, records *ledger.Log) Handler {
	return &handler{
		debug:   debug,
		factory: f,
		records: records,
	}
}

// DeployNamespace spawns a registry for a fresh label
func (h *handler) DeployNamespace(c *gin.Context) {
	var req dto.DeployNamespaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	payment, err := domain.ParseAmount(req.Payment)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	reg, err := h.factory.DeployNamespace(c.Request.Context(), req.Name, req.Symbol, req.Label, payment, caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, namespaceResponse(reg))
}

// ListNamespaces lists deployed namespace labels
func (h *handler) ListNamespaces(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NamespaceListResponse{Labels: h.factory.Labels()})
}

// GetNamespace returns the registry handle for a label
func (h *handler) GetNamespace(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, namespaceResponse(reg))
}

// RegisterDomain registers a top-level name
func (h *handler) RegisterDomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.RegisterDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, payment, ok := parseCallerAndAmount(c, req.Caller, req.Payment)
	if !ok {
		return
	}

	result, err := reg.RegisterDomain(c.Request.Context(), req.Name, payment, caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registrationResponse(result))
}

// RenewDomain extends an existing registration
func (h *handler) RenewDomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.RenewDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, payment, ok := parseCallerAndAmount(c, req.Caller, req.Payment)
	if !ok {
		return
	}

	result, err := reg.RenewDomain(c.Request.Context(), c.Param("name"), payment, caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, registrationResponse(result))
}

// CreateSubdomain creates a sub-name under a parent the caller owns
func (h *handler) CreateSubdomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.CreateSubdomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	owner := caller
	if req.Owner != "" {
		owner, err = domain.ParseAddress(req.Owner)
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}
	}

	result, err := reg.CreateSubDomain(c.Request.Context(), c.Param("name"), req.Name, owner, caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registrationResponse(result))
}

// SetResolver repoints where a name routes
func (h *handler) SetResolver(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.SetResolverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resolver, err := domain.ParseAddress(req.Resolver)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := reg.SetResolver(c.Request.Context(), c.Param("name"), resolver, caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPrimaryDomain marks a name as the caller's primary display name
func (h *handler) SetPrimaryDomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.SetPrimaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := reg.SetPrimaryDomain(c.Request.Context(), c.Param("name"), caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDomain returns a name's record
func (h *handler) GetDomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	name := c.Param("name")
	record, tokenID, err := reg.GetRecord(name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	owner, err := reg.DomainOwner(c.Request.Context(), name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DomainRecordResponse{
		FullName: naming.FullName(record.Name, reg.Label()),
		Owner:    owner.Hex(),
		Resolver: record.Resolver.Hex(),
		TokenID:  uint64(tokenID),
		Expires:  record.Expires,
		Active:   record.Active(time.Now()),
	})
}

// GetDomainPrice returns the registration price for a name
func (h *handler) GetDomainPrice(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	name := c.Param("name")
	price, err := reg.GetDomainPrice(name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PriceResponse{
		Name:   name,
		Length: len(naming.Canonicalize(name)),
		Price:  price.String(),
	})
}

// GetDomainHash returns the namespace-scoped hash of a name
func (h *handler) GetDomainHash(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	name := c.Param("name")
	c.JSON(http.StatusOK, dto.HashResponse{
		Name:     name,
		NameHash: reg.GenerateHash(name).Hex(),
	})
}

// BurnDomain destroys a name's token and record (admin only)
func (h *handler) BurnDomain(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.BurnDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := reg.BurnDomain(c.Request.Context(), c.Param("name"), caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpsertPrice sets the registration price for a name length (admin only)
func (h *handler) UpsertPrice(c *gin.Context) {
	reg, ok := h.registryFor(c)
	if !ok {
		return
	}

	var req dto.UpsertPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, price, ok := parseCallerAndAmount(c, req.Caller, req.Price)
	if !ok {
		return
	}
	if req.Length <= 0 {
		respondValidationError(c, "length must be positive")
		return
	}

	if err := reg.SetPriceConfig(req.Length, price, caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLedgerEntries lists registration ledger entries
func (h *handler) ListLedgerEntries(c *gin.Context) {
	var entries []domain.LedgerEntry

	switch {
	case c.Query("owner") != "":
		owner, err := domain.ParseAddress(c.Query("owner"))
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}
		entries = h.records.ByOwner(owner)
	case c.Query("source") != "":
		entries = h.records.BySource(c.Query("source"))
	default:
		entries = h.records.All()
	}

	response := dto.LedgerEntriesResponse{
		Entries: make([]dto.LedgerEntryResponse, len(entries)),
		Total:   len(entries),
	}
	for i, entry := range entries {
		response.Entries[i] = ledgerEntryResponse(i, entry)
	}

	c.JSON(http.StatusOK, response)
}

// GetLedgerEntry returns a single ledger entry by index
func (h *handler) GetLedgerEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondValidationError(c, "index must be a non-negative integer")
		return
	}

	entry, err := h.records.At(index)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ledgerEntryResponse(index, entry))
}

// Withdraw sweeps the factory balance to the fee receiver
func (h *handler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	amount, err := h.factory.Withdraw(c.Request.Context(), caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{Amount: amount.String()})
}

// SetFactoryConfig replaces the factory's shared configuration
func (h *handler) SetFactoryConfig(c *gin.Context) {
	var req dto.SetFactoryConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := domain.ParseAddress(req.Caller)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	receiver, err := domain.ParseAddress(req.FeeReceiver)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	fee, err := domain.ParseAmount(req.DeployFee)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	shared := h.factory.SharedConfig()
	shared.FeeReceiver = receiver
	shared.Fee = fee

	if err := h.factory.SetConfig(shared, caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// registryFor resolves the :label path parameter to a deployed registry.
// It writes the error response itself when the namespace is unknown.
func (h *handler) registryFor(c *gin.Context) (*registry.Registry, bool) {
	label := c.Param("label")
	reg, ok := h.factory.GetNamespaceHandle(label)
	if !ok {
		respondNotFound(c, "Namespace not found")
		return nil, false
	}
	return reg, true
}

func parseCallerAndAmount(c *gin.Context, callerHex, amount string) (common.Address, *big.Int, bool) {
	caller, err := domain.ParseAddress(callerHex)
	if err != nil {
		respondValidationError(c, err.Error())
		return common.Address{}, nil, false
	}
	value, err := domain.ParseAmount(amount)
	if err != nil {
		respondValidationError(c, err.Error())
		return common.Address{}, nil, false
	}
	return caller, value, true
}

func namespaceResponse(reg *registry.Registry) dto.NamespaceResponse {
	return dto.NamespaceResponse{
		Label:            reg.Label(),
		Admin:            reg.Admin().Hex(),
		Account:          reg.Account().Hex(),
		ExpirationPeriod: reg.ExpirationPeriod().String(),
	}
}

func registrationResponse(result *domain.RegistrationResult) dto.RegistrationResponse {
	response := dto.RegistrationResponse{
		TokenID:  uint64(result.TokenID),
		NameHash: result.NameHash.Hex(),
		FullName: result.FullName,
		Owner:    result.Owner.Hex(),
		Expires:  result.Expires,
	}
	if result.Price != nil {
		response.Price = result.Price.String()
	}
	if result.Refund != nil && result.Refund.Sign() > 0 {
		response.Refund = result.Refund.String()
	}
	return response
}

func ledgerEntryResponse(index int, entry domain.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		Index:             index,
		FullName:          entry.FullName,
		Owner:             entry.Owner.Hex(),
		RegistrationDate:  entry.RegistrationDate,
		ExpirationDate:    entry.ExpirationDate,
		RegistrationPrice: entry.RegistrationPrice.String(),
		Source:            entry.Source,
	}
}
