package dto

// DeployNamespaceRequest is the body for deploying a new namespace registry
type DeployNamespaceRequest struct {
	// Name is the ownership token collection name (e.g. "Haus Names")
	Name string `json:"name" binding:"required"`
	// Symbol is the ownership token symbol (e.g. "HAUS")
	Symbol string `json:"symbol" binding:"required"`
	// Label is the namespace label ("haus" in "alice.haus")
	Label string `json:"label" binding:"required"`
	// Payment is the deploy fee in base units (decimal string); must match exactly
	Payment string `json:"payment" binding:"required"`
	// Caller is the paying address; it becomes the registry admin
	Caller string `json:"caller" binding:"required"`
}

// RegisterDomainRequest is the body for registering a top-level name
type RegisterDomainRequest struct {
	Name string `json:"name" binding:"required"`
	// Payment is the offered amount in base units (decimal string)
	Payment string `json:"payment" binding:"required"`
	// Caller pays and becomes the owner
	Caller string `json:"caller" binding:"required"`
}

// RenewDomainRequest is the body for renewing a registration
type RenewDomainRequest struct {
	Payment string `json:"payment" binding:"required"`
	Caller  string `json:"caller" binding:"required"`
}

// CreateSubdomainRequest is the body for creating a sub-name under a parent
type CreateSubdomainRequest struct {
	// Name is the sub-name segment ("pay" in "pay.alice.haus")
	Name string `json:"name" binding:"required"`
	// Owner receives the sub-name token; defaults to caller when empty
	Owner  string `json:"owner"`
	Caller string `json:"caller" binding:"required"`
}

// SetResolverRequest is the body for repointing a name's resolver
type SetResolverRequest struct {
	Resolver string `json:"resolver" binding:"required"`
	Caller   string `json:"caller" binding:"required"`
}

// SetPrimaryRequest is the body for marking a name as the caller's primary name
type SetPrimaryRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// BurnDomainRequest is the body for administratively destroying a name
type BurnDomainRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// UpsertPriceRequest is the body for setting the price of a name length
type UpsertPriceRequest struct {
	Length int    `json:"length" binding:"required"`
	Price  string `json:"price" binding:"required"`
	Caller string `json:"caller" binding:"required"`
}

// WithdrawRequest is the body for sweeping the factory balance
type WithdrawRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// SetFactoryConfigRequest is the body for replacing the factory's shared configuration
type SetFactoryConfigRequest struct {
	FeeReceiver string `json:"fee_receiver" binding:"required"`
	DeployFee   string `json:"deploy_fee" binding:"required"`
	Caller      string `json:"caller" binding:"required"`
}
