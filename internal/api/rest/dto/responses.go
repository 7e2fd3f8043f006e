package dto

import "time"

// RegistrationResponse reports a committed registration, renewal or sub-name
// creation. Amounts are decimal strings in base units.
type RegistrationResponse struct {
	TokenID  uint64    `json:"token_id"`
	NameHash string    `json:"name_hash"`
	FullName string    `json:"full_name"`
	Owner    string    `json:"owner"`
	Price    string    `json:"price"`
	Refund   string    `json:"refund,omitempty"`
	Expires  time.Time `json:"expires"`
}

// DomainRecordResponse is the read model for a registered name
type DomainRecordResponse struct {
	FullName string    `json:"full_name"`
	Owner    string    `json:"owner"`
	Resolver string    `json:"resolver"`
	TokenID  uint64    `json:"token_id"`
	Expires  time.Time `json:"expires"`
	Active   bool      `json:"active"`
}

// PriceResponse reports the registration price for a name
type PriceResponse struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Price  string `json:"price"`
}

// HashResponse reports the name hash for a name within a namespace
type HashResponse struct {
	Name     string `json:"name"`
	NameHash string `json:"name_hash"`
}

// NamespaceResponse is the read model for a deployed namespace
type NamespaceResponse struct {
	Label            string `json:"label"`
	Admin            string `json:"admin"`
	Account          string `json:"account"`
	ExpirationPeriod string `json:"expiration_period"`
}

// NamespaceListResponse lists deployed namespace labels
type NamespaceListResponse struct {
	Labels []string `json:"labels"`
}

// LedgerEntryResponse is the read model for a single ledger entry
type LedgerEntryResponse struct {
	Index             int       `json:"index"`
	FullName          string    `json:"full_name"`
	Owner             string    `json:"owner"`
	RegistrationDate  time.Time `json:"registration_date"`
	ExpirationDate    time.Time `json:"expiration_date"`
	RegistrationPrice string    `json:"registration_price"`
	Source            string    `json:"source"`
}

// LedgerEntriesResponse lists ledger entries with the total count
type LedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Total   int                   `json:"total"`
}

// WithdrawResponse reports the amount swept to the fee receiver
type WithdrawResponse struct {
	Amount string `json:"amount"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status string `json:"status"`
}
