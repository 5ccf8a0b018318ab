// Package model defines the value records returned by the SDK: upload
// results, account and storage-service snapshots, and preflight estimates.
// These structs mirror the JSON documents exchanged with storage providers.
package model

import "math/big"

// UploadResult describes a completed piece upload. It is immutable once
// returned; GatewayURL is present only when the optional pinning side effect
// succeeded.
type UploadResult struct {
	// PieceCID is the opaque content identifier assigned by the storage
	// network (piece commitment CID, "baga..." on Filecoin).
	PieceCID string `json:"pieceCid"`
	// Size is the payload length in bytes as validated before upload.
	Size int64 `json:"size"`
	// Timestamp is the upload completion time, unix seconds.
	Timestamp int64 `json:"timestamp"`
	// Filename is the caller-supplied or defaulted name, if any.
	Filename string `json:"filename,omitempty"`
	// GatewayURL is a public IPFS gateway URL for the pinned content.
	GatewayURL string `json:"gatewayURL,omitempty"`
	// ContentType is the caller-supplied or sniffed MIME type, if any.
	ContentType string `json:"contentType,omitempty"`
}

// AccountInfo is the funds breakdown of the payments-contract account,
// formatted as whole-token decimal strings.
type AccountInfo struct {
	AvailableFunds string `json:"availableFunds"`
	LockedFunds    string `json:"lockedFunds"`
	TotalFunds     string `json:"totalFunds"`
}

// Pricing carries the storage service's advertised per-TiB-per-month prices
// as whole-token decimal strings, plus the token the prices are quoted in.
type Pricing struct {
	PerTiBPerMonth        string `json:"pricePerTiBPerMonth"`
	PerTiBPerMonthWithCDN string `json:"pricePerTiBPerMonthWithCDN"`
	TokenAddress          string `json:"tokenAddress"`
	EpochsPerMonth        uint64 `json:"epochsPerMonth"`
}

// ServiceInfo aggregates storage-service state: pricing, the number of
// approved providers, and the network name the snapshot was taken on.
type ServiceInfo struct {
	Pricing   *Pricing `json:"pricing"`
	Providers int      `json:"providers"`
	Network   string   `json:"network"`
}

// StorageInfo is a read-only snapshot combining the wallet balance, the
// payments-account breakdown, and the service aggregate. Sub-records are
// pointers so an individually failed sub-query shows as absent rather than
// as fabricated zeroes.
type StorageInfo struct {
	Balance     string       `json:"balance"`
	AccountInfo *AccountInfo `json:"accountInfo"`
	ServiceInfo *ServiceInfo `json:"storageInfo"`
}

// DefaultStorageInfo returns the all-zero/unknown record used when the whole
// storage-info composition fails. The network name is preserved when known.
func DefaultStorageInfo(network string) *StorageInfo {
	if network == "" {
		network = "unknown"
	}
	return &StorageInfo{
		Balance: "0",
		AccountInfo: &AccountInfo{
			AvailableFunds: "0",
			LockedFunds:    "0",
			TotalFunds:     "0",
		},
		ServiceInfo: &ServiceInfo{
			Pricing:   nil,
			Providers: 0,
			Network:   network,
		},
	}
}

// PreflightCost estimates what storing a payload costs at the service's
// current price, expressed in base units.
type PreflightCost struct {
	PerEpoch *big.Int `json:"perEpoch"`
	PerDay   *big.Int `json:"perDay"`
	PerMonth *big.Int `json:"perMonth"`
}

// AllowanceCheck reports whether the caller's current operator approval
// covers a prospective upload, with a human-readable explanation when not.
type AllowanceCheck struct {
	Sufficient bool   `json:"sufficient"`
	Message    string `json:"message,omitempty"`
}

// Preflight is the result of an upload preflight: the estimated recurring
// cost and the allowance verdict.
type Preflight struct {
	EstimatedCost  PreflightCost  `json:"estimatedCost"`
	AllowanceCheck AllowanceCheck `json:"allowanceCheck"`
}
