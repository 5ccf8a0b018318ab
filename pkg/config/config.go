package config

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer is an externally supplied signing provider used instead of a raw
// private key, e.g. a hardware wallet or a remote KMS. Implementations must
// produce EIP-155 signatures for the configured chain.
type Signer interface {
	// Address returns the account the signer signs for.
	Address() common.Address
	// SignTx signs the given transaction for the given chain ID.
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Network describes a target Filecoin EVM chain together with its well-known
// deployments and service endpoints. All fields are defaults; Config values
// override them per instance.
type Network struct {
	// ChainID is the EVM chain ID used for EIP-155 signing.
	ChainID string `json:"chain_id"`
	// Name is the human-readable network selector ("mainnet", "calibration").
	Name string `json:"network_name"`
	// RPCAddr is the default JSON-RPC endpoint.
	RPCAddr string `json:"rpc_addr"`
	// TokenAddr is the USDFC stablecoin (ERC-20) contract address.
	TokenAddr string `json:"token_addr"`
	// PaymentsAddr is the payments escrow contract address.
	PaymentsAddr string `json:"payments_addr"`
	// WarmStorageAddr is the warm-storage service (operator) contract address.
	WarmStorageAddr string `json:"warm_storage_addr"`
	// ProviderEndpoint is the default storage-provider REST base URL.
	ProviderEndpoint string `json:"provider_endpoint"`
	// CDNHost is the FilCDN host suffix used for CDN-accelerated retrieval.
	CDNHost string `json:"cdn_host"`
}

// Mainnet is the predefined Network for Filecoin mainnet.
var Mainnet = Network{
	ChainID:          "314",
	Name:             "mainnet",
	RPCAddr:          "https://api.node.glif.io/rpc/v1",
	TokenAddr:        "0x80B98d3aa09ffff255c3ba4A241111Ff1262F045",
	PaymentsAddr:     "0x8BA1f109551bD432803012645Ac136ddd64DBA72",
	WarmStorageAddr:  "0x8e1b64E3C1c8cDDe5C6E6E1F5fD64bBEB8cC2334",
	ProviderEndpoint: "https://pdp.filoz.org",
	CDNHost:          "filcdn.io",
}

// Calibration is the predefined Network for the Filecoin Calibration testnet.
var Calibration = Network{
	ChainID:          "314159",
	Name:             "calibration",
	RPCAddr:          "https://api.calibration.node.glif.io/rpc/v1",
	TokenAddr:        "0xb3042734b608a1B16e9e86B374A3f3e389B4cDf0",
	PaymentsAddr:     "0x0E690D3e60B0576D01352AB03b258115eb84A047",
	WarmStorageAddr:  "0x394feCa6bCB84502d93c0c5C03c620ba8897e8f4",
	ProviderEndpoint: "https://pdp.calibration.filoz.org",
	CDNHost:          "calibration.filcdn.io",
}

// NetworkByName resolves a network selector string to a predefined Network.
// Recognized selectors are "mainnet" and "calibration".
func NetworkByName(name string) (Network, error) {
	switch name {
	case Mainnet.Name:
		return Mainnet, nil
	case Calibration.Name:
		return Calibration, nil
	default:
		return Network{}, fmt.Errorf("unknown network %q (want %q or %q)", name, Mainnet.Name, Calibration.Name)
	}
}

// Config holds all SDK settings required to initialize the chain, storage and
// pinning clients. Use Validate to fill implicit defaults and to check for
// required fields.
type Config struct {
	// Network selects the target chain. Defaults to Calibration.
	Network Network `json:"network" yaml:"network"`
	// RPCAddr is the JSON-RPC endpoint URL. Defaults to the network's endpoint.
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// PrivateKey is the hex-encoded ECDSA private key used for signed
	// operations. Mutually exclusive with Signer; exactly one is required.
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// Signer is an externally supplied signing provider. Mutually exclusive
	// with PrivateKey; exactly one is required.
	Signer Signer `json:"-" yaml:"-"`
	// Authorization is an optional bearer token attached to every JSON-RPC
	// request (e.g. a GLIF endpoint token).
	Authorization string `json:"authorization" yaml:"authorization"`
	// ProviderEndpoint is the storage-provider REST base URL.
	// Defaults to the network's endpoint.
	ProviderEndpoint string `json:"provider_endpoint" yaml:"provider_endpoint"`
	// GatewayURL is the public IPFS gateway base used to build gateway URLs
	// for pinned content. Default: https://ipfs.io/ipfs/
	GatewayURL string `json:"gateway_url" yaml:"gateway_url"`
	// PinEndpoint is the hosted pinning-service endpoint.
	// Default: https://api.pinata.cloud/pinning/pinByHash
	PinEndpoint string `json:"pin_endpoint" yaml:"pin_endpoint"`
	// IPFSAddr is an optional Kubo HTTP API endpoint (e.g.
	// "http://localhost:5001"). When set, pinning goes through the local
	// node instead of the hosted pinning service.
	IPFSAddr string `json:"ipfs_addr" yaml:"ipfs_addr"`
	// DisableCDN turns off CDN-accelerated retrieval. CDN is on by default.
	DisableCDN bool `json:"disable_cdn" yaml:"disable_cdn"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration // RPC dial/connect
	ChainRead   time.Duration // eth_call, balance etc
	ChainSubmit time.Duration // send tx
	ReceiptWait time.Duration // wait tx confirmation
	Upload      time.Duration // provider piece upload
	Download    time.Duration // provider/CDN piece download
	Pin         time.Duration // pinning-service call
}

// Validate normalizes the configuration by applying implicit defaults for
// Network (Calibration), RPCAddr, ProviderEndpoint, GatewayURL and
// PinEndpoint, and verifies that exactly one of PrivateKey/Signer is set.
func (c *Config) Validate() error {

	if c.Network.ChainID == "" {
		c.Network = Calibration
	}

	if c.RPCAddr == "" {
		c.RPCAddr = c.Network.RPCAddr
	}

	if c.ProviderEndpoint == "" {
		c.ProviderEndpoint = c.Network.ProviderEndpoint
	}

	if c.GatewayURL == "" {
		c.GatewayURL = "https://ipfs.io/ipfs/"
	}

	if c.PinEndpoint == "" {
		c.PinEndpoint = "https://api.pinata.cloud/pinning/pinByHash"
	}

	if c.PrivateKey == "" && c.Signer == nil {
		return errors.New("either PrivateKey or Signer is required")
	}
	if c.PrivateKey != "" && c.Signer != nil {
		return errors.New("PrivateKey and Signer are mutually exclusive; provide exactly one")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
//	Upload:      10m
//	Download:    10m
//	Pin:         30s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	if tt.Upload == 0 {
		tt.Upload = 10 * time.Minute
	}
	if tt.Download == 0 {
		tt.Download = 10 * time.Minute
	}
	if tt.Pin == 0 {
		tt.Pin = 30 * time.Second
	}
	return tt
}
