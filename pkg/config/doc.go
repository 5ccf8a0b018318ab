// Package config provides configuration management for the Synapse SDK.
//
// This package defines the Config structure that controls all SDK behavior
// including network selection, RPC endpoints, signing credentials, storage
// provider endpoints, pinning, CDN retrieval, and timeouts.
//
// # Basic Configuration
//
// The minimum required configuration needs signing credentials; everything
// else defaults to the Filecoin Calibration testnet:
//
//	cfg := &config.Config{
//		PrivateKey: "YOUR_PRIVATE_KEY",
//	}
//
// # Network Selection
//
// Two predefined networks are available:
//
//	config.Mainnet     - Filecoin mainnet (ChainID: 314)
//	config.Calibration - Filecoin Calibration testnet (ChainID: 314159)
//
// Networks can also be resolved from a selector string:
//
//	net, err := config.NetworkByName("calibration")
//
// Each Network carries the chain ID, the default JSON-RPC endpoint, the
// USDFC token deployment, the payments and warm-storage contract addresses,
// the default storage-provider endpoint, and the FilCDN host.
//
// # Signing Credentials
//
// Exactly one of PrivateKey or Signer must be provided.
//
// PrivateKey is a hex-encoded ECDSA key (with or without the "0x" prefix)
// used for all signed operations: deposits, withdrawals, operator approvals.
//
//	cfg.PrivateKey = "abcdef1234567890..." // 64 hex characters
//
// Signer plugs in an external signing provider (hardware wallet, KMS):
//
//	cfg.Signer = myKMSSigner // implements config.Signer
//
// Validate() returns an error when neither or both are set.
//
// # RPC Endpoints
//
// The default endpoints are the public GLIF nodes. A custom endpoint plus an
// optional bearer token can be configured:
//
//	cfg.RPCAddr = "https://api.node.glif.io/rpc/v1"
//	cfg.Authorization = "Bearer YOUR_GLIF_TOKEN"
//
// # Storage and Pinning Endpoints
//
// Uploads go to a PDP storage provider; pinned content is served through a
// public IPFS gateway. Defaults are provided per network:
//
//	cfg.ProviderEndpoint = "https://pdp.calibration.filoz.org"
//	cfg.GatewayURL = "https://ipfs.io/ipfs/"
//	cfg.PinEndpoint = "https://api.pinata.cloud/pinning/pinByHash"
//
// Setting IPFSAddr switches pinning to a self-hosted Kubo node:
//
//	cfg.IPFSAddr = "http://localhost:5001"
//
// # CDN Retrieval
//
// CDN-accelerated retrieval through FilCDN is enabled by default. Disable it
// to fetch pieces directly from the storage provider:
//
//	cfg.DisableCDN = true
//
// # Timeouts
//
// All operations have configurable timeouts. The Timeouts struct provides
// granular control:
//
//	cfg.Timeouts = config.Timeouts{
//		Dial:        5 * time.Second,   // RPC connection timeout
//		ChainRead:   12 * time.Second,  // Blockchain read timeout
//		ChainSubmit: 25 * time.Second,  // Transaction submission timeout
//		ReceiptWait: 90 * time.Second,  // Transaction confirmation timeout
//		Upload:      10 * time.Minute,  // Provider piece upload timeout
//		Download:    10 * time.Minute,  // Piece download timeout
//		Pin:         30 * time.Second,  // Pinning-service call timeout
//	}
//
// Zero values are replaced with sensible defaults via WithDefaults().
//
// # Debug Mode
//
// Enable debug logging for troubleshooting:
//
//	cfg.Debug = true
//
// # Configuration Validation
//
// Always call Validate() to apply defaults and check required fields:
//
//	cfg := &config.Config{...}
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
//
// Validate() will:
//   - Set the network to Calibration if not provided
//   - Set default RPC, provider, gateway and pinning endpoints
//   - Return an error unless exactly one of PrivateKey/Signer is set
//
// # Complete Example
//
//	import (
//		"time"
//		"github.com/filozone/synapse-sdk-go/pkg/config"
//	)
//
//	func loadConfig() (*config.Config, error) {
//		cfg := &config.Config{
//			Network:    config.Calibration,
//			PrivateKey: "YOUR_PRIVATE_KEY",
//			Debug:      true,
//			Timeouts: config.Timeouts{
//				ChainRead:   15 * time.Second,
//				ReceiptWait: 2 * time.Minute,
//			},
//		}
//
//		return cfg, cfg.Validate()
//	}
//
// # Thread Safety
//
// Config instances should be created once and not modified after passing to
// sdk.NewSDK(). The Config is read-only during SDK operations.
//
// # See Also
//
//   - sdk.NewSDK() for SDK initialization
//   - examples/quick-start for basic configuration
package config
