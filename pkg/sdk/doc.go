// Package sdk provides the high-level entry point for storing and retrieving
// content on the Filecoin Onchain Cloud.
//
// The SDK simplifies paid warm storage by abstracting the USDFC funding flow
// (payments escrow, operator approvals), piece upload/download against PDP
// storage providers, CDN-accelerated retrieval via FilCDN, and optional IPFS
// pinning.
//
// # Quick Start
//
// Create an SDK instance with configuration, then upload and download pieces:
//
//	import (
//		"github.com/filozone/synapse-sdk-go/pkg/config"
//		"github.com/filozone/synapse-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		cfg := &config.Config{
//			PrivateKey: "YOUR_PRIVATE_KEY",
//			Network:    config.Calibration,
//		}
//
//		client, err := sdk.NewSDK(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		ctx := context.Background()
//		result, err := client.UploadString(ctx, "hello warm storage")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("stored as", result.PieceCID)
//
//		data, err := client.Download(ctx, result.PieceCID)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("retrieved %d bytes\n", len(data))
//	}
//
// # Architecture
//
// The SDK coordinates several subsystems:
//
//   - Blockchain: Filecoin EVM client for the USDFC token, the payments
//     escrow and the warm-storage service contract
//   - Storage: HTTP transport to PDP storage providers and the FilCDN edge
//   - Pinning: optional replication to IPFS via Pinata or a local Kubo node
//
// # Funding
//
// Uploads are paid for from a USDFC escrow account that the warm-storage
// service charges as an approved operator. SetupWallet performs the whole
// funding flow in one call:
//
//	deposit := decimal.NewFromInt(10)  // USDFC moved into escrow
//	rate := decimal.NewFromFloat(0.1)  // max USDFC the service may charge per epoch
//	lockup := decimal.NewFromInt(5)    // max USDFC the service may lock in total
//	err := client.SetupWallet(ctx, deposit, rate, lockup, 10)
//
// The individual steps are also exposed: Deposit, Withdraw, ApproveService,
// WalletBalance and AccountInfo.
//
// There is no rollback across the two transactions SetupWallet submits; a
// confirmed deposit stays in escrow when the approval step fails, and the
// call can be repeated safely.
//
// # Uploading
//
// A closed set of typed entry points covers the supported payload shapes:
// Upload (bytes), UploadString, UploadJSON, UploadReader, UploadFile and
// UploadImage. Payloads must be between MinUploadSize and MaxUploadSize
// bytes. Every entry point runs an allowance preflight first and fails with
// ErrInsufficientAllowance when the operator approval cannot cover the new
// piece; PreflightUpload exposes the same check without uploading.
//
// When the PINATA_JWT environment variable is set at call time, uploaded
// content is additionally pinned to IPFS. Pinning is best-effort: failures
// are logged and never fail the upload, and the result's GatewayURL is set
// only when the pin succeeded. Setting config.IPFSAddr switches pinning to a
// self-hosted Kubo node.
//
// # Downloading
//
// Download returns raw bytes; DownloadText, DownloadJSON, DownloadToFile and
// DownloadImage decode or materialize them. When CDN retrieval is enabled
// (the default), pieces are fetched from the per-wallet FilCDN host first
// and from the storage provider when the CDN cannot serve them.
//
// Missing pieces surface as storage.ErrNotFound; FileExists folds that into
// a plain (false, nil).
//
// # Storage Info
//
// GetStorageInfo aggregates the wallet balance, the escrow account breakdown
// and the service state (pricing, approved provider count) into a single
// snapshot. The method never returns an error: sub-queries degrade
// independently to absent sub-records, and a total failure yields the
// all-zero default record. All amounts are whole-token decimal strings.
//
// # Error Handling
//
// Operations on a zero-value or closed client fail with ErrNotInitialized.
// Validation failures surface as ErrEmptyPayload and ErrPayloadTooLarge,
// funding gaps as ErrInsufficientAllowance. All sentinels work with
// errors.Is; external-call failures are wrapped with %w and keep their
// original message.
//
// # Timeouts
//
// Reads, uploads, downloads and pin calls are bounded by config.Timeouts in
// addition to the caller's context. Transaction submission and receipt
// waiting run on the caller's context alone, since inclusion time on
// Filecoin (30-second epochs) varies; pass a context with a deadline to
// bound funding operations.
//
// # Logging
//
// The package installs a console zap logger as the global logger in init().
// Applications may replace it with zap.ReplaceGlobals.
//
// # Thread Safety
//
// A Core instance is safe for concurrent use once constructed. Close is not
// synchronized with in-flight calls; stop issuing operations before closing.
//
// # Advanced Usage
//
// Access the low-level chain client for custom contract operations:
//
//	evm := client.(*sdk.Core).GetEvm()
//
// # See Also
//
// For runnable programs, see the examples/ directory in the repository:
//   - examples/quick-start: upload and download a piece
//   - examples/wallet-setup: fund the escrow and approve the service
//   - examples/upload-download: every payload shape round-tripped
//   - examples/storage-info: account and service introspection
package sdk
