// Package storage provides piece transport for Filecoin warm storage.
//
// This package contains the HTTP client used to move pieces between the
// application and the storage network:
//   - Uploads to a PDP (Proof of Data Possession) storage provider
//   - Downloads from the provider or the FilCDN edge network
//   - Existence checks and provider health probes
//   - Piece CID sanitizing and validation
//
// # Uploading
//
// Pieces are uploaded to the provider's PDP endpoint as multipart form data.
// The provider responds with the piece CID that addresses the content:
//
//	client := storage.NewClient("https://pdp.calibration.filoz.org", "", "", false)
//	pieceCid, err := client.UploadPiece(ctx, data, "report.json", "application/json")
//
// Payload sizes are bounded by MinUploadSize (1 byte) and MaxUploadSize
// (200 MiB); enforcement happens in the sdk package before transport.
//
// # Downloading
//
// Downloads are addressed by piece CID. When CDN retrieval is enabled the
// client fetches from FilCDN first and falls back to the provider when the
// CDN cannot serve the piece:
//
//	client := storage.NewClient(providerURL, "calibration.filcdn.io", walletAddr, true)
//	data, err := client.DownloadPiece(ctx, pieceCid)
//
// FilCDN serves each wallet's pieces from its own subdomain:
//
//	https://{wallet}.calibration.filcdn.io/{pieceCid}
//
// # Missing Pieces
//
// A piece absent from the provider is reported as ErrNotFound, which wraps
// cleanly through the call chain:
//
//	data, err := client.DownloadPiece(ctx, pieceCid)
//	if errors.Is(err, storage.ErrNotFound) {
//		// piece does not exist
//	}
//
// StatPiece performs the same check without transferring content:
//
//	size, err := client.StatPiece(ctx, pieceCid)
//
// # CID Handling
//
// Incoming CIDs are sanitized (URI scheme prefixes and stray punctuation
// removed) and validated before any request is made, so malformed input
// fails fast without touching the network.
//
// # Timeouts
//
// The client carries no global HTTP timeout; deadlines come from the
// caller's context. The sdk package applies Config.Timeouts.Upload and
// Config.Timeouts.Download around these calls.
package storage
