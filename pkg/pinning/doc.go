// Package pinning provides optional IPFS pinning for uploaded content.
//
// Warm-storage uploads are retrievable from the storage provider and the
// FilCDN edge, but not from public IPFS gateways. Pinning bridges that gap:
// after a successful upload the SDK asks a pinner to pin the piece CID, and
// carries the resulting gateway URL on the upload result.
//
// # Pinners
//
// Two implementations are provided behind the Pinner interface:
//
//   - RemotePinner submits pinByHash requests to a hosted pinning service
//     (Pinata-compatible). Credentials come from the PINATA_JWT environment
//     variable, read at call time so tokens can be rotated without
//     reconstructing the SDK.
//   - NodePinner pins through a self-hosted Kubo node's HTTP API, for
//     deployments that run their own IPFS infrastructure.
//
// The SDK selects NodePinner when Config.IPFSAddr is set and RemotePinner
// otherwise. A RemotePinner without credentials reports Enabled() == false
// and the SDK skips pinning entirely.
//
// # Failure Model
//
// Pinning is best-effort. A pin failure never fails the upload that
// triggered it; the SDK logs a warning and returns the result without a
// gateway URL.
package pinning
