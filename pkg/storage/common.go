// Package storage provides piece transport for the Synapse SDK: uploads to
// PDP storage providers, downloads from the provider or the FilCDN edge
// network, and piece CID sanitizing and validation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/ipfs/go-cid"
	"go.uber.org/zap"
)

const (
	// MinUploadSize is the smallest accepted piece payload in bytes.
	MinUploadSize = 1
	// MaxUploadSize is the largest accepted piece payload: 200 MiB.
	MaxUploadSize = 200 * 1024 * 1024

	// IpfsPrefix is the URI scheme prefix recognized for IPFS content.
	IpfsPrefix = "ipfs://"
	// PiecePrefix is the URI scheme prefix recognized for piece content.
	PiecePrefix = "piece://"
)

// ErrNotFound reports that a piece does not exist on the queried source.
// Callers should test for it with errors.Is.
var ErrNotFound = errors.New("piece not found")

// CDNFetcher fetches a piece belonging to a wallet from the FilCDN edge network.
type CDNFetcher interface {
	Fetch(ctx context.Context, walletAddr, pieceCID string) ([]byte, error)
}

// Client performs piece uploads and retrievals against a PDP storage
// provider, optionally routing downloads through FilCDN.
type Client struct {
	// ProviderURL is the storage provider REST base URL, without trailing slash.
	ProviderURL string
	// CDNHost is the FilCDN host suffix (e.g. "calibration.filcdn.io").
	CDNHost string
	// WalletAddr is the lowercase hex wallet address used in CDN URLs.
	WalletAddr string
	// UseCDN routes downloads through FilCDN when the host and wallet are set.
	UseCDN bool

	httpClient *http.Client
	cdnFetcher CDNFetcher
}

// NewClient constructs a piece transport client. Request deadlines are taken
// from the caller's context, so the underlying HTTP client carries none.
func NewClient(providerURL, cdnHost, walletAddr string, useCDN bool) *Client {
	c := &Client{
		ProviderURL: strings.TrimRight(providerURL, "/"),
		CDNHost:     cdnHost,
		WalletAddr:  strings.ToLower(walletAddr),
		UseCDN:      useCDN,
		httpClient:  &http.Client{},
	}
	c.cdnFetcher = defaultCDNFetcher{host: cdnHost, client: c.httpClient}
	return c
}

// DownloadPiece retrieves a piece by CID. When CDN retrieval is enabled the
// piece is fetched from FilCDN first, falling back to the storage provider
// if the CDN cannot serve it.
func (c *Client) DownloadPiece(ctx context.Context, pieceCID string) ([]byte, error) {
	clean, err := sanitizePieceCID(pieceCID)
	if err != nil {
		return nil, err
	}

	if c.UseCDN && c.CDNHost != "" && c.WalletAddr != "" {
		if c.cdnFetcher == nil {
			c.cdnFetcher = defaultCDNFetcher{host: c.CDNHost, client: c.http()}
		}
		data, err := c.cdnFetcher.Fetch(ctx, c.WalletAddr, clean)
		if err == nil {
			return data, nil
		}
		zap.L().Warn("CDN fetch failed, falling back to provider",
			zap.String("pieceCid", clean), zap.Error(err))
	}

	return c.fetchProvider(ctx, clean)
}

// http returns the configured HTTP client, lazily creating a default one so
// zero-value clients remain usable.
func (c *Client) http() *http.Client {
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c.httpClient
}

// sanitizePieceCID strips known URI scheme prefixes and stray punctuation
// from the supplied CID, then validates the remainder parses as a CID.
func sanitizePieceCID(pieceCID string) (string, error) {
	clean := strings.Replace(pieceCID, IpfsPrefix, "", -1)
	clean = strings.Replace(clean, PiecePrefix, "", -1)
	clean = stripNonAlphanumeric(clean)
	if _, err := cid.Parse(clean); err != nil {
		return "", fmt.Errorf("invalid piece CID %q: %w", pieceCID, err)
	}
	return clean, nil
}

// stripNonAlphanumeric removes all characters except ASCII letters and digits.
// Used to sanitize incoming CIDs before validation.
func stripNonAlphanumeric(pString string) string {
	reg := regexp.MustCompile("[^a-zA-Z0-9]")
	return reg.ReplaceAllString(pString, "")
}

// statusError renders a non-2xx HTTP response as an error, including a short
// body snippet when the source provided one.
func statusError(source string, resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%s returned %s", source, resp.Status)
	}
	if len(msg) > 256 {
		msg = msg[:256]
	}
	return fmt.Errorf("%s returned %s: %s", source, resp.Status, msg)
}

// closeBody closes an HTTP response body, logging close failures.
func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		zap.L().Error("error closing response body", zap.Error(err))
	}
}
