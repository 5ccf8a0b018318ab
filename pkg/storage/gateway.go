package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// CDNURL returns the FilCDN retrieval URL for a piece owned by walletAddr:
// https://{wallet}.{host}/{pieceCid}.
func CDNURL(host, walletAddr, pieceCID string) string {
	return fmt.Sprintf("https://%s.%s/%s", strings.ToLower(walletAddr), host, pieceCID)
}

// GetCDNPiece fetches a piece from the FilCDN edge network.
//
// FilCDN serves pieces uploaded with the CDN add-on from per-wallet
// subdomains. Responses other than 200 are reported as errors; a 404 means
// the CDN has not (or not yet) ingested the piece, not that it is absent
// from the provider, so callers typically fall back to a direct fetch.
func GetCDNPiece(ctx context.Context, client *http.Client, host, walletAddr, pieceCID string) ([]byte, error) {
	url := CDNURL(host, walletAddr, pieceCID)
	zap.L().Debug("Fetching piece from CDN", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, statusError("cdn", resp, body)
	}

	return io.ReadAll(resp.Body)
}

// defaultCDNFetcher is the production implementation of CDNFetcher.
type defaultCDNFetcher struct {
	host   string
	client *http.Client
}

func (f defaultCDNFetcher) Fetch(ctx context.Context, walletAddr, pieceCID string) ([]byte, error) {
	return GetCDNPiece(ctx, f.client, f.host, walletAddr, pieceCID)
}
