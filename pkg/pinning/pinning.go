// Package pinning provides optional IPFS pinning for uploaded content, either
// through a hosted pinning service (Pinata-compatible pinByHash API) or a
// local Kubo node. Pinning is best-effort: the SDK treats failures here as
// non-fatal and simply omits the gateway URL from upload results.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

// TokenEnv is the environment variable holding the pinning-service JWT.
// It is read at call time, not at construction, so credentials may be set
// or rotated after the SDK is initialized.
const TokenEnv = "PINATA_JWT"

// ErrNoCredentials reports that no pinning-service token is configured.
var ErrNoCredentials = errors.New("pinning credentials not configured")

// Pinner pins content by CID so it stays retrievable through public IPFS
// gateways, returning the gateway URL for the pinned content.
type Pinner interface {
	// Enabled reports whether the pinner is configured and usable.
	Enabled() bool
	// Pin requests a pin for the given CID with an optional display name and
	// returns the public gateway URL the content will be served from.
	Pin(ctx context.Context, pieceCID, name string) (string, error)
}

// RemotePinner pins through a hosted pinning service speaking the
// Pinata pinByHash protocol.
type RemotePinner struct {
	// Endpoint is the pinByHash endpoint URL.
	Endpoint string
	// GatewayURL is the public gateway base used to build result URLs.
	GatewayURL string
	// TokenFunc supplies the bearer token per call. The default reads TokenEnv.
	TokenFunc func() string

	httpClient *http.Client
}

// NewRemotePinner constructs a hosted-service pinner. The bearer token is
// resolved from the TokenEnv environment variable on every call.
func NewRemotePinner(endpoint, gatewayURL string) *RemotePinner {
	return &RemotePinner{
		Endpoint:   endpoint,
		GatewayURL: gatewayURL,
		TokenFunc:  func() string { return os.Getenv(TokenEnv) },
		httpClient: &http.Client{},
	}
}

// Enabled reports whether a pinning token is currently available.
func (p *RemotePinner) Enabled() bool {
	return p.token() != ""
}

func (p *RemotePinner) token() string {
	if p.TokenFunc == nil {
		return os.Getenv(TokenEnv)
	}
	return p.TokenFunc()
}

// pinByHashRequest is the hosted pinning service request body.
type pinByHashRequest struct {
	HashToPin      string         `json:"hashToPin"`
	PinataMetadata pinataMetadata `json:"pinataMetadata"`
}

type pinataMetadata struct {
	Name string `json:"name"`
}

// Pin submits a pinByHash request for the CID and returns the gateway URL.
// It fails with ErrNoCredentials when no token is configured.
func (p *RemotePinner) Pin(ctx context.Context, pieceCID, name string) (string, error) {
	token := p.token()
	if token == "" {
		return "", ErrNoCredentials
	}

	payload, err := json.Marshal(pinByHashRequest{
		HashToPin:      pieceCID,
		PinataMetadata: pinataMetadata{Name: name},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	zap.L().Debug("Pinning content", zap.String("cid", pieceCID), zap.String("name", name))

	if p.httpClient == nil {
		p.httpClient = &http.Client{}
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			zap.L().Error("error closing pinning response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return "", fmt.Errorf("pinning service returned %s", resp.Status)
		}
		return "", fmt.Errorf("pinning service returned %s: %s", resp.Status, msg)
	}

	return GatewayPath(p.GatewayURL, pieceCID), nil
}

// GatewayPath joins a gateway base URL and a CID, normalizing the separator.
func GatewayPath(gatewayURL, pieceCID string) string {
	if gatewayURL == "" {
		gatewayURL = "https://ipfs.io/ipfs/"
	}
	if !strings.HasSuffix(gatewayURL, "/") {
		gatewayURL += "/"
	}
	return gatewayURL + pieceCID
}
