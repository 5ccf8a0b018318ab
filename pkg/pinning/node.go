package pinning

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

// NodePinner pins through a self-hosted Kubo node's HTTP API instead of a
// hosted pinning service.
type NodePinner struct {
	api        *rpc.HttpApi
	gatewayURL string
}

// NewNodePinner constructs a Kubo-backed pinner pointed at apiURL
// (e.g. "http://localhost:5001"). The client uses a short HTTP timeout
// suitable for pin requests.
func NewNodePinner(apiURL, gatewayURL string) (*NodePinner, error) {
	httpClient := http.Client{
		Timeout: 5 * time.Second,
	}
	api, err := rpc.NewURLApiWithClient(apiURL, &httpClient)
	if err != nil {
		zap.L().Error("Connection failed to IPFS node", zap.String("url", apiURL), zap.Error(err))
		return nil, err
	}
	return &NodePinner{api: api, gatewayURL: gatewayURL}, nil
}

// Enabled reports whether the node client was initialized.
func (n *NodePinner) Enabled() bool {
	return n != nil && n.api != nil
}

// Pin pins the CID on the local node via `pin/add` and returns the public
// gateway URL for it. The name is ignored; Kubo does not attach pin names
// through this endpoint.
func (n *NodePinner) Pin(ctx context.Context, pieceCID, name string) (string, error) {
	if n == nil || n.api == nil {
		return "", errors.New("ipfs client not configured")
	}

	cID, err := cid.Parse(pieceCID)
	if err != nil {
		return "", fmt.Errorf("invalid CID %q: %w", pieceCID, err)
	}

	req := n.api.Request("pin/add", cID.String())
	resp, err := req.Send(ctx)
	if err != nil {
		zap.L().Error("error pinning to ipfs node", zap.String("cid", pieceCID), zap.Error(err))
		return "", err
	}
	defer func(resp *rpc.Response) {
		if cerr := resp.Close(); cerr != nil {
			zap.L().Error("error closing ipfs response", zap.Error(cerr))
		}
	}(resp)

	if resp.Error != nil {
		zap.L().Error("ipfs pin/add command returned error", zap.Error(resp.Error))
		return "", resp.Error
	}

	zap.L().Debug("Pinned on local node", zap.String("cid", cID.String()))
	return GatewayPath(n.gatewayURL, cID.String()), nil
}
