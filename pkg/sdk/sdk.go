// Package sdk exposes the high-level Synapse SDK entry points. It wires
// together Filecoin EVM access (USDFC token, payments escrow, warm-storage
// service), piece transport to PDP storage providers and FilCDN, and
// optional IPFS pinning.
package sdk

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/filozone/synapse-sdk-go/pkg/blockchain"
	"github.com/filozone/synapse-sdk-go/pkg/config"
	"github.com/filozone/synapse-sdk-go/pkg/model"
	"github.com/filozone/synapse-sdk-go/pkg/pinning"
	"github.com/filozone/synapse-sdk-go/pkg/storage"
)

// Upload payload bounds in bytes, re-exported from pkg/storage.
const (
	MinUploadSize = storage.MinUploadSize
	MaxUploadSize = storage.MaxUploadSize
)

// Sentinel errors returned by facade operations. Test for them with errors.Is.
var (
	// ErrNotInitialized reports an operation on a client that was not built
	// by NewSDK or has already been closed.
	ErrNotInitialized = errors.New("sdk not initialized")

	// ErrEmptyPayload reports an upload with no content.
	ErrEmptyPayload = errors.New("upload payload is empty")

	// ErrPayloadTooLarge reports an upload exceeding storage.MaxUploadSize.
	ErrPayloadTooLarge = errors.New("upload payload too large")

	// ErrInsufficientAllowance reports that the current operator approval or
	// escrow funds cannot cover an upload.
	ErrInsufficientAllowance = errors.New("insufficient storage allowance")
)

// SynapseSDK is the public interface of the warm-storage client: wallet
// funding, piece upload/download, and storage-service introspection.
type SynapseSDK interface {
	// SetupWallet funds and authorizes the storage service in one call:
	// deposit into the payments escrow, then operator approval with the given
	// per-epoch rate allowance, total lockup allowance, and maximum lockup
	// period in days. Amounts are whole USDFC.
	SetupWallet(ctx context.Context, deposit, ratePerEpoch, lockup decimal.Decimal, maxLockupDays uint64) error

	// Deposit moves amount whole USDFC from the wallet into the caller's
	// escrow account.
	Deposit(ctx context.Context, amount decimal.Decimal) error

	// Withdraw moves amount whole USDFC of unlocked escrow funds back to the
	// wallet.
	Withdraw(ctx context.Context, amount decimal.Decimal) error

	// ApproveService authorizes the warm-storage service to charge the
	// caller's escrow account within the given bounds.
	ApproveService(ctx context.Context, ratePerEpoch, lockup decimal.Decimal, maxLockupDays uint64) error

	// WalletBalance returns the wallet's USDFC balance in whole tokens.
	WalletBalance(ctx context.Context) (decimal.Decimal, error)

	// AccountInfo returns the escrow account funds breakdown.
	AccountInfo(ctx context.Context) (*model.AccountInfo, error)

	// Upload stores raw bytes with the configured storage provider.
	Upload(ctx context.Context, data []byte, opts ...UploadOption) (*model.UploadResult, error)

	// UploadString stores the UTF-8 bytes of s.
	UploadString(ctx context.Context, s string, opts ...UploadOption) (*model.UploadResult, error)

	// UploadJSON marshals v to JSON and stores it.
	UploadJSON(ctx context.Context, v any, opts ...UploadOption) (*model.UploadResult, error)

	// UploadReader drains r and stores its contents.
	UploadReader(ctx context.Context, r io.Reader, opts ...UploadOption) (*model.UploadResult, error)

	// UploadFile stores the contents of the file at path.
	UploadFile(ctx context.Context, path string, opts ...UploadOption) (*model.UploadResult, error)

	// UploadImage stores an image file; the result carries the sniffed
	// content type.
	UploadImage(ctx context.Context, path string, opts ...UploadOption) (*model.UploadResult, error)

	// PreflightUpload estimates the recurring cost of storing size bytes and
	// checks the current operator approval against it.
	PreflightUpload(ctx context.Context, size int64) (*model.Preflight, error)

	// Download retrieves a piece by CID.
	Download(ctx context.Context, pieceCID string) ([]byte, error)

	// DownloadText retrieves a piece and decodes it as text.
	DownloadText(ctx context.Context, pieceCID string) (string, error)

	// DownloadJSON retrieves a piece and unmarshals it into v.
	DownloadJSON(ctx context.Context, pieceCID string, v any) error

	// DownloadToFile retrieves a piece and writes it to path.
	DownloadToFile(ctx context.Context, pieceCID, path string) error

	// DownloadImage retrieves a piece into a temp file and returns its path.
	// The caller owns the file.
	DownloadImage(ctx context.Context, pieceCID string) (string, error)

	// FileExists reports whether a piece is retrievable.
	FileExists(ctx context.Context, pieceCID string) (bool, error)

	// GetStorageInfo returns a snapshot of wallet, escrow and service state.
	// It never fails: unavailable sub-records are omitted and a total failure
	// degrades to the all-zero default record.
	GetStorageInfo(ctx context.Context) *model.StorageInfo

	// ProviderStatus checks that the storage provider is reachable.
	ProviderStatus(ctx context.Context) error

	// Close releases resources associated with the SDK instance.
	Close()
}

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// chainClient is the subset of blockchain.EVMClient behavior the facade uses.
type chainClient interface {
	WalletBalance(call *bind.CallOpts, owner common.Address) (*big.Int, error)
	AccountFunds(call *bind.CallOpts, owner common.Address) (blockchain.Account, error)
	OperatorApprovalFor(call *bind.CallOpts, client common.Address) (blockchain.OperatorApproval, error)
	ServicePrice(call *bind.CallOpts) (blockchain.ServicePrice, error)
	ApprovedProviders(call *bind.CallOpts) ([]common.Address, error)
	Deposit(ctx context.Context, to common.Address, amount *big.Int, call *bind.CallOpts, txOpts *bind.TransactOpts) (*types.Receipt, error)
	Withdraw(ctx context.Context, amount *big.Int, txOpts *bind.TransactOpts) (*types.Receipt, error)
	ApproveOperator(ctx context.Context, rateAllowance, lockupAllowance, maxLockupPeriod *big.Int, txOpts *bind.TransactOpts) (*types.Receipt, error)
}

// Core is the concrete SDK implementation. It embeds the runtime
// configuration and holds the chain, storage and pinning clients.
type Core struct {
	evm    *blockchain.EVMClient
	chain  chainClient
	pieces *storage.Client
	pinner pinning.Pinner
	*config.Config
	prvKey     *ecdsa.PrivateKey
	signerAddr common.Address
}

// GetEvm returns the EVM client for custom blockchain operations beyond the
// facade surface.
func (c *Core) GetEvm() *blockchain.EVMClient {
	return c.evm
}

// NewSDK initializes the SDK Core with validated configuration, a connected
// Filecoin EVM client, a storage-provider transport and a pinning client.
// It applies default timeout values; construction errors are returned to the
// caller rather than terminating the process.
func NewSDK(cfg *config.Config) (SynapseSDK, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	var (
		signerAddr common.Address
		prvKey     *ecdsa.PrivateKey
	)
	if cfg.Signer != nil {
		signerAddr = cfg.Signer.Address()
	} else {
		var err error
		signerAddr, prvKey, err = blockchain.ParsePrivateKeyECDSA(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
	}

	evmClient, err := blockchain.InitEvm(context.Background(), cfg)
	if err != nil {
		zap.L().Error("Init filecoin EVM client failed", zap.Error(err))
		return nil, err
	}

	pieces := storage.NewClient(cfg.ProviderEndpoint, cfg.Network.CDNHost, signerAddr.Hex(), !cfg.DisableCDN)

	var pinner pinning.Pinner
	if cfg.IPFSAddr != "" {
		node, err := pinning.NewNodePinner(cfg.IPFSAddr, cfg.GatewayURL)
		if err != nil {
			evmClient.Close()
			return nil, fmt.Errorf("init node pinner: %w", err)
		}
		pinner = node
	} else {
		pinner = pinning.NewRemotePinner(cfg.PinEndpoint, cfg.GatewayURL)
	}

	if cfg.Debug {
		zap.L().Debug("signer address", zap.String("addr", signerAddr.Hex()))
	}

	return &Core{
		evm:        evmClient,
		chain:      evmClient,
		pieces:     pieces,
		pinner:     pinner,
		Config:     cfg,
		prvKey:     prvKey,
		signerAddr: signerAddr,
	}, nil
}

// ProviderStatus checks that the configured storage provider is reachable and
// serving its PDP endpoints.
func (c *Core) ProviderStatus(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.pieces.Ping(ctx)
}

// Close shuts down underlying network clients (e.g., Filecoin RPC). The
// client is unusable afterwards.
func (c *Core) Close() {
	if c == nil {
		return
	}
	if c.evm != nil {
		c.evm.Close()
	}
	c.evm = nil
	c.chain = nil
	c.pieces = nil
	c.pinner = nil
}

// ready reports whether the client carries the state every operation needs.
func (c *Core) ready() error {
	if c == nil || c.Config == nil || c.pieces == nil {
		return ErrNotInitialized
	}
	return nil
}

// readyChain is ready plus a connected chain client, required by the wallet
// and info operations.
func (c *Core) readyChain() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.chain == nil {
		return ErrNotInitialized
	}
	return nil
}

// transactOpts builds signing options from the configured private key or the
// external signing provider.
func (c *Core) transactOpts() (*bind.TransactOpts, error) {
	chainID, ok := new(big.Int).SetString(c.Config.Network.ChainID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid chain ID %q", c.Config.Network.ChainID)
	}
	if c.prvKey != nil {
		return blockchain.GetTransactOpts(chainID, c.prvKey)
	}
	if c.Config.Signer != nil {
		return blockchain.SignerTransactOpts(chainID, c.Config.Signer), nil
	}
	return nil, fmt.Errorf("%w: no signing credentials", ErrNotInitialized)
}

// withTimeout returns a derived context with the given timeout. A cancelable
// context without deadline is returned when the timeout is not positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// callOpts binds a read-only contract call to ctx.
func callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}
