package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/filozone/synapse-sdk-go/pkg/blockchain"
	"github.com/filozone/synapse-sdk-go/pkg/model"
)

// defaultLockupDays is the lockup window assumed when estimating whether the
// current operator approval can cover a new upload.
const defaultLockupDays = 10

// bytesPerTiB converts the on-chain per-TiB prices to per-byte costs.
const bytesPerTiB = int64(1) << 40

// UploadOption customizes a single upload call.
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	filename    string
	contentType string
}

// WithFilename sets the filename recorded with the upload and used as the
// pin name.
func WithFilename(name string) UploadOption {
	return func(o *uploadOptions) {
		o.filename = name
	}
}

// WithContentType sets the MIME type sent to the storage provider.
func WithContentType(contentType string) UploadOption {
	return func(o *uploadOptions) {
		o.contentType = contentType
	}
}

func applyUploadOptions(opts ...UploadOption) uploadOptions {
	var o uploadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Upload stores raw bytes with the configured storage provider and returns
// the assigned piece CID together with upload metadata.
func (c *Core) Upload(ctx context.Context, data []byte, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	o := applyUploadOptions(opts...)
	return c.upload(ctx, data, o.filename, o.contentType)
}

// UploadString stores the UTF-8 bytes of s.
func (c *Core) UploadString(ctx context.Context, s string, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	o := applyUploadOptions(opts...)
	return c.upload(ctx, []byte(s), o.filename, o.contentType)
}

// UploadJSON marshals v to JSON and stores it. Values that cannot be
// marshaled (channels, funcs, cyclic structures) fail before any network
// call. The filename defaults to "data.json".
func (c *Core) UploadJSON(ctx context.Context, v any, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal upload payload: %w", err)
	}
	o := applyUploadOptions(opts...)
	if o.filename == "" {
		o.filename = "data.json"
	}
	if o.contentType == "" {
		o.contentType = "application/json"
	}
	return c.upload(ctx, payload, o.filename, o.contentType)
}

// UploadReader drains r and stores its contents.
func (c *Core) UploadReader(ctx context.Context, r io.Reader, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrEmptyPayload)
	}
	// Read one byte past the limit so oversized streams are rejected without
	// buffering them whole.
	payload, err := io.ReadAll(io.LimitReader(r, int64(MaxUploadSize)+1))
	if err != nil {
		return nil, fmt.Errorf("read upload payload: %w", err)
	}
	o := applyUploadOptions(opts...)
	return c.upload(ctx, payload, o.filename, o.contentType)
}

// UploadFile stores the contents of the file at path. The filename defaults
// to the file's base name.
func (c *Core) UploadFile(ctx context.Context, path string, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	o := applyUploadOptions(opts...)
	if o.filename == "" {
		o.filename = filepath.Base(path)
	}
	return c.upload(ctx, payload, o.filename, o.contentType)
}

// UploadImage stores an image file. The content type is taken from the file
// extension when recognized and sniffed from the content otherwise, and is
// recorded on the result.
func (c *Core) UploadImage(ctx context.Context, path string, opts ...UploadOption) (*model.UploadResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	o := applyUploadOptions(opts...)
	if o.filename == "" {
		o.filename = filepath.Base(path)
	}
	if o.contentType == "" {
		o.contentType = mime.TypeByExtension(filepath.Ext(path))
		if o.contentType == "" {
			o.contentType = http.DetectContentType(payload)
		}
	}
	return c.upload(ctx, payload, o.filename, o.contentType)
}

// upload is the single funnel behind every upload entry point: it validates
// the payload size, runs the allowance preflight, stores the piece with the
// provider, and pins the content as a best-effort side effect.
func (c *Core) upload(ctx context.Context, payload []byte, filename, contentType string) (*model.UploadResult, error) {
	if len(payload) < MinUploadSize {
		return nil, fmt.Errorf("%w: nothing to store", ErrEmptyPayload)
	}
	if len(payload) > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			ErrPayloadTooLarge, len(payload), MaxUploadSize)
	}

	if c.chain != nil {
		pf, err := c.preflight(ctx, int64(len(payload)))
		switch {
		case err != nil:
			zap.L().Warn("preflight check unavailable, proceeding with upload", zap.Error(err))
		case !pf.AllowanceCheck.Sufficient:
			return nil, fmt.Errorf("%w: %s; run SetupWallet to fund and authorize the storage service",
				ErrInsufficientAllowance, pf.AllowanceCheck.Message)
		}
	}

	upCtx, cancel := withTimeout(ctx, c.Config.Timeouts.Upload)
	defer cancel()

	pieceCID, err := c.pieces.UploadPiece(upCtx, payload, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload piece: %w", err)
	}

	result := &model.UploadResult{
		PieceCID:    pieceCID,
		Size:        int64(len(payload)),
		Timestamp:   time.Now().Unix(),
		Filename:    filename,
		ContentType: contentType,
	}

	if c.pinner != nil && c.pinner.Enabled() {
		pinCtx, cancelPin := withTimeout(ctx, c.Config.Timeouts.Pin)
		gatewayURL, err := c.pinner.Pin(pinCtx, pieceCID, filename)
		cancelPin()
		if err != nil {
			zap.L().Warn("pin failed, content stored but not pinned",
				zap.String("pieceCid", pieceCID), zap.Error(err))
		} else {
			result.GatewayURL = gatewayURL
		}
	}

	return result, nil
}

// PreflightUpload estimates the recurring cost of storing size bytes at the
// service's current price and reports whether the caller's operator approval
// and escrow funds cover it.
func (c *Core) PreflightUpload(ctx context.Context, size int64) (*model.Preflight, error) {
	if err := c.readyChain(); err != nil {
		return nil, err
	}
	if size < MinUploadSize {
		return nil, fmt.Errorf("%w: nothing to store", ErrEmptyPayload)
	}
	if size > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			ErrPayloadTooLarge, size, MaxUploadSize)
	}
	return c.preflight(ctx, size)
}

func (c *Core) preflight(ctx context.Context, size int64) (*model.Preflight, error) {
	readCtx, cancel := withTimeout(ctx, c.Config.Timeouts.ChainRead)
	defer cancel()
	call := callOpts(readCtx)

	price, err := c.chain.ServicePrice(call)
	if err != nil {
		return nil, fmt.Errorf("read service price: %w", err)
	}
	cost := estimateCost(price, size, !c.Config.DisableCDN)

	approval, err := c.chain.OperatorApprovalFor(call, c.signerAddr)
	if err != nil {
		return nil, fmt.Errorf("read operator approval: %w", err)
	}
	account, err := c.chain.AccountFunds(call, c.signerAddr)
	if err != nil {
		return nil, fmt.Errorf("read account funds: %w", err)
	}

	return &model.Preflight{
		EstimatedCost:  cost,
		AllowanceCheck: checkAllowance(approval, account, cost),
	}, nil
}

// estimateCost scales the service's per-TiB-per-month price down to the given
// payload size and derives the per-epoch and per-day rates from it.
func estimateCost(price blockchain.ServicePrice, size int64, withCDN bool) model.PreflightCost {
	perTiB := price.PerTiBPerMonthNoCDN
	if withCDN && price.PerTiBPerMonthWithCDN != nil && price.PerTiBPerMonthWithCDN.Sign() > 0 {
		perTiB = price.PerTiBPerMonthWithCDN
	}
	if perTiB == nil {
		perTiB = big.NewInt(0)
	}

	perMonth := new(big.Int).Mul(perTiB, big.NewInt(size))
	perMonth.Div(perMonth, big.NewInt(bytesPerTiB))

	epochs := price.EpochsPerMonth
	if epochs == nil || epochs.Sign() <= 0 {
		// 30 days of 30-second epochs.
		epochs = big.NewInt(30 * blockchain.EpochsPerDay)
	}
	perEpoch := new(big.Int).Div(perMonth, epochs)
	perDay := new(big.Int).Mul(perEpoch, big.NewInt(blockchain.EpochsPerDay))

	return model.PreflightCost{
		PerEpoch: perEpoch,
		PerDay:   perDay,
		PerMonth: perMonth,
	}
}

// checkAllowance verifies that the operator approval's remaining rate and
// lockup headroom, and the escrow account's unlocked funds, cover the
// estimated cost over the default lockup window.
func checkAllowance(approval blockchain.OperatorApproval, account blockchain.Account, cost model.PreflightCost) model.AllowanceCheck {
	if !approval.IsApproved {
		return model.AllowanceCheck{
			Message: "the warm-storage service is not approved as an operator for this account",
		}
	}

	rateLeft := headroom(approval.RateAllowance, approval.RateUsage)
	if rateLeft.Cmp(cost.PerEpoch) < 0 {
		return model.AllowanceCheck{
			Message: fmt.Sprintf("rate allowance headroom %s USDFC/epoch below the required %s",
				blockchain.FormatBase(rateLeft), blockchain.FormatBase(cost.PerEpoch)),
		}
	}

	lockupNeeded := new(big.Int).Mul(cost.PerEpoch, big.NewInt(defaultLockupDays*blockchain.EpochsPerDay))
	lockupLeft := headroom(approval.LockupAllowance, approval.LockupUsage)
	if lockupLeft.Cmp(lockupNeeded) < 0 {
		return model.AllowanceCheck{
			Message: fmt.Sprintf("lockup allowance headroom %s USDFC below the required %s",
				blockchain.FormatBase(lockupLeft), blockchain.FormatBase(lockupNeeded)),
		}
	}

	if account.AvailableFunds().Cmp(lockupNeeded) < 0 {
		return model.AllowanceCheck{
			Message: fmt.Sprintf("available escrow funds %s USDFC below the required lockup %s",
				blockchain.FormatBase(account.AvailableFunds()), blockchain.FormatBase(lockupNeeded)),
		}
	}

	return model.AllowanceCheck{Sufficient: true}
}

// headroom returns allowance minus usage, treating nil values as zero and
// flooring at zero.
func headroom(allowance, usage *big.Int) *big.Int {
	if allowance == nil {
		return big.NewInt(0)
	}
	if usage == nil {
		return new(big.Int).Set(allowance)
	}
	left := new(big.Int).Sub(allowance, usage)
	if left.Sign() < 0 {
		return big.NewInt(0)
	}
	return left
}
