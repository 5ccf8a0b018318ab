package sdk

import (
	"context"
	"errors"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/filozone/synapse-sdk-go/pkg/blockchain"
	"github.com/filozone/synapse-sdk-go/pkg/config"
	"github.com/filozone/synapse-sdk-go/pkg/model"
	"github.com/filozone/synapse-sdk-go/pkg/storage"
)

// testKey is a well-known development private key, never funded on any
// production network.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testPieceCID = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"

// errTest stands in for any downstream failure in the fakes.
var errTest = errors.New("synthetic failure")

// tokens returns n whole USDFC in base units.
func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// fakeChain is an in-memory chainClient recording submitted transactions.
type fakeChain struct {
	balance   *big.Int
	account   blockchain.Account
	approval  blockchain.OperatorApproval
	price     blockchain.ServicePrice
	providers []common.Address

	balanceErr   error
	accountErr   error
	approvalErr  error
	priceErr     error
	providersErr error

	depositErr  error
	withdrawErr error
	approveErr  error

	deposits  []*big.Int
	withdraws []*big.Int
	approvals []approvalCall
}

type approvalCall struct {
	rate            *big.Int
	lockup          *big.Int
	maxLockupPeriod *big.Int
}

func (f *fakeChain) WalletBalance(_ *bind.CallOpts, _ common.Address) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if f.balance == nil {
		return big.NewInt(0), nil
	}
	return f.balance, nil
}

func (f *fakeChain) AccountFunds(_ *bind.CallOpts, _ common.Address) (blockchain.Account, error) {
	if f.accountErr != nil {
		return blockchain.Account{}, f.accountErr
	}
	return f.account, nil
}

func (f *fakeChain) OperatorApprovalFor(_ *bind.CallOpts, _ common.Address) (blockchain.OperatorApproval, error) {
	if f.approvalErr != nil {
		return blockchain.OperatorApproval{}, f.approvalErr
	}
	return f.approval, nil
}

func (f *fakeChain) ServicePrice(_ *bind.CallOpts) (blockchain.ServicePrice, error) {
	if f.priceErr != nil {
		return blockchain.ServicePrice{}, f.priceErr
	}
	return f.price, nil
}

func (f *fakeChain) ApprovedProviders(_ *bind.CallOpts) ([]common.Address, error) {
	if f.providersErr != nil {
		return nil, f.providersErr
	}
	return f.providers, nil
}

func (f *fakeChain) Deposit(_ context.Context, _ common.Address, amount *big.Int, _ *bind.CallOpts, _ *bind.TransactOpts) (*types.Receipt, error) {
	if f.depositErr != nil {
		return nil, f.depositErr
	}
	f.deposits = append(f.deposits, amount)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeChain) Withdraw(_ context.Context, amount *big.Int, _ *bind.TransactOpts) (*types.Receipt, error) {
	if f.withdrawErr != nil {
		return nil, f.withdrawErr
	}
	f.withdraws = append(f.withdraws, amount)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeChain) ApproveOperator(_ context.Context, rate, lockup, maxLockupPeriod *big.Int, _ *bind.TransactOpts) (*types.Receipt, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	f.approvals = append(f.approvals, approvalCall{rate: rate, lockup: lockup, maxLockupPeriod: maxLockupPeriod})
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

// generousChain returns a fake whose balances and approvals cover any upload
// the tests perform.
func generousChain() *fakeChain {
	return &fakeChain{
		balance: tokens(1000),
		account: blockchain.Account{
			Funds:         tokens(500),
			LockupCurrent: tokens(10),
		},
		approval: blockchain.OperatorApproval{
			IsApproved:      true,
			RateAllowance:   tokens(1000),
			LockupAllowance: tokens(1000),
			RateUsage:       big.NewInt(0),
			LockupUsage:     big.NewInt(0),
		},
		price: blockchain.ServicePrice{
			PerTiBPerMonthNoCDN:   tokens(2),
			PerTiBPerMonthWithCDN: tokens(3),
			TokenAddress:          common.HexToAddress("0xb3042734b608a1B16e9e86B374A3f3e389B4cDf0"),
			EpochsPerMonth:        big.NewInt(86400),
		},
		providers: []common.Address{
			common.HexToAddress("0x01"),
			common.HexToAddress("0x02"),
		},
	}
}

// fakePinner records pins and reports a fixed outcome.
type fakePinner struct {
	enabled bool
	url     string
	err     error
	pins    []string
}

func (f *fakePinner) Enabled() bool { return f.enabled }

func (f *fakePinner) Pin(_ context.Context, pieceCID, _ string) (string, error) {
	f.pins = append(f.pins, pieceCID)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type stubSigner struct {
	addr common.Address
}

func (s stubSigner) Address() common.Address { return s.addr }

func (s stubSigner) SignTx(tx *types.Transaction, _ *big.Int) (*types.Transaction, error) {
	return tx, nil
}

// newTestCore assembles a Core around fakes without dialing anything. The
// provider URL points at a reserved invalid host so a test that should not
// touch storage fails fast if it does.
func newTestCore(t *testing.T, chain chainClient, providerURL string, pinner *fakePinner) *Core {
	t.Helper()

	cfg := &config.Config{PrivateKey: testKey}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	addr, pk, err := blockchain.ParsePrivateKeyECDSA(testKey)
	if err != nil {
		t.Fatalf("ParsePrivateKeyECDSA() failed: %v", err)
	}

	if providerURL == "" {
		providerURL = "http://provider.invalid"
	}
	core := &Core{
		chain:      chain,
		pieces:     storage.NewClient(providerURL, "", addr.Hex(), false),
		Config:     cfg,
		prvKey:     pk,
		signerAddr: addr,
	}
	if pinner != nil {
		core.pinner = pinner
	}
	return core
}

func TestNewSDKNilConfig(t *testing.T) {
	if _, err := NewSDK(nil); err == nil {
		t.Fatal("NewSDK(nil) succeeded, want error")
	}
}

func TestNewSDKRequiresCredentials(t *testing.T) {
	_, err := NewSDK(&config.Config{})
	if err == nil {
		t.Fatal("NewSDK with no credentials succeeded, want error")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("error = %q, want it to mention the invalid config", err)
	}
}

func TestNewSDKRejectsAmbiguousCredentials(t *testing.T) {
	cfg := &config.Config{
		PrivateKey: testKey,
		Signer:     stubSigner{addr: common.HexToAddress("0x0102")},
	}
	_, err := NewSDK(cfg)
	if err == nil {
		t.Fatal("NewSDK with both PrivateKey and Signer succeeded, want error")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("error = %q, want mutual-exclusion message", err)
	}
}

func TestNewSDKRejectsBadPrivateKey(t *testing.T) {
	_, err := NewSDK(&config.Config{PrivateKey: "not-a-key"})
	if err == nil {
		t.Fatal("NewSDK with a malformed key succeeded, want error")
	}
	if !strings.Contains(err.Error(), "parse private key") {
		t.Fatalf("error = %q, want key-parse message", err)
	}
}

func TestZeroValueClientNotInitialized(t *testing.T) {
	ctx := context.Background()
	ops := []struct {
		name string
		call func(c *Core) error
	}{
		{"Upload", func(c *Core) error { _, err := c.Upload(ctx, []byte("x")); return err }},
		{"UploadString", func(c *Core) error { _, err := c.UploadString(ctx, "x"); return err }},
		{"UploadJSON", func(c *Core) error { _, err := c.UploadJSON(ctx, map[string]int{"a": 1}); return err }},
		{"UploadReader", func(c *Core) error { _, err := c.UploadReader(ctx, strings.NewReader("x")); return err }},
		{"UploadFile", func(c *Core) error { _, err := c.UploadFile(ctx, "missing.bin"); return err }},
		{"UploadImage", func(c *Core) error { _, err := c.UploadImage(ctx, "missing.png"); return err }},
		{"PreflightUpload", func(c *Core) error { _, err := c.PreflightUpload(ctx, 10); return err }},
		{"Download", func(c *Core) error { _, err := c.Download(ctx, testPieceCID); return err }},
		{"DownloadText", func(c *Core) error { _, err := c.DownloadText(ctx, testPieceCID); return err }},
		{"DownloadJSON", func(c *Core) error { return c.DownloadJSON(ctx, testPieceCID, &struct{}{}) }},
		{"DownloadToFile", func(c *Core) error { return c.DownloadToFile(ctx, testPieceCID, "out.bin") }},
		{"DownloadImage", func(c *Core) error { _, err := c.DownloadImage(ctx, testPieceCID); return err }},
		{"FileExists", func(c *Core) error { _, err := c.FileExists(ctx, testPieceCID); return err }},
		{"SetupWallet", func(c *Core) error {
			return c.SetupWallet(ctx, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1), 1)
		}},
		{"Deposit", func(c *Core) error { return c.Deposit(ctx, decimal.NewFromInt(1)) }},
		{"Withdraw", func(c *Core) error { return c.Withdraw(ctx, decimal.NewFromInt(1)) }},
		{"ApproveService", func(c *Core) error {
			return c.ApproveService(ctx, decimal.NewFromInt(1), decimal.NewFromInt(1), 1)
		}},
		{"WalletBalance", func(c *Core) error { _, err := c.WalletBalance(ctx); return err }},
		{"AccountInfo", func(c *Core) error { _, err := c.AccountInfo(ctx); return err }},
		{"ProviderStatus", func(c *Core) error { return c.ProviderStatus(ctx) }},
	}
	for _, op := range ops {
		if err := op.call(new(Core)); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%s on zero client: error = %v, want ErrNotInitialized", op.name, err)
		}
	}
}

func TestZeroValueClientStorageInfoDefaults(t *testing.T) {
	got := new(Core).GetStorageInfo(context.Background())
	want := model.DefaultStorageInfo("")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetStorageInfo on zero client = %+v, want default record %+v", got, want)
	}
}

func TestCloseMakesClientUnusable(t *testing.T) {
	c := newTestCore(t, generousChain(), "", nil)
	c.Close()

	if _, err := c.Download(context.Background(), testPieceCID); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Download after Close: error = %v, want ErrNotInitialized", err)
	}
	// Closing twice must not panic.
	c.Close()
}

func TestCloseOnZeroClient(t *testing.T) {
	new(Core).Close()
	var c *Core
	c.Close()
}
