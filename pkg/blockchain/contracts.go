package blockchain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// erc20ABI is the subset of the ERC-20 interface the SDK uses on the USDFC
// token contract.
const erc20ABI = `[
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// paymentsABI covers the payments escrow contract: token deposits and
// withdrawals, per-account fund state, and operator approvals that let the
// warm-storage service create payment rails against a client account.
const paymentsABI = `[
	{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"accounts","stateMutability":"view","inputs":[{"name":"token","type":"address"},{"name":"owner","type":"address"}],"outputs":[{"name":"funds","type":"uint256"},{"name":"lockupCurrent","type":"uint256"},{"name":"lockupRate","type":"uint256"},{"name":"lockupLastSettledAt","type":"uint256"}]},
	{"type":"function","name":"setOperatorApproval","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"operator","type":"address"},{"name":"approved","type":"bool"},{"name":"rateAllowance","type":"uint256"},{"name":"lockupAllowance","type":"uint256"},{"name":"maxLockupPeriod","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"operatorApprovals","stateMutability":"view","inputs":[{"name":"token","type":"address"},{"name":"client","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"name":"isApproved","type":"bool"},{"name":"rateAllowance","type":"uint256"},{"name":"lockupAllowance","type":"uint256"},{"name":"rateUsage","type":"uint256"},{"name":"lockupUsage","type":"uint256"},{"name":"maxLockupPeriod","type":"uint256"}]}
]`

// warmStorageABI covers the warm-storage service views the SDK reads: current
// pricing and the approved storage-provider set.
const warmStorageABI = `[
	{"type":"function","name":"getServicePrice","stateMutability":"view","inputs":[],"outputs":[{"name":"pricePerTiBPerMonthNoCDN","type":"uint256"},{"name":"pricePerTiBPerMonthWithCDN","type":"uint256"},{"name":"tokenAddress","type":"address"},{"name":"epochsPerMonth","type":"uint256"}]},
	{"type":"function","name":"getApprovedProviders","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]}
]`

// Account is a snapshot of an escrow account in the payments contract:
// total funds, the amount currently locked for payment rails, the per-epoch
// lockup rate, and the epoch the lockup was last settled at.
type Account struct {
	Funds               *big.Int
	LockupCurrent       *big.Int
	LockupRate          *big.Int
	LockupLastSettledAt *big.Int
}

// OperatorApproval is a snapshot of the approval a client granted to an
// operator (the warm-storage service) in the payments contract.
type OperatorApproval struct {
	IsApproved      bool
	RateAllowance   *big.Int
	LockupAllowance *big.Int
	RateUsage       *big.Int
	LockupUsage     *big.Int
	MaxLockupPeriod *big.Int
}

// ServicePrice is the warm-storage pricing view: monthly price per TiB with
// and without CDN, the payment token, and the epoch count used for a month.
type ServicePrice struct {
	PerTiBPerMonthNoCDN   *big.Int
	PerTiBPerMonthWithCDN *big.Int
	TokenAddress          common.Address
	EpochsPerMonth        *big.Int
}

// Token is a typed binding for the USDFC ERC-20 contract.
type Token struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewToken binds the ERC-20 contract at address to the given backend.
func NewToken(address common.Address, backend bind.ContractBackend) (*Token, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	return &Token{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (t *Token) Address() common.Address { return t.address }

// Symbol returns the token symbol.
func (t *Token) Symbol(opts *bind.CallOpts) (string, error) {
	var out []any
	if err := t.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Decimals returns the token decimal count.
func (t *Token) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []any
	if err := t.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}

// BalanceOf returns the token balance of account.
func (t *Token) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []any
	if err := t.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Allowance returns the amount spender may transfer on behalf of owner.
func (t *Token) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	var out []any
	if err := t.contract.Call(opts, &out, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Approve authorizes spender to transfer up to value tokens from the caller.
func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, value)
}

// Transfer moves value tokens from the caller to the given address.
func (t *Token) Transfer(opts *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, value)
}

// Payments is a typed binding for the payments escrow contract.
type Payments struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewPayments binds the payments contract at address to the given backend.
func NewPayments(address common.Address, backend bind.ContractBackend) (*Payments, error) {
	parsed, err := abi.JSON(strings.NewReader(paymentsABI))
	if err != nil {
		return nil, fmt.Errorf("parse payments abi: %w", err)
	}
	return &Payments{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (p *Payments) Address() common.Address { return p.address }

// Deposit moves amount of token from the caller's wallet into the escrow
// account of to. The caller must have approved the payments contract first.
func (p *Payments) Deposit(opts *bind.TransactOpts, token, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "deposit", token, to, amount)
}

// Withdraw moves amount of unlocked token from the caller's escrow account
// back to the caller's wallet.
func (p *Payments) Withdraw(opts *bind.TransactOpts, token common.Address, amount *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "withdraw", token, amount)
}

// Accounts reads the escrow account state for (token, owner).
func (p *Payments) Accounts(opts *bind.CallOpts, token, owner common.Address) (Account, error) {
	var out []any
	if err := p.contract.Call(opts, &out, "accounts", token, owner); err != nil {
		return Account{}, err
	}
	if len(out) != 4 {
		return Account{}, fmt.Errorf("accounts: expected 4 outputs, got %d", len(out))
	}
	return Account{
		Funds:               out[0].(*big.Int),
		LockupCurrent:       out[1].(*big.Int),
		LockupRate:          out[2].(*big.Int),
		LockupLastSettledAt: out[3].(*big.Int),
	}, nil
}

// SetOperatorApproval grants or revokes operator rights over the caller's
// escrow account for the given token, bounded by the rate and lockup
// allowances and the maximum lockup period in epochs.
func (p *Payments) SetOperatorApproval(opts *bind.TransactOpts, token, operator common.Address, approved bool, rateAllowance, lockupAllowance, maxLockupPeriod *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "setOperatorApproval", token, operator, approved, rateAllowance, lockupAllowance, maxLockupPeriod)
}

// OperatorApprovals reads the approval client granted to operator for token.
func (p *Payments) OperatorApprovals(opts *bind.CallOpts, token, client, operator common.Address) (OperatorApproval, error) {
	var out []any
	if err := p.contract.Call(opts, &out, "operatorApprovals", token, client, operator); err != nil {
		return OperatorApproval{}, err
	}
	if len(out) != 6 {
		return OperatorApproval{}, fmt.Errorf("operatorApprovals: expected 6 outputs, got %d", len(out))
	}
	return OperatorApproval{
		IsApproved:      out[0].(bool),
		RateAllowance:   out[1].(*big.Int),
		LockupAllowance: out[2].(*big.Int),
		RateUsage:       out[3].(*big.Int),
		LockupUsage:     out[4].(*big.Int),
		MaxLockupPeriod: out[5].(*big.Int),
	}, nil
}

// WarmStorage is a typed binding for the warm-storage service contract.
type WarmStorage struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewWarmStorage binds the warm-storage contract at address to the backend.
func NewWarmStorage(address common.Address, backend bind.ContractBackend) (*WarmStorage, error) {
	parsed, err := abi.JSON(strings.NewReader(warmStorageABI))
	if err != nil {
		return nil, fmt.Errorf("parse warm storage abi: %w", err)
	}
	return &WarmStorage{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (w *WarmStorage) Address() common.Address { return w.address }

// GetServicePrice reads the current warm-storage pricing.
func (w *WarmStorage) GetServicePrice(opts *bind.CallOpts) (ServicePrice, error) {
	var out []any
	if err := w.contract.Call(opts, &out, "getServicePrice"); err != nil {
		return ServicePrice{}, err
	}
	if len(out) != 4 {
		return ServicePrice{}, fmt.Errorf("getServicePrice: expected 4 outputs, got %d", len(out))
	}
	return ServicePrice{
		PerTiBPerMonthNoCDN:   out[0].(*big.Int),
		PerTiBPerMonthWithCDN: out[1].(*big.Int),
		TokenAddress:          out[2].(common.Address),
		EpochsPerMonth:        out[3].(*big.Int),
	}, nil
}

// GetApprovedProviders reads the service-approved storage provider set.
func (w *WarmStorage) GetApprovedProviders(opts *bind.CallOpts) ([]common.Address, error) {
	var out []any
	if err := w.contract.Call(opts, &out, "getApprovedProviders"); err != nil {
		return nil, err
	}
	return out[0].([]common.Address), nil
}
