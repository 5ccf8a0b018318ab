package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// receiptBackoffCap bounds the receipt-poll backoff used by the
// submit-and-wait helpers below.
const receiptBackoffCap = 30 * time.Second

// withTimeout returns ctx unchanged if d <= 0, otherwise returns a child context with timeout d.
// The returned cancel function is always non-nil and should be called to release resources.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// WaitForTransaction polls for a transaction receipt with exponential backoff,
// until receipt is available, context is done, or an error occurs. If maxBackoff
// is non-zero, backoff will not exceed it. It returns an error if the tx is reverted.
func (evm *EVMClient) WaitForTransaction(ctx context.Context, txHash common.Hash, maxBackoff time.Duration) (*types.Receipt, error) {
	backoff := time.Second
	for {
		receipt, err := evm.Client.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, fmt.Errorf("tx reverted: %s", txHash)
			}
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if maxBackoff == 0 || backoff < maxBackoff {
				backoff *= 2
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("receipt error: %w", err)
		}
	}
}

// estimateGas returns a shallow copy of transaction options with GasLimit set to zero.
// This triggers automatic gas estimation by the node, avoiding manual calculation.
func estimateGas(txOpts *bind.TransactOpts) *bind.TransactOpts {
	o := *txOpts
	o.GasLimit = 0
	return &o
}

// EnsureAllowance checks the USDFC allowance from owner to spender.
// If the current allowance is less than need, it submits an Approve transaction
// for max uint256 and waits for it to be mined. This ensures the spender can
// transfer tokens on behalf of the owner in subsequent operations.
func (evm *EVMClient) EnsureAllowance(ctx context.Context, owner, spender common.Address, need *big.Int, call *bind.CallOpts, txOpts *bind.TransactOpts) error {
	allowance, err := evm.Token.Allowance(call, owner, spender)
	if err != nil {
		return err
	}
	if allowance != nil && allowance.Cmp(need) >= 0 {
		return nil
	}

	tx, err := evm.Token.Approve(estimateGas(txOpts), spender, maxUint256)
	if err != nil {
		return err
	}
	zap.L().Debug("approve submitted",
		zap.String("spender", spender.Hex()),
		zap.String("tx", tx.Hash().Hex()))

	_, err = evm.WaitForTransaction(ctx, tx.Hash(), receiptBackoffCap)
	return err
}

// Deposit moves amount USDFC from the caller's wallet into the payments
// escrow account of to, ensuring the payments contract holds a sufficient
// allowance first. It submits the deposit and waits for it to be mined.
func (evm *EVMClient) Deposit(ctx context.Context, to common.Address, amount *big.Int, call *bind.CallOpts, txOpts *bind.TransactOpts) (*types.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}

	if err := evm.EnsureAllowance(ctx, txOpts.From, evm.Payments.Address(), amount, call, txOpts); err != nil {
		return nil, fmt.Errorf("ensure allowance: %w", err)
	}

	tx, err := evm.Payments.Deposit(estimateGas(txOpts), evm.Token.Address(), to, amount)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("deposit submitted",
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx", tx.Hash().Hex()))

	return evm.WaitForTransaction(ctx, tx.Hash(), receiptBackoffCap)
}

// Withdraw moves amount of unlocked USDFC from the caller's escrow account
// back to the wallet and waits for the transaction to be mined.
func (evm *EVMClient) Withdraw(ctx context.Context, amount *big.Int, txOpts *bind.TransactOpts) (*types.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.New("withdraw amount must be positive")
	}

	tx, err := evm.Payments.Withdraw(estimateGas(txOpts), evm.Token.Address(), amount)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("withdraw submitted",
		zap.String("amount", amount.String()),
		zap.String("tx", tx.Hash().Hex()))

	return evm.WaitForTransaction(ctx, tx.Hash(), receiptBackoffCap)
}

// ApproveOperator authorizes the warm-storage service to create payment rails
// against the caller's escrow account, bounded by the given per-epoch rate
// allowance, total lockup allowance, and maximum lockup period in epochs.
// It submits the approval and waits for it to be mined.
func (evm *EVMClient) ApproveOperator(ctx context.Context, rateAllowance, lockupAllowance, maxLockupPeriod *big.Int, txOpts *bind.TransactOpts) (*types.Receipt, error) {
	tx, err := evm.Payments.SetOperatorApproval(estimateGas(txOpts),
		evm.Token.Address(), evm.WarmStorage.Address(), true,
		rateAllowance, lockupAllowance, maxLockupPeriod)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("operator approval submitted",
		zap.String("operator", evm.WarmStorage.Address().Hex()),
		zap.String("rateAllowance", rateAllowance.String()),
		zap.String("lockupAllowance", lockupAllowance.String()),
		zap.String("tx", tx.Hash().Hex()))

	return evm.WaitForTransaction(ctx, tx.Hash(), receiptBackoffCap)
}

// WalletBalance returns the USDFC balance held in owner's wallet.
func (evm *EVMClient) WalletBalance(call *bind.CallOpts, owner common.Address) (*big.Int, error) {
	bal, err := evm.Token.BalanceOf(call, owner)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("wallet balance", zap.String("owner", owner.Hex()), zap.String("balance", bal.String()))
	return bal, nil
}

// AccountFunds reads the escrow account state for owner.
func (evm *EVMClient) AccountFunds(call *bind.CallOpts, owner common.Address) (Account, error) {
	return evm.Payments.Accounts(call, evm.Token.Address(), owner)
}

// OperatorApprovalFor reads the approval client granted to the warm-storage
// service over its escrow account.
func (evm *EVMClient) OperatorApprovalFor(call *bind.CallOpts, client common.Address) (OperatorApproval, error) {
	return evm.Payments.OperatorApprovals(call, evm.Token.Address(), client, evm.WarmStorage.Address())
}

// ServicePrice reads the warm-storage pricing terms.
func (evm *EVMClient) ServicePrice(call *bind.CallOpts) (ServicePrice, error) {
	return evm.WarmStorage.GetServicePrice(call)
}

// ApprovedProviders lists the storage providers approved by the warm-storage
// service.
func (evm *EVMClient) ApprovedProviders(call *bind.CallOpts) ([]common.Address, error) {
	return evm.WarmStorage.GetApprovedProviders(call)
}

// AvailableFunds returns the portion of an escrow account not locked for
// payment rails. Accounts with lockup exceeding funds report zero.
func (a Account) AvailableFunds() *big.Int {
	if a.Funds == nil || a.LockupCurrent == nil {
		return big.NewInt(0)
	}
	avail := new(big.Int).Sub(a.Funds, a.LockupCurrent)
	if avail.Sign() < 0 {
		return big.NewInt(0)
	}
	return avail
}
