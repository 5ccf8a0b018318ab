package sdk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/filozone/synapse-sdk-go/pkg/blockchain"
	"github.com/filozone/synapse-sdk-go/pkg/model"
)

// SetupWallet performs the full funding flow required before uploads can be
// paid for: it deposits USDFC into the caller's payments escrow account and
// grants the warm-storage service an operator approval bounded by
// ratePerEpoch, lockup and maxLockupDays. All amounts are whole USDFC and
// converted to base units internally.
//
// The two transactions are submitted sequentially and each is awaited. There
// is no rollback: a confirmed deposit stays in escrow even when the approval
// step fails, and the caller may simply run SetupWallet again.
func (c *Core) SetupWallet(ctx context.Context, deposit, ratePerEpoch, lockup decimal.Decimal, maxLockupDays uint64) error {
	if err := c.readyChain(); err != nil {
		return err
	}
	txOpts, err := c.transactOpts()
	if err != nil {
		return err
	}

	depositBase, err := blockchain.TokenToBase(deposit)
	if err != nil {
		return fmt.Errorf("convert deposit amount: %w", err)
	}
	rateBase, err := blockchain.TokenToBase(ratePerEpoch)
	if err != nil {
		return fmt.Errorf("convert rate allowance: %w", err)
	}
	lockupBase, err := blockchain.TokenToBase(lockup)
	if err != nil {
		return fmt.Errorf("convert lockup allowance: %w", err)
	}
	maxLockupEpochs := new(big.Int).SetUint64(maxLockupDays * blockchain.EpochsPerDay)

	readCtx, cancelRead := withTimeout(ctx, c.Config.Timeouts.ChainRead)
	balance, err := c.chain.WalletBalance(callOpts(readCtx), c.signerAddr)
	cancelRead()
	if err != nil {
		return fmt.Errorf("read wallet balance: %w", err)
	}
	zap.L().Info("wallet balance before setup",
		zap.String("address", c.signerAddr.Hex()),
		zap.String("balance", blockchain.FormatBase(balance)))
	if balance.Cmp(depositBase) < 0 {
		return fmt.Errorf("wallet balance %s USDFC below requested deposit %s",
			blockchain.FormatBase(balance), blockchain.FormatBase(depositBase))
	}

	if _, err := c.chain.Deposit(ctx, c.signerAddr, depositBase, callOpts(ctx), txOpts); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	zap.L().Info("deposit confirmed",
		zap.String("amount", blockchain.FormatBase(depositBase)))

	if _, err := c.chain.ApproveOperator(ctx, rateBase, lockupBase, maxLockupEpochs, txOpts); err != nil {
		return fmt.Errorf("approve storage service: %w", err)
	}
	zap.L().Info("storage service approved",
		zap.String("rateAllowance", blockchain.FormatBase(rateBase)),
		zap.String("lockupAllowance", blockchain.FormatBase(lockupBase)),
		zap.String("maxLockupEpochs", maxLockupEpochs.String()))

	return nil
}

// Deposit moves amount whole USDFC from the wallet into the caller's escrow
// account, approving the payments contract first when needed, and waits for
// the transaction to be mined.
func (c *Core) Deposit(ctx context.Context, amount decimal.Decimal) error {
	if err := c.readyChain(); err != nil {
		return err
	}
	txOpts, err := c.transactOpts()
	if err != nil {
		return err
	}
	amountBase, err := blockchain.TokenToBase(amount)
	if err != nil {
		return fmt.Errorf("convert deposit amount: %w", err)
	}
	if _, err := c.chain.Deposit(ctx, c.signerAddr, amountBase, callOpts(ctx), txOpts); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

// Withdraw moves amount whole USDFC of unlocked escrow funds back to the
// wallet and waits for the transaction to be mined.
func (c *Core) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	if err := c.readyChain(); err != nil {
		return err
	}
	txOpts, err := c.transactOpts()
	if err != nil {
		return err
	}
	amountBase, err := blockchain.TokenToBase(amount)
	if err != nil {
		return fmt.Errorf("convert withdraw amount: %w", err)
	}
	if _, err := c.chain.Withdraw(ctx, amountBase, txOpts); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	return nil
}

// ApproveService grants the warm-storage service an operator approval over
// the caller's escrow account: ratePerEpoch bounds the per-epoch payment
// rate, lockup the total locked amount, and maxLockupDays the lockup window.
// Amounts are whole USDFC.
func (c *Core) ApproveService(ctx context.Context, ratePerEpoch, lockup decimal.Decimal, maxLockupDays uint64) error {
	if err := c.readyChain(); err != nil {
		return err
	}
	txOpts, err := c.transactOpts()
	if err != nil {
		return err
	}
	rateBase, err := blockchain.TokenToBase(ratePerEpoch)
	if err != nil {
		return fmt.Errorf("convert rate allowance: %w", err)
	}
	lockupBase, err := blockchain.TokenToBase(lockup)
	if err != nil {
		return fmt.Errorf("convert lockup allowance: %w", err)
	}
	maxLockupEpochs := new(big.Int).SetUint64(maxLockupDays * blockchain.EpochsPerDay)

	if _, err := c.chain.ApproveOperator(ctx, rateBase, lockupBase, maxLockupEpochs, txOpts); err != nil {
		return fmt.Errorf("approve storage service: %w", err)
	}
	return nil
}

// WalletBalance returns the wallet's USDFC balance in whole tokens.
func (c *Core) WalletBalance(ctx context.Context) (decimal.Decimal, error) {
	if err := c.readyChain(); err != nil {
		return decimal.Zero, err
	}
	readCtx, cancel := withTimeout(ctx, c.Config.Timeouts.ChainRead)
	defer cancel()

	balance, err := c.chain.WalletBalance(callOpts(readCtx), c.signerAddr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read wallet balance: %w", err)
	}
	return blockchain.BaseToToken(balance), nil
}

// AccountInfo returns the escrow account funds breakdown as whole-token
// decimal strings.
func (c *Core) AccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	if err := c.readyChain(); err != nil {
		return nil, err
	}
	readCtx, cancel := withTimeout(ctx, c.Config.Timeouts.ChainRead)
	defer cancel()

	account, err := c.chain.AccountFunds(callOpts(readCtx), c.signerAddr)
	if err != nil {
		return nil, fmt.Errorf("read account funds: %w", err)
	}
	return &model.AccountInfo{
		AvailableFunds: blockchain.FormatBase(account.AvailableFunds()),
		LockedFunds:    blockchain.FormatBase(account.LockupCurrent),
		TotalFunds:     blockchain.FormatBase(account.Funds),
	}, nil
}
