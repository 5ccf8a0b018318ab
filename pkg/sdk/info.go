package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/filozone/synapse-sdk-go/pkg/blockchain"
	"github.com/filozone/synapse-sdk-go/pkg/model"
)

// GetStorageInfo returns a snapshot of the wallet balance, the payments
// escrow account and the warm-storage service state. The three sub-queries
// run concurrently; each degrades independently to an absent sub-record with
// a warning, and a total failure degrades to model.DefaultStorageInfo. The
// method never returns an error.
func (c *Core) GetStorageInfo(ctx context.Context) *model.StorageInfo {
	network := ""
	if c != nil && c.Config != nil {
		network = c.Config.Network.Name
	}
	if c.readyChain() != nil {
		return model.DefaultStorageInfo(network)
	}

	readCtx, cancel := withTimeout(ctx, c.Config.Timeouts.ChainRead)
	defer cancel()
	call := callOpts(readCtx)

	var (
		balance *big.Int
		account *blockchain.Account
		service *model.ServiceInfo
	)

	g, _ := errgroup.WithContext(readCtx)
	g.Go(func() error {
		balance = fetchOrDefault("wallet balance", nil, func() (*big.Int, error) {
			return c.chain.WalletBalance(call, c.signerAddr)
		})
		return nil
	})
	g.Go(func() error {
		account = fetchOrDefault("account funds", nil, func() (*blockchain.Account, error) {
			a, err := c.chain.AccountFunds(call, c.signerAddr)
			if err != nil {
				return nil, err
			}
			return &a, nil
		})
		return nil
	})
	g.Go(func() error {
		service = fetchOrDefault("service state", nil, func() (*model.ServiceInfo, error) {
			price, err := c.chain.ServicePrice(call)
			if err != nil {
				return nil, err
			}
			providers := fetchOrDefault("approved providers", nil, func() ([]common.Address, error) {
				return c.chain.ApprovedProviders(call)
			})
			return &model.ServiceInfo{
				Pricing:   formatPricing(price),
				Providers: len(providers),
				Network:   network,
			}, nil
		})
		return nil
	})
	// The sub-queries swallow their own failures, so Wait only joins them.
	_ = g.Wait()

	if balance == nil && account == nil && service == nil {
		return model.DefaultStorageInfo(network)
	}

	info := &model.StorageInfo{
		Balance:     blockchain.FormatBase(balance),
		ServiceInfo: service,
	}
	if account != nil {
		info.AccountInfo = &model.AccountInfo{
			AvailableFunds: blockchain.FormatBase(account.AvailableFunds()),
			LockedFunds:    blockchain.FormatBase(account.LockupCurrent),
			TotalFunds:     blockchain.FormatBase(account.Funds),
		}
	}
	return info
}

// fetchOrDefault runs fetch and degrades to def with a warning when it
// fails. GetStorageInfo is contractually error-free, so every sub-query goes
// through this combinator instead of returning an error.
func fetchOrDefault[T any](what string, def T, fetch func() (T, error)) T {
	v, err := fetch()
	if err != nil {
		zap.L().Warn("storage info: "+what+" unavailable", zap.Error(err))
		return def
	}
	return v
}

// formatPricing renders on-chain pricing into the whole-token decimal strings
// carried by model.Pricing.
func formatPricing(price blockchain.ServicePrice) *model.Pricing {
	epochs := uint64(0)
	if price.EpochsPerMonth != nil {
		epochs = price.EpochsPerMonth.Uint64()
	}
	return &model.Pricing{
		PerTiBPerMonth:        blockchain.FormatBase(price.PerTiBPerMonthNoCDN),
		PerTiBPerMonthWithCDN: blockchain.FormatBase(price.PerTiBPerMonthWithCDN),
		TokenAddress:          price.TokenAddress.Hex(),
		EpochsPerMonth:        epochs,
	}
}
