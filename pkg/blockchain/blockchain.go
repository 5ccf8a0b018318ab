// Package blockchain provides Go bindings and helpers to interact with the
// Filecoin Onchain Cloud contracts on Filecoin EVM chains. It initializes an
// Ethereum client, wires typed bindings for the USDFC token, payments escrow
// and warm-storage service contracts, and exposes submit-and-wait helpers for
// the funding operations the SDK performs.
package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/filozone/synapse-sdk-go/pkg/config"
)

// EVMClient holds a connected ethclient.Client and typed bindings for the
// core Filecoin Onchain Cloud contracts: the USDFC token, the payments
// escrow and the warm-storage service.
type EVMClient struct {
	Client      *ethclient.Client
	Token       *Token
	Payments    *Payments
	WarmStorage *WarmStorage
}

// InitEvm dials the configured Filecoin EVM endpoint and binds the USDFC
// token, payments and warm-storage contracts at the addresses carried by
// cfg.Network. When cfg.Authorization is set, it is attached as a bearer
// token to every JSON-RPC request. The endpoint's chain ID is verified
// against the configured network before the client is returned.
func InitEvm(ctx context.Context, cfg *config.Config) (*EVMClient, error) {
	timeouts := cfg.Timeouts.WithDefaults()

	dialCtx, cancelDial := withTimeout(ctx, timeouts.Dial)
	defer cancelDial()

	var opts []rpc.ClientOption
	if cfg.Authorization != "" {
		opts = append(opts, rpc.WithHeader("Authorization", "Bearer "+cfg.Authorization))
	}

	rpcClient, err := rpc.DialOptions(dialCtx, cfg.RPCAddr, opts...)
	if err != nil {
		zap.L().Error("Failed to dial RPC endpoint", zap.String("endpoint", cfg.RPCAddr), zap.Error(err))
		return nil, err
	}

	evm := new(EVMClient)
	evm.Client = ethclient.NewClient(rpcClient)

	readCtx, cancelRead := withTimeout(ctx, timeouts.ChainRead)
	defer cancelRead()

	chainID, err := evm.Client.ChainID(readCtx)
	if err != nil {
		zap.L().Error("Failed to read chain ID", zap.Error(err))
		evm.Client.Close()
		return nil, err
	}
	if chainID.String() != cfg.Network.ChainID {
		evm.Client.Close()
		return nil, fmt.Errorf("endpoint chain ID %s does not match network %q (%s)",
			chainID, cfg.Network.Name, cfg.Network.ChainID)
	}

	evm.Token, err = NewToken(common.HexToAddress(cfg.Network.TokenAddr), evm.Client)
	if err != nil {
		return evm, err
	}

	evm.Payments, err = NewPayments(common.HexToAddress(cfg.Network.PaymentsAddr), evm.Client)
	if err != nil {
		return evm, err
	}

	evm.WarmStorage, err = NewWarmStorage(common.HexToAddress(cfg.Network.WarmStorageAddr), evm.Client)
	if err != nil {
		return evm, err
	}

	return evm, nil
}

// GetCurrentBlockNumberCtx returns the latest epoch number using the provided context.
func (evm *EVMClient) GetCurrentBlockNumberCtx(ctx context.Context) (*big.Int, error) {
	header, err := evm.Client.HeaderByNumber(ctx, nil)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return nil, err
	}
	return header.Number, nil
}

// Close shuts down the underlying RPC connection.
func (evm *EVMClient) Close() {
	if evm.Client != nil {
		evm.Client.Close()
	}
}
