// Package blockchain provides low-level Filecoin EVM interaction for the Synapse SDK.
//
// This package contains clients and utilities for interacting with:
//   - USDFC stablecoin (ERC-20) token contract
//   - Payments escrow contract for storage funding
//   - Warm-storage service contract (pricing, provider set, operator rails)
//
// # Architecture
//
// The package is organized around one client type with typed contract bindings:
//
// EVMClient:
//   - Connected ethclient with bearer-token support for gated RPC endpoints
//   - Typed bindings for Token, Payments and WarmStorage contracts
//   - Submit-and-wait helpers with receipt polling and backoff
//   - Allowance management for escrow deposits
//
// # Smart Contracts
//
// The package interacts with three main contracts:
//
// 1. USDFC Token Contract:
//   - ERC-20 stablecoin used for all storage payments
//   - Approve/transfer operations
//   - Balance and allowance queries
//
// 2. Payments Contract:
//   - Holds USDFC escrow deposits per account
//   - Tracks funds locked for active payment rails
//   - Manages operator approvals for the warm-storage service
//
// 3. Warm-Storage Service Contract:
//   - Publishes current storage pricing (with and without CDN)
//   - Maintains the approved storage-provider set
//   - Acts as the payments operator creating rails on uploads
//
// # Funding Operations
//
// Depositing into escrow (allowance is ensured automatically):
//
//	receipt, err := evm.Deposit(ctx, walletAddr, amount, callOpts, txOpts)
//
// Withdrawing unlocked funds:
//
//	receipt, err := evm.Withdraw(ctx, amount, txOpts)
//
// Authorizing the warm-storage service to charge the account:
//
//	receipt, err := evm.ApproveOperator(ctx, ratePerEpoch, lockup, maxLockupEpochs, txOpts)
//
// # Reads
//
// Wallet and escrow state:
//
//	bal, err := evm.WalletBalance(callOpts, owner)      // USDFC in the wallet
//	acct, err := evm.AccountFunds(callOpts, owner)      // escrow funds + lockup
//	avail := acct.AvailableFunds()                      // funds - lockup
//
// Service terms:
//
//	price, err := evm.WarmStorage.GetServicePrice(callOpts)
//	providers, err := evm.WarmStorage.GetApprovedProviders(callOpts)
//
// # Transaction Management
//
// All write helpers submit the transaction and poll for the receipt with
// exponential backoff (capped at 30s between polls). A mined-but-reverted
// transaction is reported as an error:
//
//	receipt, err := evm.Deposit(ctx, to, amount, callOpts, txOpts)
//	if err != nil {
//		log.Fatalf("deposit failed: %v", err)
//	}
//	fmt.Printf("mined in epoch %s\n", receipt.BlockNumber)
//
// Gas is estimated automatically for all transactions.
//
// # Units
//
// USDFC uses 18 decimals. Conversion helpers accept several numeric shapes:
//
//	base, err := blockchain.TokenToBase("1.5")  // 1500000000000000000
//	usd := blockchain.BaseToToken(base)         // 1.5
//	s := blockchain.FormatBase(base)            // "1.5"
//
// Filecoin epochs are 30 seconds; blockchain.EpochsPerDay (2880) converts
// day-based durations into epoch counts for lockup periods.
//
// # Signing
//
// Transactions are signed either with a hex private key or an external signer:
//
//	addr, key, err := blockchain.ParsePrivateKeyECDSA(hexKey)
//	txOpts, err := blockchain.GetTransactOpts(chainID, key)
//
//	// or, for hardware wallets / KMS:
//	txOpts := blockchain.SignerTransactOpts(chainID, mysigner)
//
// # Error Handling
//
// Common blockchain errors:
//
//   - Insufficient FIL: wallet lacks gas for transaction fees
//   - Insufficient USDFC: wallet cannot cover the deposit amount
//   - Transaction reverted: contract rejected the operation
//   - Timeout: transaction not mined within the caller's context deadline
//
// # Resource Management
//
// Close the EVM client to release the RPC connection:
//
//	evm, err := blockchain.InitEvm(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer evm.Close()
//
// # See Also
//
//   - sdk package for the high-level API
//   - config package for network and endpoint selection
//   - examples/wallet-setup for a complete funding walkthrough
package blockchain
