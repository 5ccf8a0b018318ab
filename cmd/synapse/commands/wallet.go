package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage USDFC funds and storage authorization",
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show wallet and escrow balances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		balance, err := client.WalletBalance(ctx)
		if err != nil {
			return err
		}
		account, err := client.AccountInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("wallet: %s USDFC\n", balance)
		fmt.Printf("escrow: %s USDFC total, %s locked, %s available\n",
			account.TotalFunds, account.LockedFunds, account.AvailableFunds)
		return nil
	},
}

var (
	setupDeposit string
	setupRate    string
	setupLockup  string
	setupDays    uint64
)

var walletSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Deposit USDFC and authorize the storage service in one go",
	Long: `setup submits two transactions: a deposit into the payments escrow,
then an operator approval letting the warm-storage service charge the account
up to the given rate and lockup. Run it once before the first upload.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deposit, err := decimal.NewFromString(setupDeposit)
		if err != nil {
			return fmt.Errorf("parse --deposit %q: %w", setupDeposit, err)
		}
		rate, err := decimal.NewFromString(setupRate)
		if err != nil {
			return fmt.Errorf("parse --rate %q: %w", setupRate, err)
		}
		lockup, err := decimal.NewFromString(setupLockup)
		if err != nil {
			return fmt.Errorf("parse --lockup %q: %w", setupLockup, err)
		}
		if err := client.SetupWallet(cmd.Context(), deposit, rate, lockup, setupDays); err != nil {
			return err
		}
		fmt.Println("wallet funded and storage service approved")
		return nil
	},
}

var walletDepositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Move USDFC from the wallet into the payments escrow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", args[0], err)
		}
		if err := client.Deposit(cmd.Context(), amount); err != nil {
			return err
		}
		fmt.Printf("deposited %s USDFC\n", amount)
		return nil
	},
}

var walletWithdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Move unlocked USDFC from the escrow back to the wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", args[0], err)
		}
		if err := client.Withdraw(cmd.Context(), amount); err != nil {
			return err
		}
		fmt.Printf("withdrew %s USDFC\n", amount)
		return nil
	},
}

var (
	approveRate   string
	approveLockup string
	approveDays   uint64
)

var walletApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Authorize the warm-storage service to charge this account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := decimal.NewFromString(approveRate)
		if err != nil {
			return fmt.Errorf("parse --rate %q: %w", approveRate, err)
		}
		lockup, err := decimal.NewFromString(approveLockup)
		if err != nil {
			return fmt.Errorf("parse --lockup %q: %w", approveLockup, err)
		}
		if err := client.ApproveService(cmd.Context(), rate, lockup, approveDays); err != nil {
			return err
		}
		fmt.Println("storage service approved")
		return nil
	},
}

func init() {
	walletSetupCmd.Flags().StringVar(&setupDeposit, "deposit", "0", "USDFC to deposit into the escrow")
	walletSetupCmd.Flags().StringVar(&setupRate, "rate", "0", "USDFC per epoch the service may charge")
	walletSetupCmd.Flags().StringVar(&setupLockup, "lockup", "0", "total USDFC the service may lock")
	walletSetupCmd.Flags().Uint64Var(&setupDays, "days", 30, "maximum lockup period in days")

	walletApproveCmd.Flags().StringVar(&approveRate, "rate", "0", "USDFC per epoch the service may charge")
	walletApproveCmd.Flags().StringVar(&approveLockup, "lockup", "0", "total USDFC the service may lock")
	walletApproveCmd.Flags().Uint64Var(&approveDays, "days", 30, "maximum lockup period in days")

	walletCmd.AddCommand(walletBalanceCmd, walletSetupCmd, walletDepositCmd, walletWithdrawCmd, walletApproveCmd)
	rootCmd.AddCommand(walletCmd)
}
