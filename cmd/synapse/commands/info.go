package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show balances, pricing and service state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(client.GetStorageInfo(cmd.Context()))
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the storage provider is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ProviderStatus(cmd.Context()); err != nil {
			return fmt.Errorf("provider unreachable: %w", err)
		}
		fmt.Println("provider is up")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, pingCmd)
}
