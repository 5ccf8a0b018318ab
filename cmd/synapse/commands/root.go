// Package commands implements the synapse command-line interface.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filozone/synapse-sdk-go/pkg/config"
	"github.com/filozone/synapse-sdk-go/pkg/sdk"
)

var (
	flagNetwork  string
	flagRPC      string
	flagKey      string
	flagAuth     string
	flagProvider string
	flagIPFS     string
	flagNoCDN    bool
	flagDebug    bool
	flagLogFile  string

	// client is the shared SDK instance, built once before any subcommand
	// runs and closed after it returns.
	client sdk.SynapseSDK
)

var rootCmd = &cobra.Command{
	Use:   "synapse",
	Short: "Filecoin warm-storage client",
	Long: `synapse talks to the Filecoin Onchain Cloud: it funds the payments
escrow, authorizes the warm-storage service, and moves pieces to and from a
storage provider.

The signing key comes from --key or the SYNAPSE_PRIVATE_KEY environment
variable. All amounts are whole USDFC.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(flagDebug, flagLogFile)

		key := flagKey
		if key == "" {
			key = os.Getenv("SYNAPSE_PRIVATE_KEY")
		}
		network, err := config.NetworkByName(flagNetwork)
		if err != nil {
			return err
		}

		client, err = sdk.NewSDK(&config.Config{
			Network:          network,
			RPCAddr:          flagRPC,
			PrivateKey:       key,
			Authorization:    flagAuth,
			ProviderEndpoint: flagProvider,
			IPFSAddr:         flagIPFS,
			DisableCDN:       flagNoCDN,
			Debug:            flagDebug,
		})
		if err != nil {
			return fmt.Errorf("initialize client: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

// Execute runs the CLI. Interrupts cancel the command context so in-flight
// transfers and receipt waits stop cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagNetwork, "network", config.Calibration.Name, "target network (mainnet or calibration)")
	pf.StringVar(&flagRPC, "rpc", "", "JSON-RPC endpoint (default: the network's endpoint)")
	pf.StringVar(&flagKey, "key", "", "hex-encoded private key (default: $SYNAPSE_PRIVATE_KEY)")
	pf.StringVar(&flagAuth, "auth", "", "bearer token sent with every RPC request")
	pf.StringVar(&flagProvider, "provider", "", "storage provider base URL (default: the network's provider)")
	pf.StringVar(&flagIPFS, "ipfs", "", "Kubo API endpoint for local pinning (e.g. http://localhost:5001)")
	pf.BoolVar(&flagNoCDN, "no-cdn", false, "disable CDN-accelerated retrieval")
	pf.BoolVarP(&flagDebug, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flagLogFile, "log-file", "", "also write logs to this file (rotated)")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
