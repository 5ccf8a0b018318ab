package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <pieceCID>",
	Short: "Download a piece from the CDN or the storage provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if downloadOutput != "" {
			if err := client.DownloadToFile(cmd.Context(), args[0], downloadOutput); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s\n", downloadOutput)
			return nil
		}

		data, err := client.Download(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "write the piece to this path instead of stdout")
	rootCmd.AddCommand(downloadCmd)
}
