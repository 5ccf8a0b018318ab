package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filozone/synapse-sdk-go/pkg/sdk"
)

var (
	uploadName        string
	uploadContentType string
	uploadDryRun      bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file to the storage provider",
	Long: `upload stores a file as a piece with the configured provider and
prints the resulting piece CID. With --dry-run it only estimates the
recurring storage cost and checks the current authorization.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if uploadDryRun {
			fi, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			check, err := client.PreflightUpload(cmd.Context(), fi.Size())
			if err != nil {
				return err
			}
			return printJSON(check)
		}

		var opts []sdk.UploadOption
		if uploadName != "" {
			opts = append(opts, sdk.WithFilename(uploadName))
		}
		if uploadContentType != "" {
			opts = append(opts, sdk.WithContentType(uploadContentType))
		}
		result, err := client.UploadFile(cmd.Context(), args[0], opts...)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <pieceCID>",
	Short: "Check whether a piece is retrievable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := client.FileExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(found)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "filename to record with the piece (default: the file's base name)")
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "content type to record with the piece")
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "estimate cost and check authorization without uploading")
	rootCmd.AddCommand(uploadCmd, existsCmd)
}
