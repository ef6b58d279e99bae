// Package commands implements the radencodectl CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the top-level cobra command for radencodectl.
var rootCmd = &cobra.Command{
	Use:   "radencodectl",
	Short: "CLI for encoding RADIUS attribute fixtures",
	Long:  "radencodectl loads a YAML attribute fixture and hex-dumps the encoded wire bytes, without running the radencode daemon.",
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
