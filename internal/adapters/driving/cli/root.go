// Package cli implements the shopctl command line interface.
//
// Commands are thin: they parse flags, call the service facades and print.
// Services are injected from the composition root via SetServices; commands
// guard against missing services so partial wiring fails with a clear
// message instead of a panic.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/services"
	"github.com/custodia-labs/shopctl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	adminAPI    *services.AdminAPI
	configStore driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Manage products and media of a Shopware 6 shop",
	Long: `shopctl talks to the admin API of a Shopware 6 shop.

It manages media folders, media and product picture sets with
deterministic ids, so repeated runs converge instead of duplicating.

Connection settings live in ~/.shopctl/config.toml; run
'shopctl auth login' once to store them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// SetServices injects the service facades and the config store.
// Called from the composition root before Execute.
func SetServices(api *services.AdminAPI, store driven.ConfigStore) {
	adminAPI = api
	configStore = store
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// requireAPI guards commands that need a connected shop.
func requireAPI() error {
	if adminAPI == nil {
		return fmt.Errorf("no shop configured; run 'shopctl auth login' first")
	}
	return nil
}
