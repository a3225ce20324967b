package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/depscout/cmd/scan"
	"github.com/scan-io-git/depscout/cmd/serve"
	"github.com/scan-io-git/depscout/cmd/submit"
	"github.com/scan-io-git/depscout/cmd/version"
	"github.com/scan-io-git/depscout/pkg/shared/config"
	"github.com/scan-io-git/depscout/pkg/shared/errors"
	"github.com/scan-io-git/depscout/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "depscout [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Depscout inventories the dependencies, API calls and infrastructure of a codebase.",
		Long: `Depscout scans a source tree and builds an inventory of its declared and
	imported dependencies, outbound API calls and infrastructure definitions,
	optionally classified against a configured category taxonomy. It runs either
	as a local CLI scan or as a REST service executing scans asynchronously.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(submit.SubmitCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps failures to process exit codes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("initializing config file function is crashed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log := logger.NewLogger(AppConfig, "core")
	initCommands(AppConfig, log)
}

func initCommands(cfg *config.Config, log hclog.Logger) {
	scan.Init(cfg, log)
	serve.Init(cfg, log)
	submit.Init(cfg, log)
}
