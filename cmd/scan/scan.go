package scan

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/depscout/internal/orchestrator"
	"github.com/scan-io-git/depscout/internal/report"
	"github.com/scan-io-git/depscout/pkg/shared/config"
	"github.com/scan-io-git/depscout/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	scanOptions RunOptionsScan

	exampleScanUsage = `  # Scan a local project and print the summary
  depscout scan /path/to/project

  # Scan with a category taxonomy and write a JSON report
  depscout scan --categories categories.yml --json-output report.json /path/to/project

  # Exclude generated directories and write HTML and SARIF reports
  depscout scan --exclude generated --exclude "*.min.js" --html-output report.html --sarif-output report.sarif /path/to/project`
)

// RunOptionsScan holds the arguments of the scan command.
type RunOptionsScan struct {
	Excludes       []string
	CategoriesPath string
	JSONOutput     string
	HTMLOutput     string
	SarifOutput    string
	Debug          bool
}

// ScanCmd represents the command for a local synchronous project scan.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--categories PATH] [--exclude PATTERN]... [--json-output PATH] [--html-output PATH] [--sarif-output PATH] PROJECT_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Scan a local project for dependencies, API calls and infrastructure",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable for the ScanCmd command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid scan arguments: %w", err), 1)
	}
	if scanOptions.Debug {
		logger.SetLevel(hclog.Debug)
	}
	projectPath := args[0]

	cat, catConfig, err := loadCategorizer(&scanOptions, AppConfig)
	if err != nil {
		logger.Error("failed to load category configuration", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to load category configuration: %w", err), 1)
	}

	excludes := append([]string{}, AppConfig.Scan.Excludes...)
	excludes = append(excludes, scanOptions.Excludes...)

	o := orchestrator.New(logger, orchestrator.Options{
		Excludes:    excludes,
		Categorizer: cat,
	})

	result, err := o.ScanProject(projectPath)
	if err != nil {
		logger.Error("scan command failed", "error", err)
		return errors.NewCommandError(fmt.Errorf("scan command failed: %w", err), 2)
	}

	printSummary(result)

	if scanOptions.JSONOutput != "" {
		if err := report.WriteJSON(result, scanOptions.JSONOutput); err != nil {
			logger.Error("failed to write JSON report", "error", err)
			return errors.NewCommandError(err, 2)
		}
		logger.Info("results saved to file", "path", scanOptions.JSONOutput)
	}
	if scanOptions.HTMLOutput != "" {
		if err := report.WriteHTML(result, scanOptions.HTMLOutput); err != nil {
			logger.Error("failed to write HTML report", "error", err)
			return errors.NewCommandError(err, 2)
		}
		logger.Info("results saved to file", "path", scanOptions.HTMLOutput)
	}
	if scanOptions.SarifOutput != "" {
		var restricted []string
		if catConfig != nil {
			restricted = catConfig.Restricted
		}
		if err := report.WriteSARIF(result, restricted, scanOptions.SarifOutput); err != nil {
			logger.Error("failed to write SARIF report", "error", err)
			return errors.NewCommandError(err, 2)
		}
		logger.Info("results saved to file", "path", scanOptions.SarifOutput)
	}

	logger.Info("scan command completed successfully")
	return nil
}

func init() {
	ScanCmd.Flags().StringVar(&scanOptions.CategoriesPath, "categories", "", "Path to the category taxonomy YAML file.")
	ScanCmd.Flags().StringArrayVarP(&scanOptions.Excludes, "exclude", "e", nil, "Directory name or file glob to skip. May be repeated.")
	ScanCmd.Flags().StringVar(&scanOptions.JSONOutput, "json-output", "", "Path where the JSON report will be saved.")
	ScanCmd.Flags().StringVar(&scanOptions.HTMLOutput, "html-output", "", "Path where the HTML report will be saved.")
	ScanCmd.Flags().StringVar(&scanOptions.SarifOutput, "sarif-output", "", "Path where the SARIF report will be saved.")
	ScanCmd.Flags().BoolVar(&scanOptions.Debug, "debug", false, "Enable debug logging for this run.")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
