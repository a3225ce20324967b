package serve

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/depscout/internal/categorizer"
	"github.com/scan-io-git/depscout/internal/git"
	"github.com/scan-io-git/depscout/internal/jobs"
	"github.com/scan-io-git/depscout/internal/orchestrator"
	"github.com/scan-io-git/depscout/internal/server"
	"github.com/scan-io-git/depscout/internal/worker"
	"github.com/scan-io-git/depscout/pkg/shared/config"
	"github.com/scan-io-git/depscout/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	logger       hclog.Logger
	serveOptions RunOptionsServe

	exampleServeUsage = `  # Start the REST service on the configured address
  depscout serve

  # Start the REST service on a specific address
  depscout serve --addr :9000`
)

// RunOptionsServe holds the arguments of the serve command.
type RunOptionsServe struct {
	Addr           string
	CategoriesPath string
}

// ServeCmd represents the command for running the asynchronous scan service.
var ServeCmd = &cobra.Command{
	Use:                   "serve [--addr ADDRESS] [--categories PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleServeUsage,
	Short:                 "Run the REST service executing scan jobs asynchronously",
	RunE:                  runServeCommand,
}

// Init initializes the global configuration variable for the ServeCmd command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errors.NewCommandError(fmt.Errorf("the serve command takes no positional arguments"), 1)
	}

	creds, err := server.LoadCredentials(AppConfig.Server.EnvFile)
	if err != nil {
		logger.Error("failed to load API credentials", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to load API credentials: %w", err), 1)
	}

	cat, err := loadCategorizer(&serveOptions, AppConfig)
	if err != nil {
		logger.Error("failed to load category configuration", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to load category configuration: %w", err), 1)
	}

	gitClient, err := git.New(logger, AppConfig)
	if err != nil {
		logger.Error("failed to initialize git client", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to initialize git client: %w", err), 1)
	}

	jobManager := jobs.NewManager(logger)
	scanner := orchestrator.New(logger, orchestrator.Options{
		Excludes:    AppConfig.Scan.Excludes,
		Categorizer: cat,
	})
	scanWorker := worker.New(jobManager, gitClient, scanner, cat, AppConfig.GitClient.WorkDir, logger)

	jobManager.StartCleanup(context.Background(),
		config.SetThen(AppConfig.Jobs.CleanupInterval, config.DefaultCleanupInterval),
		config.SetThen(AppConfig.Jobs.CleanupAge, config.DefaultCleanupAge),
		config.SetThen(AppConfig.Jobs.StaleThreshold, config.DefaultStaleThreshold))

	runJob := func(jobID, gitURL string) {
		scanWorker.Run(context.Background(), jobID, gitURL)
	}

	addr := config.SetThen(serveOptions.Addr,
		config.SetThen(AppConfig.Server.Addr, config.DefaultServerAddr))

	srv := server.New(jobManager, runJob, creds, logger)
	if err := srv.Start(addr); err != nil {
		logger.Error("server stopped with error", "error", err)
		return errors.NewCommandError(fmt.Errorf("server stopped with error: %w", err), 2)
	}
	return nil
}

// loadCategorizer builds the optional categorizer from the flag or the
// configuration file.
func loadCategorizer(options *RunOptionsServe, cfg *config.Config) (*categorizer.Categorizer, error) {
	path := config.SetThen(options.CategoriesPath, cfg.Scan.Categories)
	if path == "" {
		return nil, nil
	}

	catConfig, err := categorizer.Load(path)
	if err != nil {
		return nil, err
	}
	return categorizer.New(catConfig), nil
}

func init() {
	ServeCmd.Flags().StringVar(&serveOptions.Addr, "addr", "", "Address the HTTP server listens on (host:port).")
	ServeCmd.Flags().StringVar(&serveOptions.CategoriesPath, "categories", "", "Path to the category taxonomy YAML file.")
	ServeCmd.Flags().BoolP("help", "h", false, "Show help for the serve command.")
}
