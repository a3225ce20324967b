package submit

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/depscout/internal/server"
	"github.com/scan-io-git/depscout/pkg/shared/config"
	"github.com/scan-io-git/depscout/pkg/shared/errors"
	"github.com/scan-io-git/depscout/pkg/shared/httpclient"
)

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	logger        hclog.Logger
	submitOptions RunOptionsSubmit

	exampleSubmitUsage = `  # Submit a repository to a running depscout server
  depscout submit --server http://localhost:8000 https://github.com/scan-io-git/scan-io.git

  # Submit and wait for the scan to finish, printing the results
  depscout submit --server http://localhost:8000 --wait https://github.com/scan-io-git/scan-io.git`

	pollInterval = 2 * time.Second
)

// RunOptionsSubmit holds the arguments of the submit command.
type RunOptionsSubmit struct {
	ServerURL string
	Wait      bool
}

// submitResponse mirrors the server's job-acceptance payload.
type submitResponse struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// jobStatusResponse mirrors the server's job status payload.
type jobStatusResponse struct {
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"error_message"`
}

// SubmitCmd represents the command for submitting a scan to a remote server.
var SubmitCmd = &cobra.Command{
	Use:                   "submit --server URL [--wait] GIT_URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSubmitUsage,
	Short:                 "Submit a repository URL to a running depscout server",
	RunE:                  runSubmitCommand,
}

// Init initializes the global configuration variable for the SubmitCmd command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runSubmitCommand(cmd *cobra.Command, args []string) error {
	if err := validateSubmitArgs(&submitOptions, args); err != nil {
		logger.Error("invalid submit arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid submit arguments: %w", err), 1)
	}
	gitURL := args[0]

	creds, err := server.LoadCredentials(AppConfig.Server.EnvFile)
	if err != nil {
		logger.Error("failed to load API credentials", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to load API credentials: %w", err), 1)
	}

	client := httpclient.InitializeRestyClient(logger, AppConfig)
	client.SetBaseURL(strings.TrimRight(submitOptions.ServerURL, "/"))
	client.SetBasicAuth(creds.Username, creds.Password)

	var accepted submitResponse
	resp, err := client.R().
		SetBody(map[string]string{"git_url": gitURL}).
		SetResult(&accepted).
		Post("/scan")
	if err != nil {
		logger.Error("failed to submit scan request", "error", err)
		return errors.NewCommandError(fmt.Errorf("failed to submit scan request: %w", err), 2)
	}
	if resp.StatusCode() != http.StatusCreated {
		logger.Error("server rejected scan request", "status", resp.StatusCode(), "body", resp.String())
		return errors.NewCommandError(fmt.Errorf("server rejected scan request: %s", resp.Status()), 2)
	}

	logger.Info("scan job accepted", "job_id", accepted.JobID, "status", accepted.Status)
	fmt.Println(accepted.JobID)

	if !submitOptions.Wait {
		return nil
	}
	return waitForJob(client, accepted.JobID)
}

// waitForJob polls the job until it reaches a terminal state, then fetches
// and prints the results.
func waitForJob(client *resty.Client, jobID string) error {
	for {
		var status jobStatusResponse
		resp, err := client.R().
			SetResult(&status).
			Get("/jobs/" + jobID)
		if err != nil {
			logger.Error("failed to poll job status", "job_id", jobID, "error", err)
			return errors.NewCommandError(fmt.Errorf("failed to poll job status: %w", err), 2)
		}
		if resp.StatusCode() != http.StatusOK {
			logger.Error("unexpected job status response", "job_id", jobID, "status", resp.StatusCode())
			return errors.NewCommandError(fmt.Errorf("unexpected job status response: %s", resp.Status()), 2)
		}

		logger.Debug("job status", "job_id", jobID, "status", status.Status, "progress", status.Progress)
		switch status.Status {
		case "completed":
			resp, err := client.R().Get("/jobs/" + jobID + "/results")
			if err != nil {
				logger.Error("failed to fetch job results", "job_id", jobID, "error", err)
				return errors.NewCommandError(fmt.Errorf("failed to fetch job results: %w", err), 2)
			}
			fmt.Println(resp.String())
			return nil
		case "failed":
			logger.Error("scan job failed", "job_id", jobID, "error", status.ErrorMessage)
			return errors.NewCommandError(fmt.Errorf("scan job failed: %s", status.ErrorMessage), 2)
		}

		time.Sleep(pollInterval)
	}
}

func init() {
	SubmitCmd.Flags().StringVarP(&submitOptions.ServerURL, "server", "s", "", "Base URL of the depscout server (e.g. http://localhost:8000).")
	SubmitCmd.Flags().BoolVarP(&submitOptions.Wait, "wait", "w", false, "Wait for the scan to finish and print the results.")
	SubmitCmd.Flags().BoolP("help", "h", false, "Show help for the submit command.")
}
