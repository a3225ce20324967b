package git

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	crssh "golang.org/x/crypto/ssh"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/depscout/pkg/shared/config"
	"github.com/scan-io-git/depscout/pkg/shared/files"
)

// Client is a Git clone service with configuration and authentication.
type Client struct {
	logger       hclog.Logger
	auth         transport.AuthMethod
	timeout      time.Duration
	depth        int
	insecureTLS  bool
	globalConfig *config.Config
}

// Authenticator defines an interface for different authentication methods.
type Authenticator interface {
	SetupAuth(cfg *config.GitClient, logger hclog.Logger) (transport.AuthMethod, error)
}

// SSHKeyAuthenticator provides SSH key-based authentication.
type SSHKeyAuthenticator struct{}

// HTTPAuthenticator provides HTTP basic authentication from environment
// credentials.
type HTTPAuthenticator struct{}

// AnonymousAuthenticator clones public repositories without credentials.
type AnonymousAuthenticator struct{}

// SetupAuth configures SSH key authentication.
func (s *SSHKeyAuthenticator) SetupAuth(cfg *config.GitClient, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up SSH key authentication")

	sshKeyPath, err := files.ExpandPath(cfg.SSHKey)
	if err != nil {
		logger.Error("failed to expand SSH key path", "path", cfg.SSHKey, "error", err)
		return nil, err
	}

	auth, err := ssh.NewPublicKeysFromFile("git", sshKeyPath, os.Getenv("DEPSCOUT_SSH_KEY_PASSWORD"))
	if err != nil {
		logger.Error("failed to set up SSH key authentication", "error", err.Error())
		return nil, err
	}

	auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
		HostKeyCallback: crssh.InsecureIgnoreHostKey(), // TODO: Fix this
	}

	return auth, nil
}

// SetupAuth configures HTTP basic authentication.
func (h *HTTPAuthenticator) SetupAuth(cfg *config.GitClient, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up HTTP authentication")

	username := os.Getenv("DEPSCOUT_GIT_USERNAME")
	token := os.Getenv("DEPSCOUT_GIT_TOKEN")
	if username == "" || token == "" {
		return nil, fmt.Errorf("DEPSCOUT_GIT_USERNAME and DEPSCOUT_GIT_TOKEN are required for http auth")
	}

	return &http.BasicAuth{
		Username: username,
		Password: token,
	}, nil
}

// SetupAuth returns no auth method; public clones need none.
func (a *AnonymousAuthenticator) SetupAuth(cfg *config.GitClient, logger hclog.Logger) (transport.AuthMethod, error) {
	return nil, nil
}

// getAuthenticator returns the appropriate Authenticator based on the authentication type.
func getAuthenticator(authType string) (Authenticator, error) {
	switch authType {
	case "ssh-key":
		return &SSHKeyAuthenticator{}, nil
	case "http":
		return &HTTPAuthenticator{}, nil
	case "":
		return &AnonymousAuthenticator{}, nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", authType)
	}
}

// New initializes a new Git Client with the given parameters.
func New(logger hclog.Logger, globalConfig *config.Config) (*Client, error) {
	gitConfig := globalConfig.GitClient

	authenticator, err := getAuthenticator(gitConfig.AuthType)
	if err != nil {
		logger.Error("unsupported authentication type", "error", err)
		return nil, fmt.Errorf("unsupported authentication type: %w", err)
	}

	auth, err := authenticator.SetupAuth(&gitConfig, logger)
	if err != nil {
		logger.Error("failed to set up Git authentication", "error", err)
		return nil, fmt.Errorf("failed to set up Git authentication: %w", err)
	}

	return &Client{
		logger:       logger,
		auth:         auth,
		timeout:      config.SetThen(gitConfig.Timeout, config.DefaultCloneTimeout),
		depth:        config.SetThen(gitConfig.Depth, config.DefaultCloneDepth),
		insecureTLS:  config.GetBoolValue(gitConfig, "Insecure", false),
		globalConfig: globalConfig,
	}, nil
}
