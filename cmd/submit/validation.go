package submit

import (
	"fmt"
	"net/url"

	"github.com/scan-io-git/depscout/pkg/shared/vcsurl"
)

// validateSubmitArgs validates the arguments provided to the submit command.
func validateSubmitArgs(options *RunOptionsSubmit, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a single repository URL argument is required")
	}

	if options.ServerURL == "" {
		return fmt.Errorf("the 'server' flag must be specified")
	}
	if _, err := url.ParseRequestURI(options.ServerURL); err != nil {
		return fmt.Errorf("provided server URL is not valid: %w", err)
	}

	if err := vcsurl.Validate(args[0]); err != nil {
		return fmt.Errorf("provided repository URL is not valid: %w", err)
	}

	return nil
}
