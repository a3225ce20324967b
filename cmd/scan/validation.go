package scan

import (
	"fmt"
	"os"

	"github.com/scan-io-git/depscout/pkg/shared/files"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a single project path argument is required")
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("project path is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %q is not a directory", args[0])
	}

	if options.CategoriesPath != "" {
		if err := files.ValidatePath(options.CategoriesPath); err != nil {
			return fmt.Errorf("categories file is not accessible: %w", err)
		}
	}

	return nil
}
