// Package git wraps go-git cloning behind the contract the scan workers
// consume: clone a URL into a destination directory with bounded progress
// callbacks.
package git

import (
	"context"
	"fmt"

	gsvcsurl "github.com/gitsight/go-vcsurl"
	"github.com/go-git/go-git/v5"

	"github.com/scan-io-git/depscout/pkg/shared/vcsurl"
)

// Clone fetches the repository at cloneURL into targetFolder and returns the
// path to the working tree. onProgress, when non-nil, is invoked at a bounded
// interval with the number of bytes transferred so far.
func (c *Client) Clone(ctx context.Context, cloneURL, targetFolder string, onProgress ProgressFunc) (string, error) {
	if err := vcsurl.Validate(cloneURL); err != nil {
		c.logger.Error("failed to parse VCS URL", "VCSURL", cloneURL, "error", err)
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	// Provider metadata is informational; unknown hosts parse as generic.
	repoName := cloneURL
	if info, err := gsvcsurl.Parse(cloneURL); err == nil {
		repoName = info.Name
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("starting repository clone", "repository", repoName, "cloneURL", cloneURL, "targetFolder", targetFolder)
	_, err := git.PlainCloneContext(ctx, targetFolder, false, &git.CloneOptions{
		Auth:            c.auth,
		URL:             cloneURL,
		Progress:        newProgressWriter(onProgress),
		Depth:           c.depth,
		InsecureSkipTLS: c.insecureTLS,
	})
	if err != nil {
		c.logger.Error("error occurred during clone", "error", err, "targetFolder", targetFolder)
		return "", fmt.Errorf("%w: %v", ErrClone, err)
	}

	c.logger.Info("repository clone completed", "repository", repoName, "targetFolder", targetFolder)
	return targetFolder, nil
}
