package git

import "errors"

var (
	// ErrClone wraps any failure while cloning a repository; one job's clone
	// failure must never escalate past the job boundary.
	ErrClone = errors.New("clone failed")

	// ErrInvalidURL marks clone URLs that fail VCS URL parsing.
	ErrInvalidURL = errors.New("invalid repository URL")
)
