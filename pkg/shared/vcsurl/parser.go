// Package vcsurl parses repository URLs into namespace and repository parts
// and validates submissions before any clone work starts.
package vcsurl

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// define allows schemes: http, https and ssh
var validSchemes = []string{"http", "https", "ssh", "git"}

func isValidScheme(scheme string) bool {
	for _, validScheme := range validSchemes {
		if scheme == validScheme {
			return true
		}
	}
	return false
}

// VCSURL represents a parsed VCS URL.
type VCSURL struct {
	Namespace  string
	Repository string
	Raw        string
	ParsedURL  *url.URL
}

var scpLikeRe = regexp.MustCompile(`^git@([^:]+):(.*)$`)

// Parse parses a VCS URL. SCP-like URLs ("git@<host>:<path>") are rewritten
// to ssh form first; a trailing .git suffix is stripped.
func Parse(raw string) (*VCSURL, error) {
	vcsURL := VCSURL{Raw: raw}

	rawURL := raw
	if parts := scpLikeRe.FindStringSubmatch(rawURL); len(parts) == 3 {
		rawURL = fmt.Sprintf("ssh://%s/%s", parts[1], parts[2])
	}
	rawURL = strings.TrimSuffix(rawURL, ".git")

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, err
	}
	vcsURL.ParsedURL = parsedURL

	if !isValidScheme(parsedURL.Scheme) {
		return nil, fmt.Errorf("invalid scheme: %s", raw)
	}
	if parsedURL.Hostname() == "" {
		return nil, fmt.Errorf("missing host: %s", raw)
	}

	pathDirs := getPathDirs(parsedURL.Path)
	switch {
	case len(pathDirs) == 0:
	case len(pathDirs) == 1:
		vcsURL.Repository = pathDirs[0]
	default:
		vcsURL.Namespace = path.Join(pathDirs[0 : len(pathDirs)-1]...)
		vcsURL.Repository = pathDirs[len(pathDirs)-1]
	}

	return &vcsURL, nil
}

// Validate checks that a string is acceptable as a scan submission: it must
// parse as a VCS URL and name a repository, not just a host.
func Validate(raw string) error {
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Repository == "" {
		return fmt.Errorf("URL does not name a repository: %s", raw)
	}
	return nil
}

// getPathDirs splits the URL path into non-empty segments.
func getPathDirs(urlPath string) []string {
	var pathDirs []string
	for _, dir := range strings.Split(urlPath, "/") {
		if dir != "" {
			pathDirs = append(pathDirs, dir)
		}
	}
	return pathDirs
}
