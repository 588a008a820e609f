package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// populateOrganizationDefault fills the organization from the GitHub Actions
// environment, then from the origin remote of the current checkout.
func populateOrganizationDefault(cfg *Config) {
	if owner := os.Getenv("GITHUB_REPOSITORY_OWNER"); owner != "" {
		cfg.Organization = owner
		return
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		if owner, _, ok := strings.Cut(slug, "/"); ok && owner != "" {
			cfg.Organization = owner
			return
		}
	}
	if owner, err := originOwner("."); err == nil {
		cfg.Organization = owner
	}
}

// originOwner returns the owner of the origin remote of the git repository
// containing dir.
func originOwner(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	owner, _, err := parseGitRemoteURL(urls[0])
	return owner, err
}

// parseGitRemoteURL extracts owner and repository from https, ssh or file
// remote URLs.
func parseGitRemoteURL(raw string) (string, string, error) {
	path := raw
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote URL %q: %w", raw, err)
		}
		path = u.Path
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		_, path, _ = strings.Cut(raw, ":")
	}
	path = strings.TrimSuffix(filepath.ToSlash(path), "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot parse owner and repository from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
