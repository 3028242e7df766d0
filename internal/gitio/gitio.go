// Package gitio provides the Git lookups the reference graph needs,
// using go-git.
package gitio

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// IsRepo reports whether path is a directory containing a .git marker.
func IsRepo(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// OriginURL returns the URL of the repository's "origin" remote.
func OriginURL(folder string) (string, error) {
	repo, err := git.PlainOpen(folder)
	if err != nil {
		return "", fmt.Errorf("opening repository %s: %w", folder, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("no origin remote in %s: %w", folder, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote in %s has no URL", folder)
	}
	return urls[0], nil
}
