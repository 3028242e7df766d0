// Package hub handles GitHub-shaped project references: parsing and
// generating repository URLs, and a thin repository-info client.
package hub

import (
	"fmt"
	"regexp"
	"strings"
)

// Components is the parsed record form of a GitHub repository reference.
type Components struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"`
	Path   string `json:"path,omitempty"`
}

// sshPattern matches git@github.com:owner/repo[.git]
var sshPattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)

// ParseURL parses a GitHub reference into components. Accepted shapes:
//
//	https://github.com/owner/repo
//	https://www.github.com/owner/repo/
//	https://github.com/owner/repo/tree/branch[/sub/path]
//	github.com/owner/repo
//	git@github.com:owner/repo[.git]
func ParseURL(raw string) (Components, error) {
	raw = strings.TrimSpace(raw)

	if m := sshPattern.FindStringSubmatch(raw); m != nil {
		return Components{Owner: m[1], Repo: m[2]}, nil
	}

	// The host must sit right after the scheme: a github.com path segment
	// on a foreign host is not a GitHub URL.
	rest := raw
	rest = strings.TrimPrefix(rest, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	rest = strings.TrimPrefix(rest, "www.")
	if !strings.HasPrefix(rest, "github.com/") {
		return Components{}, fmt.Errorf("not a github.com URL: %s", raw)
	}
	rest = rest[len("github.com/"):]

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Components{}, fmt.Errorf("cannot parse %q as a GitHub repository reference", raw)
	}

	c := Components{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}
	// /tree/<branch>[/<path>] and /blob/<branch>/<path> carry extra context.
	if len(parts) >= 4 && (parts[2] == "tree" || parts[2] == "blob") {
		c.Branch = parts[3]
		if len(parts) > 4 {
			c.Path = strings.Join(parts[4:], "/")
		}
	}
	return c, nil
}

// Stub returns the owner/repo form.
func (c Components) Stub() string {
	return c.Owner + "/" + c.Repo
}

// HTTPSURL returns the canonical HTTPS repository URL. Branch and path are
// intentionally dropped: the canonical form names the repository, not a
// location inside it.
func (c Components) HTTPSURL() string {
	return "https://github.com/" + c.Owner + "/" + c.Repo
}

// SSHURL returns the SSH clone URL.
func (c Components) SSHURL() string {
	return "git@github.com:" + c.Owner + "/" + c.Repo + ".git"
}

// ParseStub splits an owner/repo stub.
func ParseStub(stub string) (Components, error) {
	parts := strings.Split(strings.Trim(stub, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Components{}, fmt.Errorf("cannot parse %q as owner/repo", stub)
	}
	return Components{Owner: parts[0], Repo: strings.TrimSuffix(parts[1], ".git")}, nil
}
