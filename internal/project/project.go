// Package project wires the default project-reference graph: the kinds a
// GitHub project reference can take and the conversions between them.
//
// Supported kinds, in detection-priority order:
//
//	proj_name         bare name ("dol")
//	github_stub       org/repo ("i2mint/dol")
//	github_https_url  "https://github.com/i2mint/dol"
//	github_ssh_url    "git@github.com:i2mint/dol.git"
//	local_git_folder  existing directory with a .git marker
//	local_proj_folder alias of local_git_folder
//	url_components    parsed hub.Components record
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"refcast/internal/config"
	"refcast/internal/gitio"
	"refcast/internal/hub"
	"refcast/internal/kind"
)

const (
	ProjName       kind.Kind = "proj_name"
	GithubStub     kind.Kind = "github_stub"
	GithubHTTPSURL kind.Kind = "github_https_url"
	GithubSSHURL   kind.Kind = "github_ssh_url"
	LocalGitFolder kind.Kind = "local_git_folder"
	LocalFolder    kind.Kind = "local_proj_folder"
	URLComponents  kind.Kind = "url_components"
)

// NotFoundError indicates no registered root contains the project.
type NotFoundError struct {
	Name  string
	Roots []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %q not found under registered roots %v; register a root with 'refcast roots add'", e.Name, e.Roots)
}

// New builds the project-reference graph. Discovery edges search the roots
// persisted in store, in registration order, taking the first root that
// contains <name>/.git.
func New(store *config.Store) *kind.Graph {
	g := kind.New()

	registerKinds(g)
	registerEdges(g, store)

	return g
}

// registerKinds declares detection predicates. Order is detection priority:
// bare names before stubs, URLs before local folders. Predicates are
// syntactic except the folder kinds, which stat the path.
func registerKinds(g *kind.Graph) {
	g.RegisterKind(ProjName, func(v any) bool {
		s, ok := v.(string)
		return ok && s != "" &&
			!strings.Contains(s, "/") &&
			!strings.ContainsRune(s, os.PathSeparator) &&
			!strings.HasPrefix(s, "http") &&
			!strings.HasPrefix(s, "git@")
	})

	g.RegisterKind(GithubStub, func(v any) bool {
		s, ok := v.(string)
		return ok && strings.Count(s, "/") == 1 &&
			!strings.HasPrefix(s, "http") &&
			!strings.HasPrefix(s, "git@")
	})

	g.RegisterKind(GithubHTTPSURL, func(v any) bool {
		s, ok := v.(string)
		return ok && (strings.HasPrefix(s, "https://github.com/") ||
			strings.HasPrefix(s, "https://www.github.com/"))
	})

	g.RegisterKind(GithubSSHURL, func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, "git@github.com:")
	})

	isRepoFolder := func(v any) bool {
		s, ok := v.(string)
		return ok && gitio.IsRepo(s)
	}
	g.RegisterKind(LocalGitFolder, isRepoFolder)
	g.RegisterKind(LocalFolder, isRepoFolder)

	g.RegisterKind(URLComponents, func(v any) bool {
		_, ok := v.(hub.Components)
		return ok
	})
}

func registerEdges(g *kind.Graph, store *config.Store) {
	g.RegisterEdge(ProjName, LocalFolder, func(v any, _ kind.Context) (any, error) {
		return discover(store, v.(string))
	})

	g.RegisterEdge(LocalFolder, ProjName, func(v any, _ kind.Context) (any, error) {
		return filepath.Base(v.(string)), nil
	})

	// Reverse lookup: the folder's origin remote names the GitHub repo.
	g.RegisterEdge(LocalFolder, GithubStub, func(v any, _ kind.Context) (any, error) {
		remote, err := gitio.OriginURL(v.(string))
		if err != nil {
			return nil, err
		}
		c, err := hub.ParseURL(remote)
		if err != nil {
			return nil, fmt.Errorf("origin remote of %s: %w", v, err)
		}
		return c.Stub(), nil
	})

	g.RegisterEdge(GithubStub, LocalFolder, func(v any, _ kind.Context) (any, error) {
		c, err := hub.ParseStub(v.(string))
		if err != nil {
			return nil, err
		}
		return discover(store, c.Repo)
	})

	g.RegisterEdge(GithubStub, URLComponents, func(v any, _ kind.Context) (any, error) {
		return hub.ParseStub(v.(string))
	})

	g.RegisterEdge(GithubHTTPSURL, URLComponents, func(v any, _ kind.Context) (any, error) {
		return hub.ParseURL(v.(string))
	})

	g.RegisterEdge(GithubSSHURL, URLComponents, func(v any, _ kind.Context) (any, error) {
		return hub.ParseURL(v.(string))
	})

	g.RegisterEdge(URLComponents, GithubStub, func(v any, _ kind.Context) (any, error) {
		return v.(hub.Components).Stub(), nil
	})

	g.RegisterEdge(URLComponents, GithubHTTPSURL, func(v any, _ kind.Context) (any, error) {
		return v.(hub.Components).HTTPSURL(), nil
	})

	g.RegisterEdge(URLComponents, GithubSSHURL, func(v any, _ kind.Context) (any, error) {
		return v.(hub.Components).SSHURL(), nil
	})

	// The two folder kinds are the same representation.
	identity := func(v any, _ kind.Context) (any, error) { return v, nil }
	g.RegisterEdge(LocalFolder, LocalGitFolder, identity)
	g.RegisterEdge(LocalGitFolder, LocalFolder, identity)
}

// discover scans the registered roots, in order, for a directory named
// after the project that carries a .git marker. First match wins.
func discover(store *config.Store, name string) (string, error) {
	roots, err := store.Roots()
	if err != nil {
		return "", err
	}
	for _, root := range roots {
		candidate := filepath.Join(root, name)
		if gitio.IsRepo(candidate) {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Name: name, Roots: roots}
}
