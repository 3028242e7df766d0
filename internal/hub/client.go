package hub

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"

	"refcast/internal/cachestore"
)

// RepoInfo is the subset of repository metadata the CLI surfaces.
type RepoInfo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Watchers    int    `json:"watchers_count"`
	HTMLURL     string `json:"html_url"`
	Pushed      string `json:"pushed_at"`
}

// IssueInfo is the subset of issue metadata the CLI surfaces.
type IssueInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   string `json:"user"`
	URL    string `json:"html_url"`
}

// Client fetches repository metadata. The core never calls GitHub itself;
// this is the remote collaborator behind an interface so tests and callers
// can substitute their own.
type Client interface {
	GetRepoInfo(ctx context.Context, stub string) (*RepoInfo, error)
	ListIssues(ctx context.Context, stub string) ([]IssueInfo, error)
}

// GitHub is the live client on the GitHub REST API.
type GitHub struct {
	gh *github.Client
}

// NewGitHub creates a client. token may be empty for anonymous access
// (subject to much lower rate limits).
func NewGitHub(token string) *GitHub {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &GitHub{gh: c}
}

func (g *GitHub) GetRepoInfo(ctx context.Context, stub string) (*RepoInfo, error) {
	c, err := ParseStub(stub)
	if err != nil {
		return nil, err
	}
	repo, _, err := g.gh.Repositories.Get(ctx, c.Owner, c.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", stub, err)
	}
	info := &RepoInfo{
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Watchers:    repo.GetSubscribersCount(),
		HTMLURL:     repo.GetHTMLURL(),
	}
	if t := repo.GetPushedAt(); !t.IsZero() {
		info.Pushed = t.Format("2006-01-02")
	}
	return info, nil
}

// ListIssues returns the repository's open issues, pull requests excluded.
func (g *GitHub) ListIssues(ctx context.Context, stub string) ([]IssueInfo, error) {
	c, err := ParseStub(stub)
	if err != nil {
		return nil, err
	}
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 50},
	}
	issues, _, err := g.gh.Issues.ListByRepo(ctx, c.Owner, c.Repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing issues of %s: %w", stub, err)
	}
	var infos []IssueInfo
	for _, is := range issues {
		if is.IsPullRequest() {
			continue
		}
		infos = append(infos, IssueInfo{
			Number: is.GetNumber(),
			Title:  is.GetTitle(),
			State:  is.GetState(),
			User:   is.GetUser().GetLogin(),
			URL:    is.GetHTMLURL(),
		})
	}
	return infos, nil
}

// Cached is a read-through wrapper over a Client: hits are served from the
// store and never expire. Staleness is the caller's concern; delete the key
// or clear the store for fresh data.
type Cached struct {
	inner Client
	store *cachestore.Store
}

// NewCached wraps a client with a cache store.
func NewCached(inner Client, store *cachestore.Store) *Cached {
	return &Cached{inner: inner, store: store}
}

func repoInfoKey(stub string) string { return "repo_info/" + stub }
func issuesKey(stub string) string   { return "issues/" + stub }

func (c *Cached) GetRepoInfo(ctx context.Context, stub string) (*RepoInfo, error) {
	var info RepoInfo
	hit, err := c.store.Get(repoInfoKey(stub), &info)
	if err != nil {
		return nil, err
	}
	if hit {
		return &info, nil
	}
	fresh, err := c.inner.GetRepoInfo(ctx, stub)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(repoInfoKey(stub), fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (c *Cached) ListIssues(ctx context.Context, stub string) ([]IssueInfo, error) {
	var infos []IssueInfo
	hit, err := c.store.Get(issuesKey(stub), &infos)
	if err != nil {
		return nil, err
	}
	if hit {
		return infos, nil
	}
	fresh, err := c.inner.ListIssues(ctx, stub)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(issuesKey(stub), fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}
