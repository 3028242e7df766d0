// Package main provides the refcast CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"refcast/internal/cachestore"
	"refcast/internal/config"
	"refcast/internal/hub"
	"refcast/internal/kind"
	"refcast/internal/project"
)

// Version is the current refcast CLI version.
var Version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:   "refcast",
	Short: "Refcast - normalize project references between representations",
	Long: `Refcast converts any reference to a software project (name, org/repo
stub, HTTPS/SSH URL, local folder) into whichever representation you need,
by routing through a typed transformation graph.`,
	Version: Version,
}

// configDir resolves the config directory, honoring REFCAST_CONFIG_DIR so
// tests and scripts can isolate state.
func configDir() (string, error) {
	if dir := os.Getenv("REFCAST_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	return config.DefaultDir()
}

func openGraph() (*kind.Graph, *config.Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, nil, err
	}
	store, err := config.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	return project.New(store), store, nil
}

func printValue(cmd *cobra.Command, v any) error {
	switch v := v.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	default:
		enc, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	}
}

var (
	resolveTo      string
	resolveFrom    string
	resolveNoCache bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <ref>",
	Short: "Convert a project reference to another kind",
	Long: `Convert a project reference to another kind.

The source kind is detected automatically unless --from is given.

Examples:
  refcast resolve dol --to local_proj_folder
  refcast resolve i2mint/dol --to github_https_url
  refcast resolve git@github.com:i2mint/dol.git --to github_stub`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := openGraph()
		if err != nil {
			return err
		}
		result, err := g.NormalizeWith(args[0], kind.Kind(resolveTo), kind.NormalizeOptions{
			From:        kind.Kind(resolveFrom),
			BypassCache: resolveNoCache,
		})
		if err != nil {
			return err
		}
		return printValue(cmd, result)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <from_kind> <to_kind>",
	Short: "Show the transformation chain between two kinds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := openGraph()
		if err != nil {
			return err
		}
		path, err := g.FindPath(kind.Kind(args[0]), kind.Kind(args[1]))
		if err != nil {
			return err
		}
		if len(path) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(identity)")
			return nil
		}
		for _, e := range path {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", e.From, e.To)
		}
		return nil
	},
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List registered kinds in detection-priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := openGraph()
		if err != nil {
			return err
		}
		for _, k := range g.Kinds() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Manage project root folders searched by discovery",
}

var rootsAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a project root folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openGraph()
		if err != nil {
			return err
		}
		return store.AddRoot(args[0])
	},
}

var rootsRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Unregister a project root folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openGraph()
		if err != nil {
			return err
		}
		return store.RemoveRoot(args[0])
	},
}

var rootsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered project roots in search order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openGraph()
		if err != nil {
			return err
		}
		roots, err := store.Roots()
		if err != nil {
			return err
		}
		for _, r := range roots {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

// openHubClient normalizes a reference to an org/repo stub and builds the
// cached GitHub client around the on-disk store. With fresh set, the cache
// keys under the given prefix are dropped first so the next lookup refetches.
func openHubClient(ref, keyPrefix string, fresh bool) (hub.Client, *cachestore.Store, string, error) {
	g, _, err := openGraph()
	if err != nil {
		return nil, nil, "", err
	}
	stub, err := g.Normalize(ref, project.GithubStub)
	if err != nil {
		return nil, nil, "", err
	}

	dir, err := configDir()
	if err != nil {
		return nil, nil, "", err
	}
	store, err := cachestore.Open(filepath.Join(dir, "cache"))
	if err != nil {
		return nil, nil, "", err
	}

	if fresh {
		if err := store.Delete(keyPrefix + stub.(string)); err != nil {
			store.Close()
			return nil, nil, "", fmt.Errorf("dropping cached entry for %s: %w", stub, err)
		}
	}
	client := hub.NewCached(hub.NewGitHub(os.Getenv("GITHUB_TOKEN")), store)
	return client, store, stub.(string), nil
}

var infoCmd = &cobra.Command{
	Use:   "info <ref>",
	Short: "Show GitHub repository info for any project reference",
	Long: `Show GitHub repository info for any project reference.

The reference is normalized to an org/repo stub first, so names, URLs and
local folders all work. Responses are cached on disk; pass --fresh to
bypass the cache. Set GITHUB_TOKEN for authenticated requests.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("fresh")
		client, store, stub, err := openHubClient(args[0], "repo_info/", fresh)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		info, err := client.GetRepoInfo(ctx, stub)
		if err != nil {
			return err
		}
		return printValue(cmd, info)
	},
}

var issuesCmd = &cobra.Command{
	Use:   "issues <ref>",
	Short: "List open GitHub issues for any project reference",
	Long: `List open GitHub issues for any project reference.

The reference is normalized to an org/repo stub first; pull requests are
excluded. Responses are cached on disk; pass --fresh to bypass the cache.
Set GITHUB_TOKEN for authenticated requests.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("fresh")
		client, store, stub, err := openHubClient(args[0], "issues/", fresh)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		issues, err := client.ListIssues(ctx, stub)
		if err != nil {
			return err
		}
		for _, is := range issues {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d\t%s\t(%s)\n", is.Number, is.Title, is.User)
		}
		return nil
	},
}

var slurpCmd = &cobra.Command{
	Use:   "slurp <ref>",
	Short: "Aggregate a project's text files into one markdown document",
	Long: `Aggregate a project's text files into one markdown document.

The reference is normalized to a local folder first, so a bare name or a
GitHub stub works as long as the project exists under a registered root.

Examples:
  refcast slurp dol
  refcast slurp i2mint/dol -o dol.md
  refcast slurp . -o dol.md.zst --include '**/*.go'`,
	Args: cobra.ExactArgs(1),
	RunE: runSlurp,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveTo, "to", string(project.LocalFolder), "target kind")
	resolveCmd.Flags().StringVar(&resolveFrom, "from", "", "source kind (skip detection)")
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "bypass the result cache")
	infoCmd.Flags().Bool("fresh", false, "bypass the on-disk response cache")
	issuesCmd.Flags().Bool("fresh", false, "bypass the on-disk response cache")

	rootsCmd.AddCommand(rootsAddCmd, rootsRemoveCmd, rootsListCmd)
	rootCmd.AddCommand(resolveCmd, pathCmd, kindsCmd, rootsCmd, infoCmd, issuesCmd, slurpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
