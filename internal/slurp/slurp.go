// Package slurp aggregates a project folder's text files into a single
// markdown document, one fenced section per file. Useful for feeding a
// whole repository to tools that want one blob of text.
package slurp

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zstd"
)

// DefaultExcludes are skipped unless overridden: VCS internals, dependency
// trees and build output.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"dist/**",
	"build/**",
	"**/*.lock",
}

// Options controls which files a slurp includes.
type Options struct {
	// Include globs (doublestar syntax, relative to the root). Empty means
	// every file.
	Include []string
	// Exclude globs. Defaults to DefaultExcludes when nil.
	Exclude []string
	// MaxFileSize skips larger files. Zero means 1 MiB.
	MaxFileSize int64
}

const defaultMaxFileSize = 1 << 20

// Slurp walks root and renders the matching text files as one markdown
// document. Files are emitted in path order; binary files are skipped.
func Slurp(root string, opts Options) (string, error) {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExcludes
	}
	maxSize := opts.MaxFileSize
	if maxSize == 0 {
		maxSize = defaultMaxFileSize
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(exclude, rel) {
			return nil
		}
		if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", filepath.Base(root))
	for _, rel := range paths {
		full := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			return "", err
		}
		if info.Size() > maxSize {
			continue
		}
		content, err := os.ReadFile(full)
		if err != nil {
			return "", err
		}
		if isBinary(content) {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n```%s\n%s\n```\n\n", rel, langHint(rel), strings.TrimRight(string(content), "\n"))
	}
	return b.String(), nil
}

// WriteArchive writes text to path, zstd-compressed when the path ends in
// .zst, plain otherwise.
func WriteArchive(path, text string) error {
	if !strings.HasSuffix(path, ".zst") {
		return os.WriteFile(path, []byte(text), 0644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if _, err := enc.Write([]byte(text)); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadArchive reads a file written by WriteArchive.
func ReadArchive(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(path, ".zst") {
		return string(data), nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer dec.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(dec); err != nil {
		return "", err
	}
	return out.String(), nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// isBinary uses the NUL-byte heuristic on the first KiB.
func isBinary(content []byte) bool {
	n := len(content)
	if n > 1024 {
		n = 1024
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}

func langHint(rel string) string {
	switch strings.TrimPrefix(filepath.Ext(rel), ".") {
	case "go":
		return "go"
	case "py":
		return "python"
	case "js", "mjs":
		return "js"
	case "ts", "tsx":
		return "ts"
	case "md":
		return "markdown"
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	case "sh":
		return "sh"
	default:
		return ""
	}
}
