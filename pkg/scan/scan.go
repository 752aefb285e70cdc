// Package scan collects the files eligible for an upload run.
//
// Scanning walks the argument paths (files or directories), applies the
// extension include/exclude filter, and produces a deterministic,
// lexically ordered file list annotated with each file's depth relative
// to its root argument. The routing engine itself never touches the
// filesystem; this package is its upstream collaborator.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one eligible file discovered by a scan.
type Entry struct {
	Path  string      // path as discovered
	Info  fs.FileInfo // metadata at scan time
	Depth int         // directory depth relative to the root argument
}

// Options configures a scan.
type Options struct {
	// Recursive walks into subdirectories of directory arguments.
	Recursive bool
	// Include, when non-empty, keeps only files with one of these
	// extensions. Entries are matched case-insensitively, with or
	// without a leading dot.
	Include []string
	// Exclude drops files with one of these extensions. Exclusion wins
	// over inclusion.
	Exclude []string
}

// Scan walks the given paths and returns the eligible files in lexical
// order. File arguments are always eligible subject to the extension
// filter; directory arguments are listed (or walked, with Recursive).
// Hidden entries (dot-prefixed) inside directories are skipped.
func Scan(paths []string, opts Options) ([]Entry, error) {
	filter := newExtFilter(opts.Include, opts.Exclude)

	var entries []Entry
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}

		if !info.IsDir() {
			if filter.keep(root) {
				entries = append(entries, Entry{Path: root, Info: info, Depth: 0})
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if !opts.Recursive && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !filter.keep(path) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			entries = append(entries, Entry{
				Path:  path,
				Info:  fi,
				Depth: pathDepth(root, path),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

// pathDepth returns the number of directories between root and path.
// A file directly inside root has depth 0.
func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator))
}

// extFilter implements the include/exclude extension predicate.
// Extensions are normalized to lowercase without a leading dot.
type extFilter struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

func newExtFilter(include, exclude []string) extFilter {
	return extFilter{
		include: extSet(include),
		exclude: extSet(exclude),
	}
}

func extSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(e, "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// keep reports whether a path passes the filter. Exclusion wins over
// inclusion; an empty include set keeps everything not excluded.
func (f extFilter) keep(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, banned := f.exclude[ext]; banned {
		return false
	}
	if f.include == nil {
		return true
	}
	_, ok := f.include[ext]
	return ok
}
