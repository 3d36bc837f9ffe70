// scanner/discover.go
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/alexferrari88/minigrep/utils"
)

// Discoverer resolves a recursive target into the files it names.
// It is driven by a single goroutine and is not safe for concurrent use.
type Discoverer struct {
	Root             string   // Walk root; "." (the working directory) when empty
	RespectGitignore bool     // Skip paths matched by .gitignore files under Root
	ExcludeDirs      []string // Directory names pruned from the walk
	Logger           Logger

	gitIgnoreCache map[string]gitignore.IgnoreParser // Key: directory containing .gitignore
}

// GlobPattern returns the root-relative pattern "**/<filename>" used in
// recursive mode. A malformed pattern is reported with ErrBadGlob.
func GlobPattern(filename string) (string, error) {
	name := strings.TrimPrefix(filepath.ToSlash(filename), "./")
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrBadGlob)
	}
	pattern := "**/" + name
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("%w: %q", ErrBadGlob, pattern)
	}
	return pattern, nil
}

func (d *Discoverer) root() string {
	if d.Root == "" {
		return DefaultRoot
	}
	return d.Root
}

func (d *Discoverer) logger() Logger {
	if d.Logger == nil {
		return nopLogger{}
	}
	return d.Logger
}

// Walk calls visit for every file under Root whose root-relative path matches
// pattern, in walk order, as soon as it is found. Access failures are passed
// to fail and the walk carries on past them.
func (d *Discoverer) Walk(pattern string, visit func(path string), fail func(*FileError)) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %q", ErrBadGlob, pattern)
	}
	root := d.root()
	log := d.logger()

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Returning nil skips an unreadable directory but keeps walking its siblings.
			fail(&FileError{Path: path, Op: "walk", Err: err})
			return nil
		}

		rel, relErr := utils.SlashRelative(root, path)
		if relErr != nil {
			fail(&FileError{Path: path, Op: "walk", Err: relErr})
			return nil
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if d.isExcluded(entry.Name()) {
				log.Debugf("Skipping excluded directory: %s", path)
				return filepath.SkipDir
			}
			if d.isIgnored(path, true) {
				log.Debugf("Skipping path due to .gitignore: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		matched, matchErr := doublestar.Match(pattern, rel)
		if matchErr != nil {
			return matchErr
		}
		if !matched {
			return nil
		}
		if d.isIgnored(path, false) {
			log.Debugf("Skipping path due to .gitignore: %s", path)
			return nil
		}
		visit(path)
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("error walking directory %s: %w", root, walkErr)
	}
	return nil
}

func (d *Discoverer) isExcluded(name string) bool {
	for _, excluded := range d.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

// isIgnored checks .gitignore files from the path's directory up to Root.
// Each .gitignore is matched against the path relative to its own directory.
func (d *Discoverer) isIgnored(path string, isDir bool) bool {
	if !d.RespectGitignore {
		return false
	}
	if d.gitIgnoreCache == nil {
		d.gitIgnoreCache = make(map[string]gitignore.IgnoreParser)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		d.logger().Warnf("Error resolving %s for .gitignore checks: %v. Path will be processed.", path, err)
		return false
	}
	absRoot, err := filepath.Abs(d.root())
	if err != nil {
		d.logger().Warnf("Error resolving root %s for .gitignore checks: %v. Path will be processed.", d.root(), err)
		return false
	}

	dir := filepath.Dir(absPath)
	for {
		if !strings.HasPrefix(dir, absRoot) {
			break
		}

		ignorer := d.ignorerFor(dir)
		if rel, relErr := utils.SlashRelative(dir, absPath); relErr == nil {
			if isDir {
				rel += "/"
			}
			if ignorer.MatchesPath(rel) {
				return true
			}
		}

		if dir == absRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false
}

func (d *Discoverer) ignorerFor(dir string) gitignore.IgnoreParser {
	if ignorer, ok := d.gitIgnoreCache[dir]; ok {
		return ignorer
	}

	gitIgnoreFilePath := filepath.Join(dir, ".gitignore")
	var ignorer gitignore.IgnoreParser
	compiled, err := gitignore.CompileIgnoreFile(gitIgnoreFilePath)
	switch {
	case err == nil && compiled != nil:
		ignorer = compiled
	case err != nil && !os.IsNotExist(err):
		d.logger().Warnf("Error compiling .gitignore file %s: %v. It will be skipped.", gitIgnoreFilePath, err)
		fallthrough
	default:
		ignorer = gitignore.CompileIgnoreLines()
	}

	d.gitIgnoreCache[dir] = ignorer
	return ignorer
}
