package host

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Globber expands a glob pattern under a directory into the matching file
// paths.
type Globber interface {
	Glob(root, pattern string) ([]string, error)
}

// FSGlobber globs over an afero file system and supports ** segments.
type FSGlobber struct {
	FS afero.Fs
}

// Glob returns the regular files under root matching pattern, sorted. root
// is a literal directory and is never parsed as pattern syntax; pattern is
// slash-separated and relative to root.
func (g FSGlobber) Glob(root, pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(g.FS, root))
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}
