// Package artifact picks the output file a build step produced.
package artifact

import (
	"fmt"
	"time"

	"github.com/sammcj/xamarin-devtools/internal/host"
)

// Query selects the most recently modified file under Root matching
// Pattern. Root is taken literally; only Pattern is glob syntax.
type Query struct {
	Root    string
	Pattern string
}

// Newest returns the newest match. found is false when nothing matches;
// that is not an error.
func (q Query) Newest(h *host.Host) (path string, found bool, err error) {
	matches, err := h.Globber.Glob(q.Root, q.Pattern)
	if err != nil {
		return "", false, fmt.Errorf("failed to glob %q under %s: %w", q.Pattern, q.Root, err)
	}

	var newest time.Time
	for _, m := range matches {
		info, err := h.FS.Stat(m)
		if err != nil {
			h.Logger.WithError(err).WithField("path", m).Debug("Skipping unreadable artifact candidate")
			continue
		}
		mod := info.ModTime()
		// Equal timestamps keep the lexically first path.
		if !found || mod.After(newest) {
			path, newest, found = m, mod, true
		}
	}
	return path, found, nil
}
