// Package xmldoc loads and saves the XML documents the editors mutate.
//
// Documents are read fresh on every call and written back in place with a
// plain truncate-and-write. There is no backup or atomic rename, so a crash
// mid-save can leave a partial file.
package xmldoc

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/spf13/afero"
)

// Load parses the file at path. missingMsg is the error message used when
// the file does not exist; the check runs before any parse attempt.
func Load(h *host.Host, path, missingMsg string) (*etree.Document, error) {
	if !h.FileExists(path) {
		return nil, &host.Error{Kind: host.ErrorFileNotFound, Message: missingMsg, Cause: fmt.Errorf("%s", path)}
	}

	data, err := afero.ReadFile(h.FS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Save overwrites path with doc, keeping the file's permissions.
func Save(h *host.Host, path string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialise %s: %w", path, err)
	}

	info, err := h.FS.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := afero.WriteFile(h.FS, path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NextSiblingElement returns the first element after e under the same
// parent, skipping whitespace. It returns nil when the next non-whitespace
// token is not an element or there is none.
func NextSiblingElement(e *etree.Element) *etree.Element {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	for _, tok := range parent.Child[e.Index()+1:] {
		switch t := tok.(type) {
		case *etree.Element:
			return t
		case *etree.CharData:
			if t.IsWhitespace() {
				continue
			}
			return nil
		case *etree.Comment:
			continue
		default:
			return nil
		}
	}
	return nil
}
