package ios

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/xmldoc"
)

const (
	KeyBundleVersion            = "CFBundleVersion"
	KeyBundleShortVersionString = "CFBundleShortVersionString"
	KeyBundleIdentifier         = "CFBundleIdentifier"

	errMsgPlistMissing = "the Info.plist file provided must exist"
)

// SetInfoPlistBundleVersion sets CFBundleVersion to the version as written.
// Unlike the other editors a missing key is an error.
func SetInfoPlistBundleVersion(h *host.Host, plistPath string, version *host.Version) error {
	found, err := setPlistValue(h, plistPath, KeyBundleVersion, version.Original())
	if err != nil {
		return err
	}
	if !found {
		return host.Errorf(host.ErrorKeyNotFound, "%s not found in %s", KeyBundleVersion, plistPath)
	}
	return nil
}

// SetInfoPlistShortVersionString sets CFBundleShortVersionString to
// "major.minor.patch", dropping any revision and pre-release suffix. The
// full triple is written, not the third component alone as older Cake build
// scripts expect. It returns false, leaving the file untouched, when the key
// is absent.
func SetInfoPlistShortVersionString(h *host.Host, plistPath string, version *host.Version) (bool, error) {
	short := fmt.Sprintf("%d.%d.%d", version.Major(), version.Minor(), version.Patch())
	return setPlistValue(h, plistPath, KeyBundleShortVersionString, short)
}

// SetInfoPlistBundleIdentifier sets CFBundleIdentifier. It returns false,
// leaving the file untouched, when the key is absent.
func SetInfoPlistBundleIdentifier(h *host.Host, plistPath, bundleIdentifier string) (bool, error) {
	return setPlistValue(h, plistPath, KeyBundleIdentifier, bundleIdentifier)
}

// setPlistValue finds <key>name</key> under plist/dict and replaces the text
// of the element that follows it.
func setPlistValue(h *host.Host, plistPath, key, value string) (bool, error) {
	path := h.Abs(plistPath)
	doc, err := xmldoc.Load(h, path, errMsgPlistMissing)
	if err != nil {
		return false, err
	}

	valueElem := findValue(doc, key)
	if valueElem == nil {
		h.Logger.WithField("key", key).WithField("path", path).Debug("Info.plist key not found")
		return false, nil
	}

	valueElem.SetText(value)
	if err := xmldoc.Save(h, path, doc); err != nil {
		return false, err
	}

	h.Logger.WithField("key", key).WithField("value", value).WithField("path", path).Debug("Updated Info.plist")
	return true, nil
}

func findValue(doc *etree.Document, key string) *etree.Element {
	keyElem := doc.FindElement(fmt.Sprintf("plist/dict/key[text()='%s']", key))
	if keyElem == nil {
		return nil
	}
	return xmldoc.NextSiblingElement(keyElem)
}
