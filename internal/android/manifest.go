package android

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/xmldoc"
)

const (
	AndroidNamespace = "http://schemas.android.com/apk/res/android"

	attrVersionName = "versionName"
	attrVersionCode = "versionCode"

	errMsgManifestMissing = "the AndroidManifest file provided must exist"
)

// SetManifestVersionNameAndNumber sets android:versionName and
// android:versionCode on the manifest root.
func SetManifestVersionNameAndNumber(h *host.Host, manifestPath string, version *host.Version, versionNumber int) error {
	return editManifest(h, manifestPath, map[string]string{
		attrVersionName: version.Original(),
		attrVersionCode: strconv.Itoa(versionNumber),
	})
}

// SetManifestVersionName sets android:versionName on the manifest root.
func SetManifestVersionName(h *host.Host, manifestPath string, version *host.Version) error {
	return editManifest(h, manifestPath, map[string]string{attrVersionName: version.Original()})
}

// SetManifestVersionNumber sets android:versionCode on the manifest root.
func SetManifestVersionNumber(h *host.Host, manifestPath string, versionNumber int) error {
	return editManifest(h, manifestPath, map[string]string{attrVersionCode: strconv.Itoa(versionNumber)})
}

func editManifest(h *host.Host, manifestPath string, attrs map[string]string) error {
	path := h.Abs(manifestPath)
	doc, err := xmldoc.Load(h, path, errMsgManifestMissing)
	if err != nil {
		return err
	}

	root := doc.Root()
	if root == nil {
		return host.Errorf(host.ErrorInvalidArgument, "%s has no root element", path)
	}

	prefix := namespacePrefix(root, AndroidNamespace)
	// Write in a fixed order so output is stable.
	for _, name := range []string{attrVersionName, attrVersionCode} {
		value, ok := attrs[name]
		if !ok {
			continue
		}
		root.CreateAttr(prefix+":"+name, value)
		h.Logger.WithField("attribute", prefix+":"+name).WithField("value", value).WithField("path", path).Debug("Updated AndroidManifest")
	}

	return xmldoc.Save(h, path, doc)
}

// namespacePrefix returns the prefix bound to ns on root, declaring
// xmlns:android when the namespace is not bound yet.
func namespacePrefix(root *etree.Element, ns string) string {
	for _, a := range root.Attr {
		if a.Space == "xmlns" && a.Value == ns {
			return a.Key
		}
	}
	root.CreateAttr("xmlns:android", ns)
	return "android"
}
