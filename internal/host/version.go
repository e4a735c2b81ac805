package host

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var dottedVersion = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Version is an app version as written in manifests: one to four dotted
// numbers ("1.0.0.42"), or a semantic version with pre-release or build
// metadata ("2.3.4-beta.1").
type Version struct {
	core     *semver.Version
	revision uint64
	original string
}

// ParseVersion parses s. A fourth numeric component is kept as the revision.
func ParseVersion(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if dottedVersion.MatchString(s) {
		parts := strings.Split(s, ".")
		if len(parts) == 4 {
			core, err := semver.NewVersion(strings.Join(parts[:3], "."))
			if err != nil {
				return nil, err
			}
			revision, err := strconv.ParseUint(parts[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid revision %q: %w", parts[3], err)
			}
			return &Version{core: core, revision: revision, original: s}, nil
		}
	}

	core, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{core: core, original: s}, nil
}

// MustParseVersion is ParseVersion that panics on error.
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Version) Major() uint64    { return v.core.Major() }
func (v *Version) Minor() uint64    { return v.core.Minor() }
func (v *Version) Patch() uint64    { return v.core.Patch() }
func (v *Version) Revision() uint64 { return v.revision }

// Original returns the version exactly as it was parsed.
func (v *Version) Original() string { return v.original }

func (v *Version) String() string { return v.original }
