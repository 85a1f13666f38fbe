// Package release implements the project's release conventions: semantic
// version tags of the form v<major>.<minor>.<patch>, a TOML manifest whose
// version must match the tag being cut, and the git-URL install syntax used
// to consume a tagged build.
package release

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
)

var tagRe = regexp.MustCompile(`^v(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// Version is a parsed release tag.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseTag parses a release tag of the form v<major>.<minor>.<patch>.
// Leading zeros and pre-release or build suffixes are rejected.
func ParseTag(tag string) (Version, error) {
	m := tagRe.FindStringSubmatch(tag)
	if m == nil {
		return Version{}, fmt.Errorf("invalid release tag %q: want v<major>.<minor>.<patch>", tag)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// Tag renders the version as a release tag.
func (v Version) Tag() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	pairs := [][2]int{{v.Major, o.Major}, {v.Minor, o.Minor}, {v.Patch, o.Patch}}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// Manifest is the project metadata file (nespan.toml) that records the
// current version. It must be updated before tagging a release.
type Manifest struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// ReadManifest loads the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("manifest %s has no version field", path)
	}
	return &m, nil
}

// CheckTag verifies that tag is well-formed and matches the manifest
// version, the precondition for cutting a release: the CI build produced
// from the tag push must carry the same version the manifest records.
func (m *Manifest) CheckTag(tag string) error {
	proposed, err := ParseTag(tag)
	if err != nil {
		return err
	}
	current, err := ParseTag(m.Version)
	if err != nil {
		return fmt.Errorf("manifest version: %w", err)
	}
	if proposed.Compare(current) != 0 {
		return fmt.Errorf("tag %s does not match manifest version %s: update the manifest before tagging", tag, m.Version)
	}
	return nil
}

// InstallURL renders the package-manager install URL for a tagged revision:
// git+https://github.com/<org>/<repo>.git@<tag>
func InstallURL(org, repo, tag string) (string, error) {
	if _, err := ParseTag(tag); err != nil {
		return "", err
	}
	if org == "" || repo == "" {
		return "", fmt.Errorf("org and repo must be non-empty")
	}
	return fmt.Sprintf("git+https://github.com/%s/%s.git@%s", org, repo, tag), nil
}
