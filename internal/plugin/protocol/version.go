// Package protocol checks exporter plugins against the host's plugin API version.
package protocol

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, version)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 as v sorts before, equal to or after o.
func (v Version) Compare(o Version) int {
	return cmp.Or(cmp.Compare(v.Major, o.Major), cmp.Compare(v.Minor, o.Minor), cmp.Compare(v.Patch, o.Patch))
}

// Current returns the host's protocol version.
func Current() Version {
	return mustParse(plugin.ProtocolVersion)
}

// CheckCompatible reports whether a plugin speaking pluginVersion can be used.
// The major version must match; anything at or above MinCompatibleVersion
// within it is accepted, including newer minor and patch releases.
func CheckCompatible(pluginVersion string) error {
	v, err := Parse(pluginVersion)
	if err != nil {
		return fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := Current()
	if v.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, swatch requires %d.x.x", v, current.Major)
	}
	if minimum := mustParse(plugin.MinCompatibleVersion); v.Compare(minimum) < 0 {
		return fmt.Errorf("plugin version %s is too old, minimum required is %s", v, minimum)
	}
	return nil
}

func mustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("invalid protocol version constant: %v", err))
	}
	return v
}
