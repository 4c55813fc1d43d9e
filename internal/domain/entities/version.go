// Package entities holds the domain types shared across the checker.
package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a string is not a dotted numeric version
var ErrInvalidVersion = errors.New("invalid version")

// Version is a dotted sequence of non-negative integers such as "2.4.58"
type Version struct {
	raw   string
	parts []int
}

// ParseVersion parses a dotted numeric version string
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalidVersion)
	}

	fields := strings.Split(s, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" || strings.TrimLeft(f, "0123456789") != "" {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		parts = append(parts, n)
	}

	return Version{raw: s, parts: parts}, nil
}

// MustParseVersion is like ParseVersion but panics on error (tests and constants only)
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version exactly as it was parsed
func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1. Missing components count as zero.
func (v Version) Compare(other Version) int {
	maxLen := len(v.parts)
	if len(other.parts) > maxLen {
		maxLen = len(other.parts)
	}

	for i := 0; i < maxLen; i++ {
		var a, b int
		if i < len(v.parts) {
			a = v.parts[i]
		}
		if i < len(other.parts) {
			b = other.parts[i]
		}

		if a > b {
			return 1
		} else if a < b {
			return -1
		}
	}

	return 0
}

// Less reports whether v orders before other
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Branch returns the "major.minor" release line of the version
func (v Version) Branch() string {
	switch len(v.parts) {
	case 0:
		return ""
	case 1:
		return strconv.Itoa(v.parts[0])
	default:
		return strconv.Itoa(v.parts[0]) + "." + strconv.Itoa(v.parts[1])
	}
}

// TrimLastComponent drops the final dot-component ("8.1.27" -> "8.1").
// A string without dots is returned unchanged.
func TrimLastComponent(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[:i]
	}
	return s
}

// MaxVersion parses every candidate and returns the highest one, or "" when
// candidates is empty. Of equally ordered candidates the last one wins.
func MaxVersion(candidates []string) (string, error) {
	var best Version
	found := false
	for _, c := range candidates {
		v, err := ParseVersion(c)
		if err != nil {
			return "", err
		}
		if !found || !v.Less(best) {
			best = v
			found = true
		}
	}

	if !found {
		return "", nil
	}
	return best.String(), nil
}

// CompareVersions parses both strings and compares them
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}
