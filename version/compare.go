// Package version compares semantic versions and checks the player's version
// against the oldest one vidkeys can drive.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// MinMPV is the oldest mpv release whose IPC has every command vidkeys sends.
const MinMPV = "0.33.0"

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	type version struct {
		major, minor, patch int
	}

	parse := func(s string) (version, error) {
		var v version
		_, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v.major, &v.minor, &v.patch)
		return v, err
	}

	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

var mpvVersion = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseMPV extracts the release from an mpv-version string such as
// "mpv 0.36.0" or "mpv v0.37.0-476-g7d5a2a1". Patch defaults to 0.
func ParseMPV(reported string) (string, error) {
	m := mpvVersion.FindStringSubmatch(reported)
	if m == nil {
		return "", fmt.Errorf("unrecognized mpv version %q", reported)
	}

	return fmt.Sprintf("%s.%s.%s", m[1], m[2], lo.Ternary(m[3] == "", "0", m[3])), nil
}

// SupportsMPV reports whether the reported mpv version is at least MinMPV.
// Development builds that carry no release number are assumed to be recent.
func SupportsMPV(reported string) (bool, error) {
	if strings.Contains(reported, "UNKNOWN") || strings.HasPrefix(strings.TrimPrefix(reported, "mpv "), "git-") {
		return true, nil
	}

	release, err := ParseMPV(reported)
	if err != nil {
		return false, err
	}

	cmp, err := Compare(release, MinMPV)
	if err != nil {
		return false, err
	}

	return cmp >= 0, nil
}
