package scoring

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// APIVersionHeader carries the service's API version on every response.
const APIVersionHeader = "X-API-Version"

// canonicalVersion accepts "1", "1.2" and "v1.2.3" forms.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// checkAPIVersion fails when the advertised version is unparsable or has
// a different major version than the one configured. A missing header is
// accepted.
func checkAPIVersion(want, got string) error {
	if want == "" || got == "" {
		return nil
	}
	g := canonicalVersion(got)
	if !semver.IsValid(g) {
		return &ContractError{Reason: fmt.Sprintf("invalid API version %q", got)}
	}
	w := canonicalVersion(want)
	if semver.Major(w) != semver.Major(g) {
		return &ContractError{Reason: fmt.Sprintf("API version %s is not compatible with %s", g, w)}
	}
	return nil
}

func validConfigVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(canonicalVersion(v)) {
		return fmt.Errorf("invalid scorer api_version %q", v)
	}
	return nil
}
