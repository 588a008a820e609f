package orchestrator

import (
	"fmt"
	"strings"
	"unicode"
)

// forbiddenRefChars can never appear in a git ref name.
const forbiddenRefChars = " ~^:?*[\\"

// ValidateBranchName rejects names git would refuse as a ref. Anything else,
// unicode included, is left for GitHub to resolve. role is the branch's part
// in the comparison, used in errors.
func ValidateBranchName(role, branch string) error {
	switch {
	case branch == "":
		return fmt.Errorf("%s branch name cannot be empty", role)
	case len(branch) > 255:
		return fmt.Errorf("%s branch name too long: %d characters (max: 255)", role, len(branch))
	case strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/"):
		return fmt.Errorf("%s branch %q cannot start or end with slash", role, branch)
	case strings.Contains(branch, ".."):
		return fmt.Errorf("%s branch %q cannot contain consecutive dots", role, branch)
	case strings.HasSuffix(branch, ".lock"):
		return fmt.Errorf("%s branch %q cannot end with .lock", role, branch)
	case strings.HasSuffix(branch, "."):
		return fmt.Errorf("%s branch %q cannot end with a dot", role, branch)
	case strings.Contains(branch, "//"):
		return fmt.Errorf("%s branch %q cannot contain consecutive slashes", role, branch)
	case strings.Contains(branch, "@{") || branch == "@":
		return fmt.Errorf("%s branch %q cannot contain @{ or be @", role, branch)
	case strings.ContainsAny(branch, forbiddenRefChars):
		return fmt.Errorf("%s branch %q contains a character not allowed in git refs", role, branch)
	case strings.ContainsFunc(branch, unicode.IsControl):
		return fmt.Errorf("%s branch %q contains control characters", role, branch)
	}
	return nil
}
