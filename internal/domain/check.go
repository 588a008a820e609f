package domain

// Check pairs a human readable failure description with its condition.
type Check struct {
	Message string
	Failed  bool
}

// FirstTrue returns the message of the first failed check in declaration
// order. The order of checks is their priority.
func FirstTrue(checks ...Check) (string, bool) {
	for _, c := range checks {
		if c.Failed {
			return c.Message, true
		}
	}
	return "", false
}
