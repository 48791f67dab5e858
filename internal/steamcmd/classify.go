package steamcmd

import (
	"fmt"
	"strings"
)

// Classified failure reasons recorded on failed jobs.
const (
	ReasonAuthFailed     = "authentication failed"
	ReasonNotEntitled    = "not entitled"
	ReasonGuardRequired  = "guard code required"
	ReasonRateLimited    = "rate limited, retry later"
	ReasonCouldNotStart  = "could not start"
	ReasonStartupTimeout = "startup timeout"
	ReasonUnconfirmed    = "unconfirmed completion"
)

// failureTable maps case-sensitive output substrings to reasons. Order
// matters: the first match wins.
var failureTable = []struct {
	substring string
	reason    string
}{
	{"Invalid Password", ReasonAuthFailed},
	{"Invalid Username", ReasonAuthFailed},
	{"Login Failure", ReasonAuthFailed},
	{"No subscription", ReasonNotEntitled},
	{"Need two-factor code", ReasonGuardRequired},
	{"Steam Guard", ReasonGuardRequired},
	{"Rate Limited", ReasonRateLimited},
	{"rate limited", ReasonRateLimited},
}

func matchFailureReason(output string) (string, bool) {
	for _, entry := range failureTable {
		if strings.Contains(output, entry.substring) {
			return entry.reason, true
		}
	}
	return "", false
}

// Classify maps accumulated process output and the exit code to a short
// failure reason. It is only consulted for unsuccessful runs.
func Classify(output string, exitCode int) string {
	if reason, ok := matchFailureReason(output); ok {
		return reason
	}
	return fmt.Sprintf("unspecified failure (exit code %d)", exitCode)
}
