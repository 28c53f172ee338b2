package reconciler

import (
	"fmt"
	"io"

	"github.com/kcutil/otpsweep/directory"
)

type Outcome string

const (
	OutcomeApplied      Outcome = "applied"
	OutcomeSkipped      Outcome = "already-present"
	OutcomeNotFound     Outcome = "not-found"
	OutcomeFetchFailed  Outcome = "fetch-failed"
	OutcomeUpdateFailed Outcome = "update-failed"
)

type Failure struct {
	User    directory.UserRef
	Outcome Outcome
	Err     error
}

// Summary is the sole observable result of a run besides the account
// mutations themselves.
type Summary struct {
	Targeted int
	Applied  int
	Skipped  int
	Failures []Failure
}

func (s *Summary) Failed() int {
	return len(s.Failures)
}

func (s *Summary) record(user directory.UserRef, outcome Outcome, err error) {
	switch outcome {
	case OutcomeApplied:
		s.Applied++
	case OutcomeSkipped:
		s.Skipped++
	default:
		s.Failures = append(s.Failures, Failure{User: user, Outcome: outcome, Err: err})
	}
}

// WriteReport prints the final per-run accounting.
func (s *Summary) WriteReport(w io.Writer, action string) {
	_, _ = fmt.Fprintf(
		w,
		"sweep complete: %d targeted, %d applied, %d already compliant, %d failed\n",
		s.Targeted, s.Applied, s.Skipped, s.Failed(),
	)
	for _, failure := range s.Failures {
		_, _ = fmt.Fprintf(w, "  failed: user %s: %s: %v\n", failure.User.Display, failure.Outcome, failure.Err)
	}
	if s.Applied > 0 {
		_, _ = fmt.Fprintf(w, "affected users must complete %s on their next sign-in\n", action)
	}
}
