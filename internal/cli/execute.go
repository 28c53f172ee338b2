package cli

import (
	"fmt"
	"strings"

	"github.com/kcutil/otpsweep/internal/cli/common"
)

func Execute(deps common.CommandDependencies) error {
	root := NewRootCommand(deps)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "error: %s\n", strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

// ExitCodeForError is deliberately binary: a completed run is 0 even when
// individual accounts failed; any fatal precondition failure is 1.
func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
