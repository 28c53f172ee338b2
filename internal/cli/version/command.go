package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build.
var Version = "dev"

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the otpsweep version",
		Args:  cobra.NoArgs,
		Run: func(command *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(command.OutOrStdout(), "otpsweep %s\n", Version)
		},
	}
}
