package sweep

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/cli/common"
	"github.com/kcutil/otpsweep/targets"
)

func NewGroupCommand(deps common.CommandDependencies, flags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "group [BASE_URL REALM ADMIN_USER ADMIN_PASS] GROUP_NAME",
		Short: "Sweep the members of one group",
		Long: strings.Join([]string{
			"Resolve a group by name search and enforce the required action on each member.",
			"An empty search result aborts the run; when several groups match the search, the first match is used.",
		}, " "),
		Example: strings.Join([]string{
			"  otpsweep group https://sso.example.com customers admin s3cret finance-team",
			"  otpsweep group finance-team --config ./prod.yaml",
		}, "\n"),
		Args: cobra.RangeArgs(1, 5),
		RunE: func(command *cobra.Command, args []string) error {
			connectionArgs, groupName, err := splitModeArgs(args, true)
			if err != nil {
				return err
			}

			return run(command, deps, flags, connectionArgs, true,
				func(ctx context.Context, resolver *targets.Resolver) ([]directory.UserRef, error) {
					return resolver.ByGroup(ctx, groupName)
				},
			)
		},
	}
}
