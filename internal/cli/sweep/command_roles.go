package sweep

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/cli/common"
	"github.com/kcutil/otpsweep/targets"
)

const (
	strategyPaged  = "paged"
	strategyDirect = "direct"
)

func NewRolesCommand(deps common.CommandDependencies, flags *common.GlobalFlags) *cobra.Command {
	var strategy string

	command := &cobra.Command{
		Use:   "roles [BASE_URL REALM ADMIN_USER ADMIN_PASS] ROLE[,ROLE...]",
		Short: "Sweep the holders of one or more realm roles",
		Long: strings.Join([]string{
			"Enforce the required action on every user holding at least one of the requested realm roles.",
			"The paged strategy walks the whole user directory in fixed-size pages and intersects each user's roles with the requested names.",
			"The direct strategy asks for each role's member list instead; a role name that does not exist is skipped with a warning.",
			"A run that matches no users is still a completed run.",
		}, " "),
		Example: strings.Join([]string{
			"  otpsweep roles https://sso.example.com customers admin s3cret admin,superuser",
			"  otpsweep roles admin,auditor --config ./prod.yaml --strategy direct",
		}, "\n"),
		Args: cobra.RangeArgs(1, 5),
		RunE: func(command *cobra.Command, args []string) error {
			connectionArgs, selector, err := splitModeArgs(args, true)
			if err != nil {
				return err
			}
			roleNames, err := splitRoleNames(selector)
			if err != nil {
				return err
			}

			var resolve resolveFunc
			switch strategy {
			case strategyPaged:
				resolve = func(ctx context.Context, resolver *targets.Resolver) ([]directory.UserRef, error) {
					return resolver.ByRolesPaged(ctx, roleNames)
				}
			case strategyDirect:
				resolve = func(ctx context.Context, resolver *targets.Resolver) ([]directory.UserRef, error) {
					return resolver.ByRoles(ctx, roleNames)
				}
			default:
				return common.ValidationError("flag --strategy must be paged or direct", nil)
			}

			return run(command, deps, flags, connectionArgs, false, resolve)
		},
	}

	command.Flags().StringVar(&strategy, "strategy", strategyPaged, "role resolution strategy: paged or direct")
	return command
}
