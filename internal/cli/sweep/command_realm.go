package sweep

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/cli/common"
	"github.com/kcutil/otpsweep/targets"
)

func NewRealmCommand(deps common.CommandDependencies, flags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "realm [BASE_URL REALM ADMIN_USER ADMIN_PASS]",
		Short: "Sweep every user of the realm",
		Long: strings.Join([]string{
			"Enforce the required action on every user of the realm.",
			"This touches the whole directory, so it asks for confirmation unless --yes or --dry-run is given.",
		}, " "),
		Example: strings.Join([]string{
			"  otpsweep realm https://sso.example.com customers admin s3cret",
			"  otpsweep realm --config ./prod.yaml --yes",
		}, "\n"),
		Args: cobra.MaximumNArgs(4),
		RunE: func(command *cobra.Command, args []string) error {
			connectionArgs, _, err := splitModeArgs(args, false)
			if err != nil {
				return err
			}

			if !flags.AssumeYes && !flags.DryRun {
				confirmed, err := common.PromptConfirm(command, "Enforce the required action for every user in the realm?", false)
				if err != nil {
					return common.ValidationError("realm-wide sweep requires confirmation: pass --yes to proceed", err)
				}
				if !confirmed {
					return common.ValidationError("realm-wide sweep aborted", nil)
				}
			}

			return run(command, deps, flags, connectionArgs, true,
				func(ctx context.Context, resolver *targets.Resolver) ([]directory.UserRef, error) {
					return resolver.Realm(ctx)
				},
			)
		},
	}
}
