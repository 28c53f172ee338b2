// Package cli assembles the otpsweep command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kcutil/otpsweep/debugctx"
	"github.com/kcutil/otpsweep/internal/cli/common"
	"github.com/kcutil/otpsweep/internal/cli/sweep"
	"github.com/kcutil/otpsweep/internal/cli/version"
)

func NewRootCommand(deps common.CommandDependencies) *cobra.Command {
	var globalFlags common.GlobalFlags

	root := &cobra.Command{
		Use:   "otpsweep",
		Short: "Enforce an OTP-enrollment required action across Keycloak users",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			commandContext := command.Context()
			if commandContext == nil {
				commandContext = context.Background()
			}
			commandContext = debugctx.WithEnabled(commandContext, globalFlags.Debug)
			commandContext = debugctx.WithWriter(commandContext, command.ErrOrStderr())
			command.SetContext(commandContext)

			debugctx.Printf(
				command.Context(),
				"root flags config=%q debug=%t yes=%t dry_run=%t command=%q",
				globalFlags.ConfigFile,
				globalFlags.Debug,
				globalFlags.AssumeYes,
				globalFlags.DryRun,
				command.CommandPath(),
			)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	common.BindGlobalFlags(root.PersistentFlags(), &globalFlags)

	root.AddCommand(
		sweep.NewGroupCommand(deps, &globalFlags),
		sweep.NewRealmCommand(deps, &globalFlags),
		sweep.NewRolesCommand(deps, &globalFlags),
		version.NewCommand(),
	)

	return root
}
