// Package sweep contributes the group, realm, and roles commands: one
// command per target-set resolution mode.
package sweep

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/cli/common"
	"github.com/kcutil/otpsweep/reconciler"
	"github.com/kcutil/otpsweep/targets"
)

// resolveFunc produces the target set for one mode once the gateway and
// resolver are wired.
type resolveFunc func(ctx context.Context, resolver *targets.Resolver) ([]directory.UserRef, error)

// run is the shared pipeline: profile + positionals -> connection ->
// gateway -> target set -> reconciliation -> report.
func run(
	command *cobra.Command,
	deps common.CommandDependencies,
	flags *common.GlobalFlags,
	connectionArgs []string,
	emptySetFatal bool,
	resolve resolveFunc,
) error {
	newDirectory, err := common.RequireDirectoryFactory(deps)
	if err != nil {
		return err
	}

	profile, err := loadProfile(deps, flags)
	if err != nil {
		return err
	}

	connection, err := mergeConnection(command, profile.Connection, connectionArgs)
	if err != nil {
		return err
	}

	sweepSettings := mergeSweepSettings(profile.Sweep, flags)

	gateway, err := newDirectory(connection)
	if err != nil {
		return err
	}

	ctx := command.Context()
	out := command.OutOrStdout()

	// Authenticate before resolving anything so bad credentials abort the
	// run up front instead of midway through a page walk.
	if provider, ok := gateway.(directory.AccessTokenProvider); ok {
		if _, err := provider.AccessToken(ctx); err != nil {
			return err
		}
	}

	resolver := &targets.Resolver{
		Directory: gateway,
		Out:       out,
		PageSize:  sweepSettings.EffectivePageSize(),
	}

	targetSet, err := resolve(ctx, resolver)
	if err != nil {
		return err
	}
	if len(targetSet) == 0 {
		if emptySetFatal {
			return common.NotFoundError("target set is empty: no accounts to reconcile", nil)
		}
		_, _ = fmt.Fprintln(out, "no users matched the requested roles")
	}

	driver := &reconciler.Driver{
		Directory: gateway,
		Action:    sweepSettings.EffectiveRequiredAction(),
		Out:       out,
		Workers:   sweepSettings.EffectiveWorkers(),
		DryRun:    flags.DryRun,
	}

	summary := driver.Run(ctx, targetSet)
	summary.WriteReport(out, driver.Action)
	return nil
}

func loadProfile(deps common.CommandDependencies, flags *common.GlobalFlags) (config.Profile, error) {
	if deps.LoadProfile == nil {
		return config.Profile{}, nil
	}
	return deps.LoadProfile(flags.ConfigFile, strings.TrimSpace(flags.ConfigFile) != "")
}

// mergeConnection overlays the positional connection arguments (base URL,
// realm, admin username, admin password) on the profile. Positionals always
// win. A password of "-" is prompted for.
func mergeConnection(command *cobra.Command, base config.Connection, args []string) (config.Connection, error) {
	connection := base
	if len(args) > 0 {
		if len(args) != 4 {
			return config.Connection{}, common.ValidationError(
				"connection arguments must be BASE_URL REALM ADMIN_USER ADMIN_PASS",
				nil,
			)
		}
		connection.BaseURL = args[0]
		connection.Realm = args[1]
		connection.Username = args[2]
		connection.Password = args[3]
	}

	if connection.Password == "-" {
		password, err := common.PromptPassword(command, fmt.Sprintf("password for %s", connection.Username))
		if err != nil {
			return config.Connection{}, err
		}
		connection.Password = password
	}

	var missing []string
	if strings.TrimSpace(connection.BaseURL) == "" {
		missing = append(missing, "base URL")
	}
	if strings.TrimSpace(connection.Realm) == "" {
		missing = append(missing, "realm")
	}
	if strings.TrimSpace(connection.Username) == "" {
		missing = append(missing, "admin username")
	}
	if connection.Password == "" {
		missing = append(missing, "admin password")
	}
	if len(missing) > 0 {
		return config.Connection{}, common.ValidationError(
			fmt.Sprintf("connection is incomplete: missing %s (pass them as arguments or through a profile)", strings.Join(missing, ", ")),
			nil,
		)
	}

	return connection, nil
}

func mergeSweepSettings(base config.Sweep, flags *common.GlobalFlags) config.Sweep {
	merged := base
	if flags.RequiredAction != "" {
		merged.RequiredAction = flags.RequiredAction
	}
	if flags.PageSize > 0 {
		merged.PageSize = flags.PageSize
	}
	if flags.Workers > 0 {
		merged.Workers = flags.Workers
	}
	return merged
}

// splitModeArgs separates the optional 4 connection positionals from the
// mode's selector argument.
func splitModeArgs(args []string, wantSelector bool) (connectionArgs []string, selector string, err error) {
	if wantSelector {
		switch len(args) {
		case 1:
			return nil, args[0], nil
		case 5:
			return args[:4], args[4], nil
		default:
			return nil, "", common.ValidationError(
				"accepts either SELECTOR (with a profile) or BASE_URL REALM ADMIN_USER ADMIN_PASS SELECTOR",
				nil,
			)
		}
	}

	switch len(args) {
	case 0:
		return nil, "", nil
	case 4:
		return args, "", nil
	default:
		return nil, "", common.ValidationError(
			"accepts either no arguments (with a profile) or BASE_URL REALM ADMIN_USER ADMIN_PASS",
			nil,
		)
	}
}

func splitRoleNames(selector string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(selector, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, common.ValidationError("at least one role name is required", nil)
	}
	return names, nil
}
