package common

import "github.com/spf13/pflag"

// GlobalFlags are shared by every sweep mode.
type GlobalFlags struct {
	ConfigFile     string
	Debug          bool
	AssumeYes      bool
	DryRun         bool
	RequiredAction string
	PageSize       int
	Workers        int
}

// BindGlobalFlags registers the shared flag set. Zero values mean "fall
// back to the profile, then to the built-in default".
func BindGlobalFlags(flagSet *pflag.FlagSet, flags *GlobalFlags) {
	flagSet.StringVar(&flags.ConfigFile, "config", "", "path to a profile file (default $"+profileEnvHint+")")
	flagSet.BoolVar(&flags.Debug, "debug", false, "narrate HTTP exchanges on stderr")
	flagSet.BoolVarP(&flags.AssumeYes, "yes", "y", false, "skip interactive confirmation")
	flagSet.BoolVar(&flags.DryRun, "dry-run", false, "resolve and compare but never write")
	flagSet.StringVar(&flags.RequiredAction, "required-action", "", "required action to enforce (default CONFIGURE_TOTP)")
	flagSet.IntVar(&flags.PageSize, "page-size", 0, "page size of the paged role strategy (default 100)")
	flagSet.IntVar(&flags.Workers, "workers", 0, "concurrent account updates (default 1, sequential)")
}

const profileEnvHint = "OTPSWEEP_CONFIG_FILE"
