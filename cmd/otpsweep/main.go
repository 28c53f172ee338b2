package main

import (
	"os"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/cli"
	"github.com/kcutil/otpsweep/internal/cli/common"
	profilefile "github.com/kcutil/otpsweep/internal/providers/config/file"
	directoryhttp "github.com/kcutil/otpsweep/internal/providers/directory/http"
)

func main() {
	deps := common.CommandDependencies{
		NewDirectory: func(cfg config.Connection) (directory.Service, error) {
			return directoryhttp.NewKeycloakGateway(cfg)
		},
		LoadProfile: func(path string, required bool) (config.Profile, error) {
			if path == "" {
				path, required = profilefile.Resolve("")
			}
			return profilefile.Load(path, required)
		},
	}

	if err := cli.Execute(deps); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
