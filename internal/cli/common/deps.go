package common

import (
	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/directory"
)

// CommandDependencies carries everything a command needs that the test
// suite may want to substitute.
type CommandDependencies struct {
	// NewDirectory builds the admin gateway for one validated connection.
	NewDirectory func(cfg config.Connection) (directory.Service, error)

	// LoadProfile reads the profile file at path; required marks files the
	// operator asked for explicitly.
	LoadProfile func(path string, required bool) (config.Profile, error)
}

func RequireDirectoryFactory(deps CommandDependencies) (func(config.Connection) (directory.Service, error), error) {
	if deps.NewDirectory == nil {
		return nil, InternalError("directory gateway factory is not configured", nil)
	}
	return deps.NewDirectory, nil
}
