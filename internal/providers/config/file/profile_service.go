// Package file loads the optional on-disk sweep profile.
package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/faults"
)

// Resolve decides which profile file applies: the explicit flag value wins,
// then the environment variable, then the default location. Only an
// explicitly requested file is required to exist.
func Resolve(flagPath string) (path string, required bool) {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath, true
	}
	if fromEnv := strings.TrimSpace(os.Getenv(config.ProfileFileEnvVar)); fromEnv != "" {
		return fromEnv, true
	}
	return config.DefaultProfilePath, false
}

// Load reads and decodes a profile. A missing optional file yields the zero
// profile.
func Load(path string, required bool) (config.Profile, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return config.Profile{}, err
	}

	raw, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return config.Profile{}, nil
	}
	if err != nil {
		return config.Profile{}, validationError(fmt.Sprintf("profile file %q could not be read", path), err)
	}

	var profile config.Profile
	decoder := yaml.NewDecoder(strings.NewReader(string(raw)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&profile); errors.Is(err, io.EOF) {
		return config.Profile{}, nil
	} else if err != nil {
		return config.Profile{}, validationError(fmt.Sprintf("profile file %q is not valid YAML", path), err)
	}
	return profile, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", validationError("home directory could not be resolved", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
