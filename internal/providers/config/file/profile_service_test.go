package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/faults"
)

func TestResolve(t *testing.T) {
	t.Run("flag_wins_over_env", func(t *testing.T) {
		t.Setenv(config.ProfileFileEnvVar, "/from/env.yaml")

		path, required := Resolve("/from/flag.yaml")
		if path != "/from/flag.yaml" || !required {
			t.Fatalf("unexpected resolution: %q required=%t", path, required)
		}
	})

	t.Run("env_wins_over_default", func(t *testing.T) {
		t.Setenv(config.ProfileFileEnvVar, "/from/env.yaml")

		path, required := Resolve("")
		if path != "/from/env.yaml" || !required {
			t.Fatalf("unexpected resolution: %q required=%t", path, required)
		}
	})

	t.Run("default_is_optional", func(t *testing.T) {
		t.Setenv(config.ProfileFileEnvVar, "")

		path, required := Resolve("")
		if path != config.DefaultProfilePath || required {
			t.Fatalf("unexpected resolution: %q required=%t", path, required)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("full_profile", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
connection:
  base-url: https://sso.example.com
  realm: customers
  username: admin
  password: secret
  tls:
    insecure-skip-verify: true
sweep:
  required-action: CONFIGURE_TOTP
  page-size: 50
  workers: 2
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		profile, err := Load(path, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Connection.BaseURL != "https://sso.example.com" || profile.Connection.Realm != "customers" {
			t.Fatalf("unexpected connection: %+v", profile.Connection)
		}
		if profile.Connection.TLS == nil || !profile.Connection.TLS.InsecureSkipVerify {
			t.Fatalf("tls settings not decoded: %+v", profile.Connection.TLS)
		}
		if profile.Sweep.EffectivePageSize() != 50 || profile.Sweep.EffectiveWorkers() != 2 {
			t.Fatalf("unexpected sweep settings: %+v", profile.Sweep)
		}
	})

	t.Run("missing_optional_file_is_empty", func(t *testing.T) {
		t.Parallel()

		profile, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile != (config.Profile{}) {
			t.Fatalf("expected zero profile, got %+v", profile)
		}
	})

	t.Run("missing_required_file_fails", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown_fields_are_rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("connection:\n  base-uri: typo\n"), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		if _, err := Load(path, true); !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
