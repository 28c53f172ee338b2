package config

const (
	ProfileFileEnvVar  = "OTPSWEEP_CONFIG_FILE"
	DefaultProfilePath = "~/.otpsweep/config.yaml"

	// AdminClientID is the fixed public client used for the password grant.
	AdminClientID = "admin-cli"
	// TokenRealm is the realm that issues administrative tokens.
	TokenRealm = "master"

	// DefaultRequiredAction forces one-time-password enrollment on next sign-in.
	DefaultRequiredAction = "CONFIGURE_TOTP"
	// DefaultPageSize is the fixed page size of the paged role strategy.
	DefaultPageSize = 100
	// DefaultWorkers keeps account processing strictly sequential.
	DefaultWorkers = 1
)

// Profile is the optional on-disk configuration. Positional command
// arguments always take precedence over profile values.
type Profile struct {
	Connection Connection `yaml:"connection"`
	Sweep      Sweep      `yaml:"sweep,omitempty"`
}

type Connection struct {
	BaseURL  string `yaml:"base-url"`
	Realm    string `yaml:"realm"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
	TLS      *TLS   `yaml:"tls,omitempty"`
}

type TLS struct {
	InsecureSkipVerify bool   `yaml:"insecure-skip-verify,omitempty"`
	CACertFile         string `yaml:"ca-cert-file,omitempty"`
	ClientCertFile     string `yaml:"client-cert-file,omitempty"`
	ClientKeyFile      string `yaml:"client-key-file,omitempty"`
}

type Sweep struct {
	RequiredAction string `yaml:"required-action,omitempty"`
	PageSize       int    `yaml:"page-size,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`
}

func (s Sweep) EffectiveRequiredAction() string {
	if s.RequiredAction == "" {
		return DefaultRequiredAction
	}
	return s.RequiredAction
}

func (s Sweep) EffectivePageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s Sweep) EffectiveWorkers() int {
	if s.Workers <= 0 {
		return DefaultWorkers
	}
	return s.Workers
}
