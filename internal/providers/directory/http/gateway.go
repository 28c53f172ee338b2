// Package http implements directory.Service against the Keycloak
// administrative REST API.
package http

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kcutil/otpsweep/config"
	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/internal/providers/shared/tlsconfig"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"
)

var _ directory.Service = (*KeycloakGateway)(nil)
var _ directory.AccessTokenProvider = (*KeycloakGateway)(nil)

// KeycloakGateway talks to one realm of one Keycloak instance. The bearer
// token is acquired lazily on first use and reused for the lifetime of the
// gateway; there is no refresh, matching the single-shot credential model.
type KeycloakGateway struct {
	baseURL  *url.URL
	realm    string
	username string
	password string
	client   *http.Client

	tokenMu     sync.Mutex
	accessToken string
}

func NewKeycloakGateway(cfg config.Connection) (*KeycloakGateway, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	realm := strings.TrimSpace(cfg.Realm)
	if realm == "" {
		return nil, validationError("connection.realm is required", nil)
	}
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, validationError("connection.username is required", nil)
	}
	if cfg.Password == "" {
		return nil, validationError("connection.password is required", nil)
	}

	tlsConfig, err := tlsconfig.BuildTLSConfig(cfg.TLS, "connection")
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	return &KeycloakGateway{
		baseURL:  baseURL,
		realm:    realm,
		username: cfg.Username,
		password: cfg.Password,
		client: &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		},
	}, nil
}

func (g *KeycloakGateway) adminPath(segments ...string) string {
	parts := make([]string, 0, len(segments)+3)
	parts = append(parts, "admin", "realms", url.PathEscape(g.realm))
	for _, segment := range segments {
		parts = append(parts, url.PathEscape(segment))
	}
	return "/" + strings.Join(parts, "/")
}

func parseBaseURL(raw string) (*url.URL, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, validationError("connection.base-url is required", nil)
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return nil, validationError("connection.base-url is invalid", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, validationError("connection.base-url must use http or https", nil)
	}
	if parsed.Host == "" {
		return nil, validationError("connection.base-url host is required", nil)
	}

	if parsed.Path == "" {
		parsed.Path = "/"
	}
	return parsed, nil
}
