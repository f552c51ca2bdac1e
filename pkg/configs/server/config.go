package server

import (
	"fmt"
	"os"
	"time"

	"github.com/opst/mealplanner/pkg/loop/recurring"
	"gopkg.in/yaml.v3"
)

// ServerConfig is a sealed configuration of the API server.
//
// Get it with LoadServerConfig or Unmarshal.
type ServerConfig struct {
	dburi        string
	port         string
	auth         *AuthConfig
	housekeeping *HousekeepingConfig
}

// Connection string for database.
func (c *ServerConfig) DBURI() string {
	return c.dburi
}

// Port to listen. default = "8080"
func (c *ServerConfig) Port() string {
	return c.port
}

func (c *ServerConfig) Auth() *AuthConfig {
	return c.auth
}

func (c *ServerConfig) Housekeeping() *HousekeepingConfig {
	return c.housekeeping
}

type AuthConfig struct {
	keyfile  string
	issuer   string
	tokenTTL time.Duration
}

// Path to the file containing HS256 secret.
func (a *AuthConfig) Keyfile() string {
	return a.keyfile
}

// "iss" claim of tokens. default = "mealplanner"
func (a *AuthConfig) Issuer() string {
	return a.issuer
}

// Lifetime of new tokens. default = 24h
func (a *AuthConfig) TokenTTL() time.Duration {
	return a.tokenTTL
}

type HousekeepingConfig struct {
	paymentRetention time.Duration
	policy           recurring.Policy
	schemaRepository string
}

// How long soft-deleted payments are kept before purged. default = 720h
func (h *HousekeepingConfig) PaymentRetention() time.Duration {
	return h.paymentRetention
}

// Policy of the purge loop. default = forever:1h
func (h *HousekeepingConfig) Policy() recurring.Policy {
	return h.policy
}

// Directory of schema repository.
//
// When it is not empty, the server quits if the database schema is not latest.
func (h *HousekeepingConfig) SchemaRepository() string {
	return h.schemaRepository
}

// ServerConfigMarshall is the mutable form of ServerConfig, as written in yaml.
type ServerConfigMarshall struct {
	DBURI        string                      `yaml:"dburi"`
	Port         string                      `yaml:"port,omitempty"`
	Auth         *AuthConfigMarshall         `yaml:"auth"`
	Housekeeping *HousekeepingConfigMarshall `yaml:"housekeeping,omitempty"`
}

type AuthConfigMarshall struct {
	Keyfile  string `yaml:"keyfile"`
	Issuer   string `yaml:"issuer,omitempty"`
	TokenTTL string `yaml:"tokenTTL,omitempty"`
}

type HousekeepingConfigMarshall struct {
	PaymentRetention string `yaml:"paymentRetention,omitempty"`
	Policy           string `yaml:"policy,omitempty"`
	SchemaRepository string `yaml:"schemaRepository,omitempty"`
}

// Seal verifies the configuration and creates its readonly version.
func (m *ServerConfigMarshall) Seal() (*ServerConfig, error) {
	if m.DBURI == "" {
		return nil, fmt.Errorf("(root).dburi: required")
	}
	port := m.Port
	if port == "" {
		port = "8080"
	}
	if m.Auth == nil {
		return nil, fmt.Errorf("(root).auth: required")
	}
	auth, err := m.Auth.seal("(root).auth")
	if err != nil {
		return nil, err
	}

	hk := m.Housekeeping
	if hk == nil {
		hk = &HousekeepingConfigMarshall{}
	}
	housekeeping, err := hk.seal("(root).housekeeping")
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		dburi:        m.DBURI,
		port:         port,
		auth:         auth,
		housekeeping: housekeeping,
	}, nil
}

func (a *AuthConfigMarshall) seal(path string) (*AuthConfig, error) {
	if a.Keyfile == "" {
		return nil, fmt.Errorf("%s.keyfile: required", path)
	}
	issuer := a.Issuer
	if issuer == "" {
		issuer = "mealplanner"
	}
	ttl, err := durationOr(a.TokenTTL, 24*time.Hour)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("%s.tokenTTL: should be positive duration: %q", path, a.TokenTTL)
	}
	return &AuthConfig{keyfile: a.Keyfile, issuer: issuer, tokenTTL: ttl}, nil
}

func (h *HousekeepingConfigMarshall) seal(path string) (*HousekeepingConfig, error) {
	retention, err := durationOr(h.PaymentRetention, 720*time.Hour)
	if err != nil || retention < 0 {
		return nil, fmt.Errorf(
			"%s.paymentRetention: should be non-negative duration: %q", path, h.PaymentRetention,
		)
	}

	policyExpr := h.Policy
	if policyExpr == "" {
		policyExpr = "forever:1h"
	}
	policy, err := recurring.ParsePolicy(policyExpr)
	if err != nil {
		return nil, fmt.Errorf("%s.policy: %w", path, err)
	}

	return &HousekeepingConfig{
		paymentRetention: retention,
		policy:           policy,
		schemaRepository: h.SchemaRepository,
	}, nil
}

func durationOr(s string, d time.Duration) (time.Duration, error) {
	if s == "" {
		return d, nil
	}
	return time.ParseDuration(s)
}

// LoadServerConfig reads and seals a configuration file.
func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	var m ServerConfigMarshall
	if err := yaml.Unmarshal(conf, &m); err != nil {
		return nil, err
	}
	return m.Seal()
}
