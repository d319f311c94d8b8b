package jwtauth

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds immutable configuration for JWT authentication
type Config struct {
	encryptor        Encryptor
	validators       []ClaimValidator
	customValidators bool
	clockSkewLeeway  time.Duration
	clock            func() time.Time
	cookieName       string
	requiredClaims   []string
	logger           *slog.Logger

	authenticator *Authenticator
}

// ConfigOption is a functional option for configuring the middleware
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		clock: time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	if cfg.encryptor == nil {
		return nil, NewValidationError(ErrConfigError, "a signing strategy must be configured (use WithHS256, WithHS384, WithHS512 or WithEncryptor)", nil)
	}
	if strings.EqualFold(cfg.encryptor.Name(), "none") {
		return nil, NewValidationError(ErrConfigError, "none algorithm is prohibited", nil)
	}

	var validators []ClaimValidator
	if !cfg.customValidators {
		validators = defaultValidators(cfg.clock, cfg.clockSkewLeeway)
	}
	validators = append(validators, cfg.validators...)
	if len(cfg.requiredClaims) > 0 {
		validators = append(validators, RequiredClaimsValidator{Names: cfg.requiredClaims})
	}
	cfg.authenticator = newAuthenticator(cfg.encryptor, validators)

	return cfg, nil
}

func setEncryptor(c *Config, e Encryptor) error {
	if c.encryptor != nil {
		return fmt.Errorf("signing strategy already configured as %s", c.encryptor.Name())
	}
	c.encryptor = e
	return nil
}

// WithHS256 configures HMAC-SHA256 verification with the given secret
func WithHS256(secret []byte) ConfigOption {
	return func(c *Config) error {
		return setEncryptor(c, NewHS256(secret))
	}
}

// WithHS384 configures HMAC-SHA384 verification with the given secret
func WithHS384(secret []byte) ConfigOption {
	return func(c *Config) error {
		return setEncryptor(c, NewHS384(secret))
	}
}

// WithHS512 configures HMAC-SHA512 verification with the given secret
func WithHS512(secret []byte) ConfigOption {
	return func(c *Config) error {
		return setEncryptor(c, NewHS512(secret))
	}
}

// WithEncryptor configures a caller-supplied signing strategy
func WithEncryptor(e Encryptor) ConfigOption {
	return func(c *Config) error {
		if e == nil {
			return fmt.Errorf("encryptor cannot be nil")
		}
		return setEncryptor(c, e)
	}
}

// WithValidators adds claim validators after the default exp/nbf checks
func WithValidators(validators ...ClaimValidator) ConfigOption {
	return func(c *Config) error {
		for _, v := range validators {
			if v == nil {
				return fmt.Errorf("claim validator cannot be nil")
			}
		}
		c.validators = append(c.validators, validators...)
		return nil
	}
}

// WithCustomValidators replaces the default exp/nbf checks with the given
// validators. Validators added by WithValidators still run.
func WithCustomValidators(validators ...ClaimValidator) ConfigOption {
	return func(c *Config) error {
		c.customValidators = true
		return WithValidators(validators...)(c)
	}
}

// WithClockSkew sets the clock skew tolerance for exp/nbf validation
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithClock sets the time source used by the default exp/nbf checks
func WithClock(now func() time.Time) ConfigOption {
	return func(c *Config) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.clock = now
		return nil
	}
}

// WithCookie enables token extraction from a cookie with the given name
func WithCookie(cookieName string) ConfigOption {
	return func(c *Config) error {
		c.cookieName = cookieName
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithRequiredClaims specifies claim names that must be present in the JWT
func WithRequiredClaims(claims ...string) ConfigOption {
	return func(c *Config) error {
		c.requiredClaims = append(c.requiredClaims, claims...)
		return nil
	}
}

// Authenticator returns the authenticator built from this configuration
func (c *Config) Authenticator() *Authenticator {
	return c.authenticator
}

// Algorithm returns the name of the configured signing strategy
func (c *Config) Algorithm() string {
	return c.encryptor.Name()
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) CookieName() string {
	return c.cookieName
}

func (c *Config) RequiredClaims() []string {
	return c.requiredClaims
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
