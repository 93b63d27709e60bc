// Package passkey implements the client side of a biometric passkey login
// flow. A Client builds WebAuthn ceremony options, delegates the ceremony to
// a platform authenticator, and wraps the outcome into a result value that
// never escapes as an error. Ownership of UI prompting, biometric capture,
// and key material belongs entirely to the authenticator; this package never
// sees a private key.
package passkey

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log"

	"github.com/aegisbank/passkey/authenticator"
	"github.com/aegisbank/passkey/protocol/webauthn"
)

// Client orchestrates registration and authentication ceremonies. It is
// stateless between calls: every ceremony draws fresh randomness and builds
// fresh options. Concurrent calls proceed independently.
type Client struct {
	authn  authenticator.Authenticator
	cfg    Config
	rand   io.Reader
	host   func() string
	logger *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRandom replaces the random source used for challenges and user
// handles. The default is crypto/rand.
func WithRandom(r io.Reader) ClientOption {
	return func(c *Client) { c.rand = r }
}

// WithHost replaces the host-name provider the relying-party id derives
// from. The default returns the configured RPID.
func WithHost(fn func() string) ClientOption {
	return func(c *Client) { c.host = fn }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a ceremony client delegating to the given authenticator.
func NewClient(authn authenticator.Authenticator, cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		authn:  authn,
		cfg:    cfg,
		rand:   rand.Reader,
		logger: log.Default(),
	}
	c.host = func() string { return c.cfg.RPID }
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegistrationResult is the outcome of a registration ceremony.
type RegistrationResult struct {
	Success    bool
	Credential *webauthn.RegistrationCredential
	Err        *webauthn.CeremonyError
}

// AuthenticationResult is the outcome of an authentication ceremony.
type AuthenticationResult struct {
	Success   bool
	Assertion *webauthn.AssertionCredential
	Err       *webauthn.CeremonyError
}

// Register runs a registration ceremony for username. Every failure is
// converted into the returned result; nothing propagates as an error.
func (c *Client) Register(ctx context.Context, username string) *RegistrationResult {
	if c.authn == nil {
		c.logger.Printf("passkey: registration aborted: %v", ErrNoAuthenticator)
		return &RegistrationResult{Err: webauthn.NewCeremonyError(
			webauthn.ErrNameNotSupported,
			"WebAuthn is not supported in this environment",
		)}
	}
	if !c.authn.Supported() {
		c.logger.Printf("passkey: registration aborted: %v", ErrNotSupported)
		return &RegistrationResult{Err: webauthn.NewCeremonyError(
			webauthn.ErrNameNotSupported,
			"WebAuthn is not supported in this environment",
		)}
	}

	available, err := c.authn.Available(ctx)
	if err != nil {
		c.logger.Printf("passkey: %v", newErrorMessage(ErrPlatformUnavailable, err.Error()))
		available = false
	}
	if !available {
		return &RegistrationResult{Err: webauthn.NewCeremonyError(
			webauthn.ErrNameNotSupported,
			"no user-verifying platform authenticator is available on this device",
		)}
	}

	options, err := c.NewRegistrationOptions(username)
	if err != nil {
		c.logger.Printf("passkey: build registration options: %v", err)
		return &RegistrationResult{Err: toCeremonyError(err)}
	}

	credential, err := c.authn.Create(ctx, options)
	if err != nil {
		c.logger.Printf("passkey: registration ceremony failed: %v", err)
		return &RegistrationResult{Err: toCeremonyError(err)}
	}

	c.logger.Printf("passkey: registered credential %s for %q", credential.ID, username)
	return &RegistrationResult{Success: true, Credential: credential}
}

// Authenticate runs an authentication ceremony. The username is accepted for
// symmetry with Register but is not bound to any credential: the allow list
// is always empty and the authenticator offers whatever resident passkey it
// holds for the relying party.
func (c *Client) Authenticate(ctx context.Context, username string) *AuthenticationResult {
	if c.authn == nil || !c.authn.Supported() {
		c.logger.Printf("passkey: authentication aborted: %v", ErrNotSupported)
		return &AuthenticationResult{Err: webauthn.NewCeremonyError(
			webauthn.ErrNameNotSupported,
			"WebAuthn is not supported in this environment",
		)}
	}

	options, err := c.NewAuthenticationOptions()
	if err != nil {
		c.logger.Printf("passkey: build authentication options: %v", err)
		return &AuthenticationResult{Err: toCeremonyError(err)}
	}

	assertion, err := c.authn.Get(ctx, options)
	if err != nil {
		c.logger.Printf("passkey: authentication ceremony failed: %v", err)
		return &AuthenticationResult{Err: toCeremonyError(err)}
	}

	c.logger.Printf("passkey: authenticated %q with credential %s", username, assertion.ID)
	return &AuthenticationResult{Success: true, Assertion: assertion}
}

// toCeremonyError passes ceremony errors through and wraps anything else
// under the unknown name so the caller always sees the same error shape.
func toCeremonyError(err error) *webauthn.CeremonyError {
	var cerr *webauthn.CeremonyError
	if errors.As(err, &cerr) {
		return cerr
	}
	return webauthn.NewCeremonyError(webauthn.ErrNameUnknown, err.Error())
}
