// Package authenticator defines the boundary between the login flow and the
// platform that actually performs WebAuthn ceremonies: prompting the user,
// capturing the biometric gesture, and holding key material. Implementations
// report ceremony failures as *webauthn.CeremonyError values.
package authenticator

import (
	"context"

	"github.com/aegisbank/passkey/protocol/webauthn"
)

// Authenticator is a delegated WebAuthn ceremony provider.
type Authenticator interface {
	// Supported reports whether the WebAuthn capability exists at all in
	// this environment.
	Supported() bool

	// Available probes for a user-verifying platform authenticator. A probe
	// error means the answer could not be determined; callers treat it as
	// unavailable.
	Available(ctx context.Context) (bool, error)

	// Create runs a registration ceremony and returns the new credential.
	Create(ctx context.Context, options *webauthn.PublicKeyCredentialCreationOptions) (*webauthn.RegistrationCredential, error)

	// Get runs an authentication ceremony and returns the assertion.
	Get(ctx context.Context, options *webauthn.PublicKeyCredentialRequestOptions) (*webauthn.AssertionCredential, error)
}
