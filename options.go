package passkey

import (
	"fmt"
	"io"

	"github.com/aegisbank/passkey/protocol/webauthn"
)

const (
	challengeLength  = 32
	userHandleLength = 16
	// timeoutMillis is an advisory value the platform may or may not honor.
	timeoutMillis = 60_000

	localhostRPID = "localhost"
)

// NewRegistrationOptions builds the request container for a registration
// ceremony: a fresh 32-byte challenge, a fresh 16-byte user handle, the
// host-derived relying-party id, and the fixed ES256+RS256 algorithm pair.
// Pure function of the injected random source and host name; nothing is
// cached or persisted.
func (c *Client) NewRegistrationOptions(username string) (*webauthn.PublicKeyCredentialCreationOptions, error) {
	challenge, err := randomBytes(c.rand, challengeLength)
	if err != nil {
		return nil, fmt.Errorf("generate challenge: %w", err)
	}
	userHandle, err := randomBytes(c.rand, userHandleLength)
	if err != nil {
		return nil, fmt.Errorf("generate user handle: %w", err)
	}

	return &webauthn.PublicKeyCredentialCreationOptions{
		Challenge: webauthn.EncodeBase64URL(challenge),
		RP: webauthn.PublicKeyCredentialRpEntity{
			Name: c.cfg.RPDisplayName,
			ID:   c.rpID(),
		},
		User: webauthn.PublicKeyCredentialUserEntity{
			ID:          webauthn.EncodeBase64URL(userHandle),
			Name:        username,
			DisplayName: username,
		},
		PubKeyCredParams: []webauthn.PublicKeyCredentialParameters{
			{Type: webauthn.CredentialTypePublicKey, Alg: webauthn.AlgES256},
			{Type: webauthn.CredentialTypePublicKey, Alg: webauthn.AlgRS256},
		},
		AuthenticatorSelection: &webauthn.AuthenticatorSelectionCriteria{
			AuthenticatorAttachment: webauthn.AttachmentPlatform,
			ResidentKey:             webauthn.ResidentKeyPreferred,
			UserVerification:        webauthn.UserVerificationRequired,
		},
		Timeout:     timeoutMillis,
		Attestation: webauthn.AttestationNone,
	}, nil
}

// NewAuthenticationOptions builds the request container for an
// authentication ceremony. The allow list is always empty: no registered
// credential lookup exists, so any resident passkey for the relying party
// may be offered by the authenticator.
func (c *Client) NewAuthenticationOptions() (*webauthn.PublicKeyCredentialRequestOptions, error) {
	challenge, err := randomBytes(c.rand, challengeLength)
	if err != nil {
		return nil, fmt.Errorf("generate challenge: %w", err)
	}

	return &webauthn.PublicKeyCredentialRequestOptions{
		Challenge:        webauthn.EncodeBase64URL(challenge),
		Timeout:          timeoutMillis,
		RPID:             c.rpID(),
		AllowCredentials: []webauthn.PublicKeyCredentialDescriptor{},
		UserVerification: webauthn.UserVerificationRequired,
	}, nil
}

// rpID derives the relying-party id from the current host name. Local
// development always maps to "localhost"; any other host is used verbatim.
func (c *Client) rpID() string {
	if host := c.host(); host != "" {
		return host
	}
	return localhostRPID
}

func randomBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
