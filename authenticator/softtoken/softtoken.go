// Package softtoken implements an in-process software platform
// authenticator. It stands in for the operating system's biometric
// authenticator: it owns the key material, simulates the user-verification
// prompt, keeps resident credentials in memory for the lifetime of the
// process, and emits registration and assertion payloads shaped exactly like
// a browser's PublicKeyCredential JSON.
package softtoken

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/ldclabs/cose/iana"
	cosekey "github.com/ldclabs/cose/key/ecdsa"
	"golang.org/x/crypto/hkdf"

	"github.com/aegisbank/passkey/protocol/webauthn"
)

const (
	secretLength       = 32
	credentialIDLength = 32
	nonceLength        = 16
)

// UVPrompt simulates the platform's user-verification gesture. Returning an
// error denies the ceremony; a plain error surfaces as NotAllowedError.
type UVPrompt func(ctx context.Context, rpID string) error

// Token is a software platform authenticator.
type Token struct {
	aaguid   uuid.UUID
	secret   []byte
	origin   string
	uvPrompt UVPrompt
	encMode  cbor.EncMode

	mu    sync.Mutex
	creds map[string][]*residentCredential
}

type residentCredential struct {
	id         []byte
	rpID       string
	userHandle []byte
	userName   string
	privateKey *ecdsa.PrivateKey
	signCount  uint32
	createdAt  time.Time
}

// Option configures a Token.
type Option func(*Token)

// WithAAGUID sets the authenticator model identifier.
func WithAAGUID(id uuid.UUID) Option {
	return func(t *Token) { t.aaguid = id }
}

// WithUVPrompt replaces the user-verification hook. The default approves
// every prompt.
func WithUVPrompt(fn UVPrompt) Option {
	return func(t *Token) { t.uvPrompt = fn }
}

// New creates a software authenticator bound to the given web origin.
func New(origin string, opts ...Option) (*Token, error) {
	secret := make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}

	encMode, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR encoding mode: %w", err)
	}

	t := &Token{
		aaguid:   uuid.New(),
		secret:   secret,
		origin:   origin,
		uvPrompt: func(context.Context, string) error { return nil },
		encMode:  encMode,
		creds:    make(map[string][]*residentCredential),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Supported reports WebAuthn capability. A software token always has it.
func (t *Token) Supported() bool { return true }

// Available reports the user-verifying platform authenticator probe.
func (t *Token) Available(_ context.Context) (bool, error) { return true, nil }

// Create runs a registration ceremony: validates the requested options,
// performs user verification, generates a P-256 key pair, and returns an
// attestation-object payload in the "none" format.
func (t *Token) Create(ctx context.Context, options *webauthn.PublicKeyCredentialCreationOptions) (*webauthn.RegistrationCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameAbort, "the ceremony was aborted")
	}
	if options == nil || options.RP.ID == "" {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameConstraint, "relying party id is required")
	}
	if !supportsES256(options.PubKeyCredParams) {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameNotSupported, "none of the requested signature algorithms are supported")
	}
	if _, err := webauthn.DecodeBase64URL(options.Challenge); err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "malformed challenge: "+err.Error())
	}
	userHandle, err := webauthn.DecodeBase64URL(options.User.ID)
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "malformed user handle: "+err.Error())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, desc := range options.ExcludeCredentials {
		if t.lookupLocked(options.RP.ID, desc.ID) != nil {
			return nil, webauthn.NewCeremonyError(webauthn.ErrNameInvalidState, "a passkey already exists on this authenticator for this account")
		}
	}

	if err := t.verifyUser(ctx, options.RP.ID); err != nil {
		return nil, err
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "generate credential key: "+err.Error())
	}

	rpIDHash := sha256.Sum256([]byte(options.RP.ID))
	credentialID, err := t.newCredentialID(rpIDHash[:])
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "derive credential id: "+err.Error())
	}

	coseKeyBytes, err := t.encodePublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "encode credential public key: "+err.Error())
	}

	attested := make([]byte, 0, 16+2+len(credentialID)+len(coseKeyBytes))
	attested = append(attested, t.aaguid[:]...)
	attested = binary.BigEndian.AppendUint16(attested, uint16(len(credentialID)))
	attested = append(attested, credentialID...)
	attested = append(attested, coseKeyBytes...)

	flags := byte(webauthn.FlagUserPresent | webauthn.FlagUserVerified | webauthn.FlagAttestedCredentialData)
	authData := buildAuthData(rpIDHash[:], flags, 0, attested)

	attObj, err := t.encMode.Marshal(webauthn.AttestationObject{
		AuthData: authData,
		Fmt:      webauthn.AttestationFormatNone,
		AttStmt:  map[string]any{},
	})
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "encode attestation object: "+err.Error())
	}

	clientData, err := json.Marshal(webauthn.CollectedClientData{
		Type:      webauthn.CeremonyTypeCreate,
		Challenge: options.Challenge,
		Origin:    t.origin,
	})
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "encode client data: "+err.Error())
	}

	t.creds[options.RP.ID] = append(t.creds[options.RP.ID], &residentCredential{
		id:         credentialID,
		rpID:       options.RP.ID,
		userHandle: userHandle,
		userName:   options.User.Name,
		privateKey: privateKey,
		createdAt:  time.Now(),
	})

	encodedID := webauthn.EncodeBase64URL(credentialID)
	return &webauthn.RegistrationCredential{
		ID:                      encodedID,
		RawID:                   encodedID,
		Type:                    webauthn.CredentialTypePublicKey,
		AuthenticatorAttachment: webauthn.AttachmentPlatform,
		Response: webauthn.AuthenticatorAttestationResponse{
			ClientDataJSON:    webauthn.EncodeBase64URL(clientData),
			AttestationObject: webauthn.EncodeBase64URL(attObj),
			Transports:        []string{"internal"},
		},
	}, nil
}

// Get runs an authentication ceremony. An empty allow list offers the most
// recently created resident credential for the relying party; a non-empty
// allow list restricts the choice to the listed ids.
func (t *Token) Get(ctx context.Context, options *webauthn.PublicKeyCredentialRequestOptions) (*webauthn.AssertionCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameAbort, "the ceremony was aborted")
	}
	if options == nil || options.RPID == "" {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameConstraint, "relying party id is required")
	}
	if _, err := webauthn.DecodeBase64URL(options.Challenge); err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "malformed challenge: "+err.Error())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var credential *residentCredential
	if len(options.AllowCredentials) == 0 {
		list := t.creds[options.RPID]
		if len(list) == 0 {
			return nil, webauthn.NewCeremonyError(webauthn.ErrNameNotAllowed, "no passkey is available for this site")
		}
		credential = list[len(list)-1]
	} else {
		for _, desc := range options.AllowCredentials {
			if rec := t.lookupLocked(options.RPID, desc.ID); rec != nil {
				credential = rec
				break
			}
		}
		if credential == nil {
			return nil, webauthn.NewCeremonyError(webauthn.ErrNameNotAllowed, "no passkey matches the allowed credentials")
		}
	}

	if err := t.verifyUser(ctx, options.RPID); err != nil {
		return nil, err
	}

	credential.signCount++

	rpIDHash := sha256.Sum256([]byte(options.RPID))
	flags := byte(webauthn.FlagUserPresent | webauthn.FlagUserVerified)
	authData := buildAuthData(rpIDHash[:], flags, credential.signCount, nil)

	clientData, err := json.Marshal(webauthn.CollectedClientData{
		Type:      webauthn.CeremonyTypeGet,
		Challenge: options.Challenge,
		Origin:    t.origin,
	})
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "encode client data: "+err.Error())
	}

	clientDataHash := sha256.Sum256(clientData)
	digest := sha256.Sum256(append(authData, clientDataHash[:]...))
	signature, err := ecdsa.SignASN1(rand.Reader, credential.privateKey, digest[:])
	if err != nil {
		return nil, webauthn.NewCeremonyError(webauthn.ErrNameUnknown, "sign assertion: "+err.Error())
	}

	encodedID := webauthn.EncodeBase64URL(credential.id)
	return &webauthn.AssertionCredential{
		ID:                      encodedID,
		RawID:                   encodedID,
		Type:                    webauthn.CredentialTypePublicKey,
		AuthenticatorAttachment: webauthn.AttachmentPlatform,
		Response: webauthn.AuthenticatorAssertionResponse{
			ClientDataJSON:    webauthn.EncodeBase64URL(clientData),
			AuthenticatorData: webauthn.EncodeBase64URL(authData),
			Signature:         webauthn.EncodeBase64URL(signature),
			UserHandle:        webauthn.EncodeBase64URL(credential.userHandle),
		},
	}, nil
}

// CredentialInfo describes a resident credential held by the token.
type CredentialInfo struct {
	ID        string
	RPID      string
	UserName  string
	SignCount uint32
	CreatedAt time.Time
}

// Credentials lists the resident credentials stored for a relying party, in
// creation order.
func (t *Token) Credentials(rpID string) []CredentialInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.creds[rpID]
	infos := make([]CredentialInfo, 0, len(list))
	for _, rec := range list {
		infos = append(infos, CredentialInfo{
			ID:        webauthn.EncodeBase64URL(rec.id),
			RPID:      rec.rpID,
			UserName:  rec.userName,
			SignCount: rec.signCount,
			CreatedAt: rec.createdAt,
		})
	}
	return infos
}

// verifyUser runs the user-verification prompt and normalizes its failures
// into ceremony errors. The caller holds the token mutex.
func (t *Token) verifyUser(ctx context.Context, rpID string) error {
	if err := t.uvPrompt(ctx, rpID); err != nil {
		var cerr *webauthn.CeremonyError
		if errors.As(err, &cerr) {
			return cerr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return webauthn.NewCeremonyError(webauthn.ErrNameAbort, "the ceremony was aborted")
		}
		return webauthn.NewCeremonyError(webauthn.ErrNameNotAllowed, err.Error())
	}
	return nil
}

// newCredentialID derives a credential id from a fresh nonce and an
// HKDF tag keyed by the token secret and bound to the relying party, so ids
// are recognizable as this token's without storing them elsewhere.
func (t *Token) newCredentialID(rpIDHash []byte) ([]byte, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	kdf := hkdf.New(sha256.New, t.secret, rpIDHash, append([]byte("credential-id:"), nonce...))
	tag := make([]byte, credentialIDLength-nonceLength)
	if _, err := io.ReadFull(kdf, tag); err != nil {
		return nil, err
	}
	return append(nonce, tag...), nil
}

// encodePublicKey renders the credential public key as a CTAP2-canonical
// COSE_Key with the ES256 algorithm set.
func (t *Token) encodePublicKey(pub *ecdsa.PublicKey) ([]byte, error) {
	coseKey, err := cosekey.KeyFromPublic(pub)
	if err != nil {
		return nil, err
	}
	if err := coseKey.Set(iana.KeyParameterAlg, iana.AlgorithmES256); err != nil {
		return nil, err
	}
	delete(coseKey, iana.KeyParameterKid)

	return t.encMode.Marshal(coseKey)
}

func (t *Token) lookupLocked(rpID, encodedID string) *residentCredential {
	id, err := webauthn.DecodeBase64URL(encodedID)
	if err != nil {
		return nil
	}
	for _, rec := range t.creds[rpID] {
		if bytes.Equal(rec.id, id) {
			return rec
		}
	}
	return nil
}

func supportsES256(params []webauthn.PublicKeyCredentialParameters) bool {
	for _, p := range params {
		if p.Type == webauthn.CredentialTypePublicKey && p.Alg == webauthn.AlgES256 {
			return true
		}
	}
	return false
}

func buildAuthData(rpIDHash []byte, flags byte, signCount uint32, attested []byte) []byte {
	data := make([]byte, 0, len(rpIDHash)+1+4+len(attested))
	data = append(data, rpIDHash...)
	data = append(data, flags)
	data = binary.BigEndian.AppendUint32(data, signCount)
	data = append(data, attested...)
	return data
}
