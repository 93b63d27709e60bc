package passkey

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisbank/passkey/protocol/webauthn"
)

type stubAuthenticator struct {
	supported    bool
	available    bool
	availableErr error

	createErr error
	getErr    error

	createCalls int
	getCalls    int

	lastCreate *webauthn.PublicKeyCredentialCreationOptions
	lastGet    *webauthn.PublicKeyCredentialRequestOptions
}

func (s *stubAuthenticator) Supported() bool { return s.supported }

func (s *stubAuthenticator) Available(context.Context) (bool, error) {
	return s.available, s.availableErr
}

func (s *stubAuthenticator) Create(_ context.Context, options *webauthn.PublicKeyCredentialCreationOptions) (*webauthn.RegistrationCredential, error) {
	s.createCalls++
	s.lastCreate = options
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &webauthn.RegistrationCredential{ID: "cred-1", RawID: "cred-1", Type: webauthn.CredentialTypePublicKey}, nil
}

func (s *stubAuthenticator) Get(_ context.Context, options *webauthn.PublicKeyCredentialRequestOptions) (*webauthn.AssertionCredential, error) {
	s.getCalls++
	s.lastGet = options
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &webauthn.AssertionCredential{ID: "cred-1", RawID: "cred-1", Type: webauthn.CredentialTypePublicKey}, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRegisterSuccess(t *testing.T) {
	stub := &stubAuthenticator{supported: true, available: true}
	client := NewClient(stub, Config{RPDisplayName: "Aegis Bank", RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.True(t, result.Success)
	require.NotNil(t, result.Credential)
	assert.Nil(t, result.Err)
	assert.Equal(t, 1, stub.createCalls)
	require.NotNil(t, stub.lastCreate)
	assert.Equal(t, "alice", stub.lastCreate.User.Name)
}

func TestRegisterUnsupportedNeverInvokesCeremony(t *testing.T) {
	stub := &stubAuthenticator{supported: false}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameNotSupported, result.Err.Name)
	assert.Contains(t, result.Err.Message, "not supported")
	assert.Zero(t, stub.createCalls)
}

func TestRegisterPlatformUnavailable(t *testing.T) {
	stub := &stubAuthenticator{supported: true, available: false}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Contains(t, result.Err.Message, "platform authenticator")
	assert.Zero(t, stub.createCalls)
}

func TestRegisterProbeErrorMapsToUnavailable(t *testing.T) {
	stub := &stubAuthenticator{
		supported:    true,
		available:    true,
		availableErr: errors.New("probe blew up"),
	}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	assert.Zero(t, stub.createCalls)
}

func TestRegisterCeremonyErrorPassesThrough(t *testing.T) {
	stub := &stubAuthenticator{
		supported: true,
		available: true,
		createErr: webauthn.NewCeremonyError(webauthn.ErrNameNotAllowed, "operation timed out"),
	}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameNotAllowed, result.Err.Name)
	assert.Equal(t, "operation timed out", result.Err.Message)
}

func TestRegisterUnknownErrorIsWrapped(t *testing.T) {
	stub := &stubAuthenticator{
		supported: true,
		available: true,
		createErr: errors.New("something odd"),
	}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameUnknown, result.Err.Name)
	assert.Equal(t, "something odd", result.Err.Message)
}

func TestRegisterNilAuthenticator(t *testing.T) {
	client := NewClient(nil, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameNotSupported, result.Err.Name)
}

func TestAuthenticateSuccess(t *testing.T) {
	stub := &stubAuthenticator{supported: true, available: true}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Authenticate(context.Background(), "alice")

	require.True(t, result.Success)
	require.NotNil(t, result.Assertion)
	assert.Equal(t, 1, stub.getCalls)
	require.NotNil(t, stub.lastGet)
	assert.Empty(t, stub.lastGet.AllowCredentials)
}

func TestAuthenticateSkipsAvailabilityProbe(t *testing.T) {
	// Authentication performs the capability check only; an authenticator
	// that reports unavailable can still be asked for an assertion.
	stub := &stubAuthenticator{supported: true, available: false}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Authenticate(context.Background(), "alice")

	require.True(t, result.Success)
	assert.Equal(t, 1, stub.getCalls)
}

func TestAuthenticateUnsupported(t *testing.T) {
	stub := &stubAuthenticator{supported: false}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Authenticate(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameNotSupported, result.Err.Name)
	assert.Zero(t, stub.getCalls)
}

func TestAuthenticateCeremonyErrorPassesThrough(t *testing.T) {
	stub := &stubAuthenticator{
		supported: true,
		available: true,
		getErr:    webauthn.NewCeremonyError(webauthn.ErrNameAbort, "user dismissed the prompt"),
	}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()))

	result := client.Authenticate(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameAbort, result.Err.Name)
}

func TestRegisterRandFailureBecomesResult(t *testing.T) {
	stub := &stubAuthenticator{supported: true, available: true}
	client := NewClient(stub, Config{RPID: "localhost"}, WithLogger(quietLogger()), WithRandom(failingReader{}))

	result := client.Register(context.Background(), "alice")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, webauthn.ErrNameUnknown, result.Err.Name)
	assert.Zero(t, stub.createCalls)
}
