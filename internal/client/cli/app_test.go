package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgproxy/internal/client/client"
	"github.com/dmitrijs2005/tgproxy/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	pingErr error

	codeSessionID string
	codeErr       error

	verifyRes *client.LoginResponse
	verifyErr error

	passwordErrs []error
	passwordRes  *client.LoginResponse
	passwords    []string

	dialogs  []client.Dialog
	messages []client.Message
	sent     *client.SentResponse

	gotSession string
	gotPeer    string
	gotLimit   int
	gotText    string
	gotHash    string
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeAPI) SendCode(ctx context.Context, sessionID, phone string) (*client.CodeResponse, error) {
	if f.codeErr != nil {
		return nil, f.codeErr
	}
	return &client.CodeResponse{Success: true, PhoneCodeHash: "hash-1", SessionID: f.codeSessionID}, nil
}

func (f *fakeAPI) VerifyCode(ctx context.Context, sessionID, phone, code, hash string) (*client.LoginResponse, error) {
	f.gotSession = sessionID
	f.gotHash = hash
	return f.verifyRes, f.verifyErr
}

func (f *fakeAPI) VerifyPassword(ctx context.Context, sessionID, password string) (*client.LoginResponse, error) {
	f.passwords = append(f.passwords, password)
	if len(f.passwordErrs) > 0 {
		err := f.passwordErrs[0]
		f.passwordErrs = f.passwordErrs[1:]
		return nil, err
	}
	return f.passwordRes, nil
}

func (f *fakeAPI) Dialogs(ctx context.Context, sessionID string) ([]client.Dialog, error) {
	f.gotSession = sessionID
	return f.dialogs, nil
}

func (f *fakeAPI) Messages(ctx context.Context, sessionID, peerID string, limit int) ([]client.Message, error) {
	f.gotSession, f.gotPeer, f.gotLimit = sessionID, peerID, limit
	return f.messages, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, sessionID, peerID, text string) (*client.SentResponse, error) {
	f.gotSession, f.gotPeer, f.gotText = sessionID, peerID, text
	return f.sent, nil
}

func newTestApp(api client.Client, input string) (*App, *bytes.Buffer) {
	cfg := &config.Config{RequestTimeout: time.Second}
	var out bytes.Buffer
	return newApp(cfg, api, strings.NewReader(input), &out), &out
}

func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(pw) == 0 {
			return nil, errors.New("no more input")
		}
		p := pw[0]
		pw = pw[1:]
		return []byte(p), nil
	}
}

func TestLogin_NoPassword(t *testing.T) {
	api := &fakeAPI{
		codeSessionID: "sess-1",
		verifyRes: &client.LoginResponse{Success: true, SessionID: "sess-1",
			User: &client.User{ID: "7", FirstName: "Ann", Username: "ann"}},
	}
	app, out := newTestApp(api, "+15550100\n12345\n")

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "sess-1", app.sessionID)
	assert.Equal(t, "sess-1", api.gotSession)
	assert.Equal(t, "hash-1", api.gotHash)
	assert.Equal(t, "(@ann) ", app.getStatus())
	assert.Contains(t, out.String(), "Logged in as Ann")
}

func TestLogin_PasswordRetry(t *testing.T) {
	api := &fakeAPI{
		codeSessionID: "sess-2",
		verifyRes:     &client.LoginResponse{Requires2FA: true, Message: "Two-factor authentication required"},
		passwordErrs:  []error{&client.APIError{Status: 500, Message: "PASSWORD_HASH_INVALID"}},
		passwordRes:   &client.LoginResponse{Success: true, User: &client.User{ID: "7", FirstName: "Ann", LastName: "Lee"}},
	}
	stubPasswords(t, "wrong", "right")
	app, out := newTestApp(api, "+15550100\n12345\n")

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, []string{"wrong", "right"}, api.passwords)
	assert.Equal(t, "(Ann Lee) ", app.getStatus())
	assert.Contains(t, out.String(), "Password rejected: PASSWORD_HASH_INVALID")
}

func TestLogin_PasswordAttemptsExhausted(t *testing.T) {
	rejected := &client.APIError{Status: 500, Message: "PASSWORD_HASH_INVALID"}
	api := &fakeAPI{
		codeSessionID: "sess-3",
		verifyRes:     &client.LoginResponse{Requires2FA: true},
		passwordErrs:  []error{rejected, rejected, rejected},
	}
	stubPasswords(t, "a", "b", "c")
	app, _ := newTestApp(api, "+15550100\n12345\n")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Len(t, api.passwords, maxPasswordAttempts)
	assert.Nil(t, app.user)
}

func TestLogin_TransportErrorStopsRetry(t *testing.T) {
	api := &fakeAPI{
		codeSessionID: "sess-4",
		verifyRes:     &client.LoginResponse{Requires2FA: true},
		passwordErrs:  []error{fmt.Errorf("%w: refused", client.ErrUnavailable)},
	}
	stubPasswords(t, "a", "b")
	app, _ := newTestApp(api, "+15550100\n12345\n")

	err := app.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Len(t, api.passwords, 1)
}

func TestLogin_SendCodeError(t *testing.T) {
	api := &fakeAPI{codeErr: &client.APIError{Status: 400, Message: "Missing required field: phoneNumber"}}
	app, _ := newTestApp(api, "\n")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send code")
	assert.Empty(t, app.sessionID)
}

func TestCommands_RequireSession(t *testing.T) {
	app, _ := newTestApp(&fakeAPI{}, "")
	ctx := context.Background()

	assert.ErrorIs(t, app.Dialogs(ctx), errNotLoggedIn)
	assert.ErrorIs(t, app.Messages(ctx, []string{"me"}), errNotLoggedIn)
	assert.ErrorIs(t, app.Send(ctx, []string{"me"}), errNotLoggedIn)
	assert.ErrorIs(t, app.Session(ctx), errNotLoggedIn)
	assert.False(t, app.isLoggedIn())
}

func TestDialogs_Prints(t *testing.T) {
	api := &fakeAPI{dialogs: []client.Dialog{
		{ID: "-1001", Name: "News", IsChannel: true, LastMessage: "line one\nline two", Date: 0},
		{ID: "7", Name: "Ann", IsUser: true, UnreadCount: 3},
	}}
	app, out := newTestApp(api, "")
	app.sessionID = "s"

	require.NoError(t, app.Dialogs(context.Background()))
	s := out.String()
	assert.Contains(t, s, "LAST MESSAGE")
	assert.Contains(t, s, "channel")
	assert.Contains(t, s, "line one line two")
	assert.Contains(t, s, "Ann")
}

func TestMessages_Args(t *testing.T) {
	api := &fakeAPI{messages: []client.Message{
		{ID: 2, Text: "second", Out: true},
		{ID: 1, Text: "first"},
	}}
	app, out := newTestApp(api, "")
	app.sessionID = "s"
	ctx := context.Background()

	require.Error(t, app.Messages(ctx, nil))
	require.Error(t, app.Messages(ctx, []string{"me", "ten"}))

	require.NoError(t, app.Messages(ctx, []string{"@ann"}))
	assert.Equal(t, "@ann", api.gotPeer)
	assert.Equal(t, 20, api.gotLimit)

	require.NoError(t, app.Messages(ctx, []string{"@ann", "5"}))
	assert.Equal(t, 5, api.gotLimit)

	s := out.String()
	assert.Less(t, strings.Index(s, "first"), strings.Index(s, "second"))
	assert.Contains(t, s, "#2 > second")
}

func TestSend(t *testing.T) {
	api := &fakeAPI{sent: &client.SentResponse{Success: true, MessageID: 99}}
	app, out := newTestApp(api, "hello\nthere\n\n")
	app.sessionID = "s"

	require.NoError(t, app.Send(context.Background(), []string{"me"}))
	assert.Equal(t, "hello\nthere", api.gotText)
	assert.Equal(t, "me", api.gotPeer)
	assert.Contains(t, out.String(), "Sent message #99")
}

func TestSend_Empty(t *testing.T) {
	api := &fakeAPI{}
	app, _ := newTestApp(api, "\n")
	app.sessionID = "s"

	require.Error(t, app.Send(context.Background(), []string{"me"}))
	assert.Empty(t, api.gotText)
}

func TestSessionPingLogout(t *testing.T) {
	api := &fakeAPI{}
	app, out := newTestApp(api, "")
	app.sessionID = "abc"
	ctx := context.Background()

	require.NoError(t, app.Session(ctx))
	require.NoError(t, app.Ping(ctx))
	require.NoError(t, app.Logout(ctx))
	assert.Empty(t, app.sessionID)
	assert.Contains(t, out.String(), "abc\n")
	assert.Contains(t, out.String(), "Server is reachable")

	api.pingErr = client.ErrUnavailable
	require.ErrorIs(t, app.Ping(ctx), client.ErrUnavailable)
}

func TestWithTimeout_NoLimit(t *testing.T) {
	app, _ := newTestApp(&fakeAPI{}, "")
	app.config.RequestTimeout = 0
	ctx, cancel := app.withTimeout(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
