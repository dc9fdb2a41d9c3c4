package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/config"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/dmitrijs2005/tgproxy/internal/server/repositories/sessions"
)

type fakeClient struct {
	hash        string
	sendCodeErr error
	signInErr   error
	passwordErr error
	user        *models.User
	selfErr     error
	authorized  bool
	authErr     error
	dialogs     []remote.Dialog
	dialogsErr  error
	messages    []remote.Message
	messagesErr error
	sent        *models.SentMessage
	sendErr     error

	gotPhone    string
	gotCode     string
	gotHash     string
	gotPassword string
	gotPeer     string
	gotLimit    int
	gotText     string
	selfCalls   int
}

func (f *fakeClient) SendCode(ctx context.Context, phone string) (string, error) {
	f.gotPhone = phone
	return f.hash, f.sendCodeErr
}

func (f *fakeClient) SignIn(ctx context.Context, phone, code, hash string) error {
	f.gotPhone, f.gotCode, f.gotHash = phone, code, hash
	return f.signInErr
}

func (f *fakeClient) CheckPassword(ctx context.Context, password string) error {
	f.gotPassword = password
	return f.passwordErr
}

func (f *fakeClient) IsAuthorized(ctx context.Context) (bool, error) {
	return f.authorized, f.authErr
}

func (f *fakeClient) Self(ctx context.Context) (*models.User, error) {
	f.selfCalls++
	return f.user, f.selfErr
}

func (f *fakeClient) Dialogs(ctx context.Context, limit int) ([]remote.Dialog, error) {
	f.gotLimit = limit
	return f.dialogs, f.dialogsErr
}

func (f *fakeClient) Messages(ctx context.Context, peer string, limit int) ([]remote.Message, error) {
	f.gotPeer, f.gotLimit = peer, limit
	return f.messages, f.messagesErr
}

func (f *fakeClient) SendMessage(ctx context.Context, peer, text string) (*models.SentMessage, error) {
	f.gotPeer, f.gotText = peer, text
	return f.sent, f.sendErr
}

// fakeConnector runs fn against client and exports a fixed blob, or the
// input blob when export is empty.
type fakeConnector struct {
	client     *fakeClient
	export     models.Blob
	connectErr error

	calls   int
	gotBlob models.Blob
}

func (f *fakeConnector) Connect(ctx context.Context, blob models.Blob, fn func(ctx context.Context, c remote.Client) error) (models.Blob, error) {
	f.calls++
	f.gotBlob = blob
	if f.connectErr != nil {
		return blob, f.connectErr
	}

	err := fn(ctx, f.client)
	if f.export != "" {
		return f.export, err
	}
	return blob, err
}

// countingStore records writes on top of a memory store.
type countingStore struct {
	*sessions.MemoryRepository
	mu     sync.Mutex
	sets   int
	getErr error
	setErr error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryRepository: sessions.NewMemoryRepository()}
}

func (s *countingStore) Get(ctx context.Context, id string) (models.Blob, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.MemoryRepository.Get(ctx, id)
}

func (s *countingStore) Set(ctx context.Context, id string, blob models.Blob) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryRepository.Set(ctx, id, blob)
}

type fixture struct {
	store     *countingStore
	connector *fakeConnector
	client    *fakeClient
	auth      *AuthService
	messages  *MessageService
}

func newFixture(configured bool) *fixture {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	client := &fakeClient{}
	conn := &fakeConnector{client: client}
	store := newCountingStore()
	runner := NewSessionRunner(store, conn, configured, logging.Nop())

	return &fixture{
		store:     store,
		connector: conn,
		client:    client,
		auth:      NewAuthService(runner, logging.Nop()),
		messages:  NewMessageService(runner, cfg, logging.Nop()),
	}
}

func (f *fixture) seed(id string, blob models.Blob) {
	_ = f.store.MemoryRepository.Set(context.Background(), id, blob)
}
