package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/pawconnect-server/internal/mocks"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/repository/memory"
	"github.com/dtroode/pawconnect-server/internal/testutil"
	"github.com/dtroode/pawconnect-server/internal/token"
)

const (
	testBaseURL  = "http://paw.test"
	testTokenTTL = 15 * time.Minute
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// outbox captures notifications handed to a mocked notifier.
type outbox struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (o *outbox) record(args mock.Arguments) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, args.Get(1).(model.Notification))
}

func (o *outbox) last(t *testing.T) model.Notification {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no notification sent")
	return o.sent[len(o.sent)-1]
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

// tokenFrom extracts the raw token value from a link the service built.
func tokenFrom(t *testing.T, n model.Notification) string {
	t.Helper()
	for _, prefix := range []string{testBaseURL + "/verify?token=", testBaseURL + "/reset/"} {
		if len(n.Link) > len(prefix) && n.Link[:len(prefix)] == prefix {
			return n.Link[len(prefix):]
		}
	}
	t.Fatalf("unexpected link %q", n.Link)
	return ""
}

type authEnv struct {
	auth     *Auth
	store    *memory.Store
	tokens   *TokenService
	sessions *token.JWT
	clock    *testutil.Clock
	outbox   *outbox
	notifier *mocks.Notifier
}

// newAuthEnv wires Auth over the in-memory store with a real hasher and
// session manager and a mocked notifier that records what it receives.
func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	store := memory.NewStore()
	clock := testutil.NewClock(testStart)
	log := testutil.MakeNoopLogger()

	tokens := NewTokenService(store.Stores().Tokens, testTokenTTL, log)
	tokens.now = clock.Now

	sessions := token.NewJWT("test-secret", time.Hour, "pawconnect")

	box := &outbox{}
	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.Anything).Run(box.record).Return(nil).Maybe()

	auth := NewAuth(store.Stores().Users, store, tokens, sessions, NewBcryptHasher(bcrypt.MinCost), notifier, testBaseURL+"/", log)

	return &authEnv{
		auth:     auth,
		store:    store,
		tokens:   tokens,
		sessions: sessions,
		clock:    clock,
		outbox:   box,
		notifier: notifier,
	}
}

func (e *authEnv) signUp(t *testing.T, email, username string) model.User {
	t.Helper()
	u, err := e.auth.SignUp(context.Background(), SignUpInput{
		Name:     "Test " + username,
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (e *authEnv) session(t *testing.T, email, password string) model.Session {
	t.Helper()
	res, err := e.auth.SignIn(context.Background(), SignInInput{Email: email, Password: password})
	require.NoError(t, err)
	s, err := e.sessions.Parse(res.Token)
	require.NoError(t, err)
	return s
}

// seedAdmin creates the demonstration accounts, including the administrator
// admin@pawconnect.com with password admin123.
func (e *authEnv) seedAdmin(t *testing.T) {
	t.Helper()
	seeded, err := NewSeeder(e.store, NewBcryptHasher(bcrypt.MinCost), testutil.MakeNoopLogger()).Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
}
