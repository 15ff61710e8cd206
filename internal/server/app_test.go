package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/assistant"
	"github.com/dmitrijs2005/supportchat/internal/server/config"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct{ prompt string }

func (g *stubGateway) Complete(_ context.Context, p string) (string, error) {
	g.prompt = p
	return "Shipping takes 3-5 business days.", nil
}

type closeCountingRepos struct {
	*repomanager.MemoryRepositoryManager
	closed int
}

func (c *closeCountingRepos) Close(ctx context.Context) error {
	c.closed++
	return c.MemoryRepositoryManager.Close(ctx)
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "memory://"
	c.SecretKey = "test-secret"
	c.GeminiAPIKey = "test-key"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = ""
	return c
}

func withGateway(t *testing.T, gw assistant.Gateway, err error) {
	t.Helper()
	orig := newGateway
	newGateway = func(context.Context, assistant.GeminiConfig, logging.Logger) (assistant.Gateway, error) {
		return gw, err
	}
	t.Cleanup(func() { newGateway = orig })
}

func post(t *testing.T, h http.Handler, path string, body any) (int, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b)))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestNewApp_ServesChatFlow(t *testing.T) {
	gw := &stubGateway{}
	withGateway(t, gw, nil)

	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	code, body := post(t, app.Handler(), "/api/auth/signup", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	userID := body["userId"].(string)

	code, body = post(t, app.Handler(), "/api/chat/message", map[string]string{"message": "How long is shipping?", "userId": userID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Shipping takes 3-5 business days.", body["response"])
	assert.Contains(t, gw.prompt, "User: How long is shipping?")
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "redis://localhost"

	_, err := NewApp(context.Background(), c, logging.Nop())
	assert.Error(t, err)
}

func TestNewApp_ClosesStoreOnFailure(t *testing.T) {
	repos := &closeCountingRepos{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	orig := openRepositories
	openRepositories = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return repos, nil
	}
	t.Cleanup(func() { openRepositories = orig })

	withGateway(t, nil, errors.New("no key"))

	_, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant init error")
	assert.Equal(t, 1, repos.closed)
}

func TestNewApp_MissingFAQFile(t *testing.T) {
	withGateway(t, &stubGateway{}, nil)

	c := testConfig()
	c.FAQSource = t.TempDir() + "/missing.txt"

	_, err := NewApp(context.Background(), c, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faq corpus")
}

func TestServeHTTP_StopsOnCancel(t *testing.T) {
	withGateway(t, &stubGateway{}, nil)

	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.serveHTTP(ctx, cancel, lis)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ReturnsAfterCancel(t *testing.T) {
	withGateway(t, &stubGateway{}, nil)

	repos := &closeCountingRepos{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	orig := openRepositories
	openRepositories = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return repos, nil
	}
	t.Cleanup(func() { openRepositories = orig })

	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, 1, repos.closed)
}
