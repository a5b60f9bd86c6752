package shiphero

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
)

type fakeTokenSource struct {
	token string
	err   error
}

func (f *fakeTokenSource) RefreshToken(ctx context.Context) (string, error) {
	return f.token, f.err
}

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("test")
	return logging.New(cfg)
}

func TestTokenManagerRefreshesOnDemand(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-token", "expires_in": 3600}`))
	}))
	t.Cleanup(server.Close)

	manager := NewTokenManager(
		DefaultTokenManagerConfig(server.URL),
		&fakeTokenSource{token: "stored-refresh"},
		testLogger(),
	)

	token, err := manager.GetValidAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)

	// Second call uses the cache
	token, err = manager.GetValidAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTokenManagerNoRefreshToken(t *testing.T) {
	manager := NewTokenManager(
		DefaultTokenManagerConfig("http://localhost:0"),
		&fakeTokenSource{token: ""},
		testLogger(),
	)

	_, err := manager.GetValidAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestTokenManagerRejectedRefreshNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	manager := NewTokenManager(
		DefaultTokenManagerConfig(server.URL),
		&fakeTokenSource{token: "revoked"},
		testLogger(),
	)

	_, err := manager.GetValidAccessToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx rejections must not be retried")
}

func TestTokenManagerStartStop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-token", "expires_in": 3600}`))
	}))
	t.Cleanup(server.Close)

	config := DefaultTokenManagerConfig(server.URL)
	config.CheckInterval = 10 * time.Millisecond

	manager := NewTokenManager(config, &fakeTokenSource{token: "stored-refresh"}, testLogger())
	manager.Start(context.Background())

	done := make(chan struct{})
	go func() {
		manager.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
