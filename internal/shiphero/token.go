package shiphero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/resilience"
)

// ErrNoRefreshToken is returned when no refresh token has been configured
var ErrNoRefreshToken = errors.New("no refresh token configured")

// RefreshTokenSource supplies the stored long-lived refresh token
type RefreshTokenSource interface {
	RefreshToken(ctx context.Context) (string, error)
}

// TokenManagerConfig holds token manager configuration
type TokenManagerConfig struct {
	AuthURL string
	// RefreshMargin is how long before expiry a token counts as stale
	RefreshMargin time.Duration
	// CheckInterval is how often the background loop looks for stale tokens
	CheckInterval time.Duration
}

// DefaultTokenManagerConfig returns sensible defaults
func DefaultTokenManagerConfig(authURL string) *TokenManagerConfig {
	return &TokenManagerConfig{
		AuthURL:       authURL,
		RefreshMargin: 5 * time.Minute,
		CheckInterval: time.Minute,
	}
}

// TokenManager exchanges the stored refresh token for short-lived access
// tokens and keeps them fresh with an explicit background loop. Lifecycle is
// owned by the process: Start and Stop, no global timers.
type TokenManager struct {
	config     *TokenManagerConfig
	source     RefreshTokenSource
	httpClient *http.Client
	logger     *logging.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewTokenManager creates a token manager
func NewTokenManager(config *TokenManagerConfig, source RefreshTokenSource, logger *logging.Logger) *TokenManager {
	return &TokenManager{
		config: config,
		source: source,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.WithComponent("token-manager"),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// GetValidAccessToken returns the cached token, refreshing when missing or
// stale. Implements TokenProvider.
func (m *TokenManager) GetValidAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken != "" && time.Until(m.expiresAt) > m.config.RefreshMargin {
		return m.accessToken, nil
	}

	if err := m.refreshLocked(ctx); err != nil {
		return "", err
	}
	return m.accessToken, nil
}

// Start launches the proactive refresh loop. The loop refreshes stale tokens
// ahead of demand so finalization runs do not pay the refresh latency.
func (m *TokenManager) Start(ctx context.Context) {
	go func() {
		defer close(m.doneCh)

		ticker := time.NewTicker(m.config.CheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.mu.Lock()
				stale := m.accessToken == "" || time.Until(m.expiresAt) <= m.config.RefreshMargin
				if stale {
					if err := m.refreshLocked(ctx); err != nil {
						m.logger.WithError(err).WarnContext(ctx, "background token refresh failed")
					}
				}
				m.mu.Unlock()
			}
		}
	}()
}

// Stop terminates the refresh loop and waits for it to exit
func (m *TokenManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
	<-m.doneCh
}

// refreshLocked exchanges the refresh token for a new access token. Caller
// must hold m.mu.
func (m *TokenManager) refreshLocked(ctx context.Context) error {
	refreshToken, err := m.source.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to load refresh token: %w", err)
	}
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.RetryableErrors = func(err error) bool {
		// Transport errors are worth retrying during refresh; rejections are not
		var rejection *refreshRejectedError
		return !errors.As(err, &rejection)
	}

	result, err := resilience.RetryWithResult(ctx, retryCfg, func() (*refreshResponse, error) {
		return m.exchange(ctx, refreshToken)
	})
	if err != nil {
		return err
	}

	m.accessToken = result.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	m.logger.InfoContext(ctx, "access token refreshed", "expires_at", m.expiresAt.UTC().Format(time.RFC3339))

	return nil
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type refreshRejectedError struct {
	status int
	body   string
}

func (e *refreshRejectedError) Error() string {
	return fmt.Sprintf("token refresh rejected with status %d: %s", e.status, e.body)
}

func (m *TokenManager) exchange(ctx context.Context, refreshToken string) (*refreshResponse, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.AuthURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &refreshRejectedError{status: resp.StatusCode, body: string(respBody)}
		}
		return nil, fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed refreshResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if parsed.AccessToken == "" {
		return nil, &refreshRejectedError{status: resp.StatusCode, body: "response carried no access token"}
	}

	return &parsed, nil
}

// StaticTokenProvider returns a fixed token. Used by tests and the proxy
// when a caller supplies its own token.
type StaticTokenProvider string

// GetValidAccessToken implements TokenProvider
func (s StaticTokenProvider) GetValidAccessToken(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNoRefreshToken
	}
	return string(s), nil
}
