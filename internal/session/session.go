package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/metrics"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/store"
)

// ErrInvalidCredentials distinguishes a rejected login from an unreachable
// SUAP, so the UI can tell "wrong password" apart from "offline".
var ErrInvalidCredentials = errors.New("matrícula ou senha inválidos")

// Manager owns the SUAP bearer/refresh token pair. Tokens live in the store;
// an absent access token means logged out no matter what else is cached.
type Manager struct {
	store *store.Store
	http  *http.Client
	base  string
	log   *zap.SugaredLogger

	// refreshMu coalesces concurrent refreshes: simultaneous 401s share one
	// refresh call instead of invalidating each other's rotated tokens.
	refreshMu sync.Mutex

	onForcedLogout func()
}

func New(st *store.Store, baseURL string, log *zap.SugaredLogger) *Manager {
	return &Manager{
		store: st,
		http:  &http.Client{Timeout: 30 * time.Second},
		base:  strings.TrimRight(baseURL, "/"),
		log:   log,
	}
}

// OnForcedLogout registers a hook fired after an unrecoverable 401 wipes the
// session (the orchestrator uses it to drop in-memory state).
func (m *Manager) OnForcedLogout(fn func()) { m.onForcedLogout = fn }

func (m *Manager) LoggedIn() bool {
	_, ok := m.store.Get(store.KeyAccessToken)
	return ok
}

func (m *Manager) Username() string {
	u, _ := m.store.Get(store.KeyUsername)
	return u
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login posts credentials to /api/token/pair and stores the resulting pair.
// On failure the previous session, if any, is left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.base+"/api/token/pair", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("suap unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("token pair: http %d", resp.StatusCode)
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil || pair.Access == "" {
		return fmt.Errorf("token pair: bad payload")
	}

	if err := m.store.Set(store.KeyAccessToken, pair.Access); err != nil {
		return err
	}
	if err := m.store.Set(store.KeyRefreshToken, pair.Refresh); err != nil {
		return err
	}
	if err := m.store.Set(store.KeyUsername, username); err != nil {
		return err
	}
	m.log.Infow("logged in", "username", username)
	return nil
}

// Refresh trades the stored refresh token for a new access token. It reports
// success; on any failure the stored tokens are left as they were. Concurrent
// callers share one in-flight attempt.
func (m *Manager) Refresh(ctx context.Context) bool {
	before, _ := m.store.Get(store.KeyAccessToken)

	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another request may have refreshed while we waited on the lock.
	if now, ok := m.store.Get(store.KeyAccessToken); ok && now != before {
		return true
	}

	refresh, ok := m.store.Get(store.KeyRefreshToken)
	if !ok || refresh == "" {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return false
	}

	body, _ := json.Marshal(map[string]string{"refresh": refresh})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.base+"/api/token/refresh", bytes.NewReader(body))
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		m.log.Warnw("token refresh failed (offline?)", "err", err)
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		m.log.Warnw("token refresh rejected", "status", resp.StatusCode)
		metrics.TokenRefreshes.WithLabelValues("rejected").Inc()
		return false
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil || pair.Access == "" {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return false
	}
	if err := m.store.Set(store.KeyAccessToken, pair.Access); err != nil {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return false
	}
	if pair.Refresh != "" {
		// Upstream rotated the refresh token too.
		_ = m.store.Set(store.KeyRefreshToken, pair.Refresh)
	}
	metrics.TokenRefreshes.WithLabelValues("ok").Inc()
	m.log.Infow("access token refreshed")
	return true
}

// AuthenticatedGet issues a bearer-authenticated GET. A nil result means
// "no data": logged out, offline, HTTP failure, or an unrecoverable 401.
// On 401 it refreshes at most once and retries once; a 401 after a
// successful refresh forces a logout so the loop can never spin.
func (m *Manager) AuthenticatedGet(ctx context.Context, url string) json.RawMessage {
	token, ok := m.store.Get(store.KeyAccessToken)
	if !ok {
		return nil
	}

	status, body, err := m.get(ctx, url, token)
	if err != nil {
		m.log.Warnw("fetch failed (likely offline)", "url", url, "err", err)
		metrics.ObserveRequest("suap", false)
		return nil
	}

	if status == http.StatusUnauthorized {
		if !m.Refresh(ctx) {
			m.ForceLogout("refresh failed after 401")
			return nil
		}
		token, _ = m.store.Get(store.KeyAccessToken)
		status, body, err = m.get(ctx, url, token)
		if err != nil {
			m.log.Warnw("retry failed (likely offline)", "url", url, "err", err)
			metrics.ObserveRequest("suap", false)
			return nil
		}
		if status == http.StatusUnauthorized {
			m.ForceLogout("401 after refreshed token")
			return nil
		}
	}

	if status/100 != 2 {
		m.log.Warnw("unexpected status", "url", url, "status", status)
		metrics.ObserveRequest("suap", false)
		return nil
	}
	metrics.ObserveRequest("suap", true)
	return body
}

func (m *Manager) get(ctx context.Context, url, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// Logout drops the token pair and every cached user-data record. Display
// preferences and the Classroom token are kept.
func (m *Manager) Logout() {
	if err := m.store.Delete(store.UserDataKeys()...); err != nil {
		m.log.Errorw("logout: clearing cache", "err", err)
	}
	m.log.Infow("logged out")
}

// ForceLogout is Logout plus the hook, for unrecoverable auth failures.
// The hook runs first: it invalidates in-flight fetches so none of them can
// re-persist user data after the keys are wiped.
func (m *Manager) ForceLogout(reason string) {
	m.log.Warnw("forcing logout", "reason", reason)
	metrics.ForcedLogouts.Inc()
	if m.onForcedLogout != nil {
		m.onForcedLogout()
	}
	m.Logout()
}

// ClassroomToken returns the independently-acquired Classroom OAuth token.
func (m *Manager) ClassroomToken() (string, bool) {
	return m.store.Get(store.KeyClassroomToken)
}

func (m *Manager) SetClassroomToken(token string) error {
	return m.store.Set(store.KeyClassroomToken, token)
}
