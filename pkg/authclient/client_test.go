package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreFixture() *CredentialStore {
	return NewCredentialStore(NewMemoryStore(), NewMemoryStore())
}

func storedCreds(t *testing.T, store *CredentialStore, expiresIn time.Duration, remember bool) {
	t.Helper()
	err := store.SetTokens(Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(expiresIn),
		UserID:       "u1",
	}, remember)
	require.NoError(t, err)
}

func TestSessionValid_SkewBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiresIn time.Duration
		want      bool
	}{
		{"well before expiry", time.Hour, true},
		{"one second outside the skew", ValiditySkew + time.Second, true},
		{"inside the skew", ValiditySkew - time.Second, false},
		{"exactly at the skew", ValiditySkew, false},
		{"already expired", -time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStoreFixture()
			require.NoError(t, store.SetTokens(Credentials{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresAt:    now.Add(tc.expiresIn),
			}, false))

			assert.Equal(t, tc.want, store.SessionValid(now))
		})
	}
}

func TestSessionValid_MissingPieces(t *testing.T) {
	store := newStoreFixture()
	assert.False(t, store.SessionValid(time.Now()), "empty store")

	require.NoError(t, store.session.Set(keyAccess, "access"))
	assert.False(t, store.SessionValid(time.Now()), "no expiry")

	require.NoError(t, store.session.Set(keyExpires, "not-a-time"))
	assert.False(t, store.SessionValid(time.Now()), "bad expiry")
}

func TestCredentialStore_ScopeFallback(t *testing.T) {
	store := newStoreFixture()

	// Session written without remember, then the flag flips to durable:
	// reads must still find the session-scoped tokens.
	storedCreds(t, store, time.Hour, false)
	require.NoError(t, store.durable.Set(keyRemember, "1"))

	token, ok := store.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "access-1", token)
}

func TestCredentialStore_RememberSelectsDurable(t *testing.T) {
	store := newStoreFixture()
	storedCreds(t, store, time.Hour, true)

	_, inDurable := store.durable.Get(keyAccess)
	_, inSession := store.session.Get(keyAccess)
	assert.True(t, inDurable)
	assert.False(t, inSession)

	store.Clear()
	_, ok := store.AccessToken()
	assert.False(t, ok)
	assert.False(t, store.Remember())
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(keyAccess, "persisted"))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok := second.Get(keyAccess)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)

	require.NoError(t, second.Delete(keyAccess))
	_, ok = second.Get(keyAccess)
	assert.False(t, ok)
}

func tokenJSON(access string, expiresAt time.Time) []byte {
	payload := map[string]string{
		"accessToken":  access,
		"refreshToken": "refresh-next",
		"expiresAt":    expiresAt.Format(time.RFC3339),
		"userId":       "u1",
	}
	out, _ := json.Marshal(payload)
	return out
}

func TestClient_ConcurrentRefreshIsShared(t *testing.T) {
	var refreshCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			atomic.AddInt64(&refreshCalls, 1)
			time.Sleep(50 * time.Millisecond) // hold callers in flight
			w.Write(tokenJSON("access-fresh", time.Now().Add(time.Hour)))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	store := newStoreFixture()
	storedCreds(t, store, 5*time.Second, false) // inside the skew
	client := New(srv.URL, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, client.refreshIfNeeded(context.Background(), false))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
	token, _ := store.AccessToken()
	assert.Equal(t, "access-fresh", token)
}

func TestClient_UnauthorizedRetriesExactlyOnce(t *testing.T) {
	var apiCalls, refreshCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			atomic.AddInt64(&refreshCalls, 1)
			w.Write(tokenJSON("access-fresh", time.Now().Add(time.Hour)))
		case "/api/v1/employees":
			n := atomic.AddInt64(&apiCalls, 1)
			if n == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "Bearer access-fresh", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	store := newStoreFixture()
	storedCreds(t, store, time.Hour, false)
	client := New(srv.URL, store)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/employees", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), atomic.LoadInt64(&apiCalls))
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
}

func TestClient_PersistentUnauthorizedIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			w.Write(tokenJSON("access-fresh", time.Now().Add(time.Hour)))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	store := newStoreFixture()
	storedCreds(t, store, time.Hour, false)
	client := New(srv.URL, store)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/employees", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The retry happened once; the second 401 is handed back as-is.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClient_FailedForcedRefreshClearsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	store := newStoreFixture()
	storedCreds(t, store, time.Hour, false)
	client := New(srv.URL, store)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/employees", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The caller gets the original 401 back; only the stored session is gone.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, ok := store.AccessToken()
	assert.False(t, ok, "credentials must be cleared after a failed forced refresh")
}

func TestClient_LoginStoresCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jdoe", body["userNameOrEmail"])
		w.Write(tokenJSON("access-login", time.Now().Add(time.Hour)))
	}))
	defer srv.Close()

	store := newStoreFixture()
	client := New(srv.URL, store)

	creds, err := client.Login(context.Background(), "jdoe", "password123", true)
	require.NoError(t, err)
	assert.Equal(t, "access-login", creds.AccessToken)
	assert.True(t, store.Remember())
	assert.True(t, store.SessionValid(time.Now()))
}
