package pcm

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	tok   CachedToken
	ok    bool
	saves int
}

func (m *memStore) Load() (CachedToken, bool) { return m.tok, m.ok }

func (m *memStore) Save(tok CachedToken) error {
	m.tok, m.ok = tok, true
	m.saves++
	return nil
}

func tokenServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))
		*calls++
		fmt.Fprintf(w, `{"access_token":"fresh-token-%d","expires_in":3600}`, *calls)
	}))
}

func TestAccessTokenUsesCacheUntilRefreshWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	srv := tokenServer(t, &calls)
	defer srv.Close()

	store := &memStore{
		tok: CachedToken{AccessToken: "cached", ExpiresAt: now.Add(time.Hour)},
		ok:  true,
	}
	a := &Auth{
		APIURL:       srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		Store:        store,
		Now:          func() time.Time { return now },
	}

	tok, err := a.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "cached", tok)
	assert.Equal(t, 0, calls, "a fresh cached token skips the endpoint")
}

func TestAccessTokenRefreshesNearExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	srv := tokenServer(t, &calls)
	defer srv.Close()

	store := &memStore{
		// inside the 5 minute refresh window
		tok: CachedToken{AccessToken: "stale", ExpiresAt: now.Add(3 * time.Minute)},
		ok:  true,
	}
	a := &Auth{
		APIURL: srv.URL,
		Store:  store,
		Now:    func() time.Time { return now },
	}

	tok, err := a.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token-1", tok)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, now.Add(time.Hour), store.tok.ExpiresAt)
}

func TestAccessTokenColdCache(t *testing.T) {
	calls := 0
	srv := tokenServer(t, &calls)
	defer srv.Close()

	store := &memStore{}
	a := &Auth{APIURL: srv.URL, Store: store}

	tok, err := a.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token-1", tok)
	assert.True(t, store.ok, "fetched token is cached for the next run")

	// second call hits the cache, not the endpoint
	tok, err = a.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token-1", tok)
	assert.Equal(t, 1, calls)
}

func TestAccessTokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := &Auth{APIURL: srv.URL, Store: &memStore{}}

	_, err := a.AccessToken()
	assert.Error(t, err)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/.token_cache.json"
	store := &FileTokenStore{Path: path}

	_, ok := store.Load()
	assert.False(t, ok, "missing cache file is a miss, not an error")

	want := CachedToken{
		AccessToken: "tok",
		ExpiresAt:   time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(want))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
}
