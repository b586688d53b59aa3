package pcm

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Tokens are reused until this close to expiry.
const refreshWindow = 5 * time.Minute

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Auth acquires and caches client_credentials tokens for the destination
// API. Clock and storage are injected so expiry behavior is testable.
type Auth struct {
	APIURL       string
	ClientID     string
	ClientSecret string
	Store        TokenStore
	Now          func() time.Time
}

func (a *Auth) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// AccessToken returns a valid bearer token, hitting the token endpoint only
// when the cached one is missing or within the refresh window.
func (a *Auth) AccessToken() (string, error) {
	now := a.now()

	if tok, ok := a.Store.Load(); ok && now.Before(tok.ExpiresAt.Add(-refreshWindow)) {
		return tok.AccessToken, nil
	}

	log.Println("Requesting new access token...")

	form := url.Values{
		"client_id":     {a.ClientID},
		"client_secret": {a.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	resp, err := httpClient.Post(
		a.APIURL+"/oauth/access_token",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.ExpiresIn == 0 {
		tr.ExpiresIn = 3600
	}

	tok := CachedToken{
		AccessToken: tr.AccessToken,
		ExpiresAt:   now.Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	if err := a.Store.Save(tok); err != nil {
		log.Printf("Failed to cache access token: %v", err)
	}

	return tok.AccessToken, nil
}
