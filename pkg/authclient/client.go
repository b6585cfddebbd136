package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNotAuthenticated = errors.New("no stored session")
	ErrRefreshFailed    = errors.New("session refresh failed")
)

// Client talks to the BioClock API, holding its credentials in a
// CredentialStore and refreshing them transparently.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *CredentialStore
	sf      singleflight.Group
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, creds *CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials exposes the underlying store.
func (c *Client) Credentials() *CredentialStore { return c.creds }

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type loginRequest struct {
	UserNameOrEmail string `json:"userNameOrEmail"`
	Password        string `json:"password"`
}

type tokenPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	ClientID     string `json:"clientId"`
}

func (p tokenPayload) credentials() (Credentials, error) {
	expiresAt, err := time.Parse(time.RFC3339, p.ExpiresAt)
	if err != nil {
		return Credentials{}, fmt.Errorf("bad expiresAt in token payload: %w", err)
	}
	return Credentials{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    expiresAt,
		UserID:       p.UserID,
		UserName:     p.UserName,
		DisplayName:  p.DisplayName,
		Email:        p.Email,
		ClientID:     p.ClientID,
	}, nil
}

// Login authenticates and stores the issued credentials in the scope
// the remember flag selects.
func (c *Client) Login(ctx context.Context, userNameOrEmail, password string, remember bool) (Credentials, error) {
	var payload tokenPayload
	err := c.postJSON(ctx, "/api/v1/auth/login", loginRequest{
		UserNameOrEmail: userNameOrEmail,
		Password:        password,
	}, &payload)
	if err != nil {
		return Credentials{}, err
	}

	creds, err := payload.credentials()
	if err != nil {
		return Credentials{}, err
	}
	if err := c.creds.SetTokens(creds, remember); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Logout revokes the stored refresh token and clears both storage
// scopes. The local state is cleared even when the revoke call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.creds.Clear()

	refreshToken, ok := c.creds.RefreshToken()
	if !ok {
		return nil
	}
	return c.postJSON(ctx, "/api/v1/auth/logout", map[string]string{"refreshToken": refreshToken}, nil)
}

// refreshIfNeeded refreshes the stored tokens when forced or when the
// session is inside the expiry skew. Concurrent callers share one
// in-flight refresh.
func (c *Client) refreshIfNeeded(ctx context.Context, force bool) error {
	if _, ok := c.creds.ExpiresAt(); !ok {
		return nil
	}
	if !force && c.creds.SessionValid(c.now()) {
		return nil
	}

	_, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		refreshToken, ok := c.creds.RefreshToken()
		if !ok {
			c.creds.Clear()
			return nil, nil
		}
		remember := c.creds.Remember()

		var payload tokenPayload
		err := c.postJSON(ctx, "/api/v1/auth/refresh", map[string]string{"refreshToken": refreshToken}, &payload)
		if err != nil {
			return nil, err
		}
		creds, err := payload.credentials()
		if err != nil {
			return nil, err
		}
		return nil, c.creds.SetTokens(creds, remember)
	})
	return err
}

// Do sends an authenticated request. The access token is refreshed a
// moment before expiry; a 401 response forces one refresh and exactly
// one retry. When the forced refresh fails the stored credentials are
// cleared and the original 401 response is returned to the caller.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := c.refreshIfNeeded(ctx, false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	token, ok := c.creds.AccessToken()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	// Buffer the body so a retry can replay it.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if err := c.refreshIfNeeded(ctx, true); err != nil {
		c.creds.Clear()
		return resp, nil
	}
	token, ok = c.creds.AccessToken()
	if !ok {
		return resp, nil
	}
	resp.Body.Close()

	retry := req.Clone(ctx)
	if body != nil {
		retry.Body = io.NopCloser(bytes.NewReader(body))
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	return c.http.Do(retry)
}
