package authclient

import (
	"encoding/json"
	"time"
)

const (
	keyAccess   = "auth:accessToken"
	keyRefresh  = "auth:refreshToken"
	keyExpires  = "auth:expiresAt"
	keyUser     = "auth:user"
	keyRemember = "auth:remember"
)

// ValiditySkew is the safety window before the recorded expiry during
// which the session is already treated as expired.
const ValiditySkew = 20 * time.Second

// Credentials is the stored token record plus the identity it belongs
// to.
type Credentials struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email"`
	ClientID     string    `json:"clientId"`
}

// CredentialStore routes the token record to a durable or per-process
// scope. The remember preference itself always lives in the durable
// scope so it survives restarts.
type CredentialStore struct {
	durable Store
	session Store
}

func NewCredentialStore(durable, session Store) *CredentialStore {
	return &CredentialStore{durable: durable, session: session}
}

// Remember reports the stored scope preference.
func (c *CredentialStore) Remember() bool {
	v, _ := c.durable.Get(keyRemember)
	return v == "1"
}

func (c *CredentialStore) preferred() Store {
	if c.Remember() {
		return c.durable
	}
	return c.session
}

func (c *CredentialStore) other() Store {
	if c.Remember() {
		return c.session
	}
	return c.durable
}

// get reads the preferred scope first and falls back to the other one,
// so a scope switch does not strand an existing session.
func (c *CredentialStore) get(key string) (string, bool) {
	if v, ok := c.preferred().Get(key); ok {
		return v, true
	}
	return c.other().Get(key)
}

// SetTokens records the credentials in the scope the remember flag
// selects.
func (c *CredentialStore) SetTokens(creds Credentials, remember bool) error {
	flag := "0"
	if remember {
		flag = "1"
	}
	if err := c.durable.Set(keyRemember, flag); err != nil {
		return err
	}

	store := c.preferred()
	if err := store.Set(keyAccess, creds.AccessToken); err != nil {
		return err
	}
	if err := store.Set(keyRefresh, creds.RefreshToken); err != nil {
		return err
	}
	if err := store.Set(keyExpires, creds.ExpiresAt.Format(time.RFC3339)); err != nil {
		return err
	}
	user, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return store.Set(keyUser, string(user))
}

// Clear wipes every credential key from both scopes, including the
// remember preference.
func (c *CredentialStore) Clear() {
	for _, store := range []Store{c.durable, c.session} {
		for _, key := range []string{keyAccess, keyRefresh, keyExpires, keyUser} {
			_ = store.Delete(key)
		}
	}
	_ = c.durable.Delete(keyRemember)
}

func (c *CredentialStore) AccessToken() (string, bool) {
	return c.get(keyAccess)
}

func (c *CredentialStore) RefreshToken() (string, bool) {
	return c.get(keyRefresh)
}

func (c *CredentialStore) ExpiresAt() (time.Time, bool) {
	v, ok := c.get(keyExpires)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// User returns the stored identity record, if any.
func (c *CredentialStore) User() (Credentials, bool) {
	raw, ok := c.get(keyUser)
	if !ok {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, false
	}
	return creds, true
}

// SessionValid reports whether a usable access token is stored: both
// the token and its expiry must be present, and the expiry must be more
// than ValiditySkew away.
func (c *CredentialStore) SessionValid(now time.Time) bool {
	if _, ok := c.AccessToken(); !ok {
		return false
	}
	expiresAt, ok := c.ExpiresAt()
	if !ok {
		return false
	}
	return now.Add(ValiditySkew).Before(expiresAt)
}
