// Package auth manages Firebase identity tokens: password sign-in, refresh
// token exchange, and an in-memory cache that hands out a valid ID token to
// every outbound request.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/errors"
)

// expiryMargin is subtracted from the token lifetime so a token nearing
// expiry is refreshed before an upstream call can see it rejected.
const expiryMargin = 60 * time.Second

// Client exchanges credentials for ID tokens and caches the result.
// Token is safe for concurrent use; overlapping callers share one refresh.
type Client struct {
	http   *http.Client
	cfg    config.FirebaseConfig
	logger *slog.Logger
	now    func() time.Time

	mu           sync.Mutex
	refreshToken string
	idToken      string
	expiresAt    time.Time
}

// NewClient creates an auth client. The refresh token from the config, if
// any, seeds the cache; otherwise the first Token call signs in with the
// configured email and password.
func NewClient(cfg config.FirebaseConfig, logger *slog.Logger) *Client {
	return &Client{
		http:         &http.Client{Timeout: 30 * time.Second},
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
		refreshToken: cfg.RefreshToken,
	}
}

// Token returns a valid ID token, refreshing or signing in as needed. The
// cached token is reused until 60 seconds before its expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idToken != "" && c.now().Add(expiryMargin).Before(c.expiresAt) {
		return c.idToken, nil
	}

	if c.refreshToken != "" {
		if err := c.refreshLocked(ctx); err != nil {
			return "", err
		}
		return c.idToken, nil
	}

	if c.cfg.Email == "" || c.cfg.Password == "" {
		return "", errors.Authentication("no credentials configured")
	}
	if err := c.signInLocked(ctx, c.cfg.Email, c.cfg.Password); err != nil {
		return "", err
	}
	return c.idToken, nil
}

// RefreshToken returns the current refresh token, suitable for persisting so
// later runs can skip password sign-in.
func (c *Client) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}

// UserID extracts the account ID from the current ID token's claims without
// verifying the signature. The token was just issued to us over TLS; the
// claim is trusted on that basis.
func (c *Client) UserID(ctx context.Context) (string, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return "", err
	}
	return userIDFromToken(token)
}

func userIDFromToken(idToken string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return "", errors.Wrap(err, errors.CodeValidation, "malformed id token")
	}

	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		return uid, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", errors.Validation("id token carries no user_id or sub claim")
}

// signInLocked performs a password sign-in against the identity toolkit.
// Callers must hold c.mu.
func (c *Client) signInLocked(ctx context.Context, email, password string) error {
	c.logger.Info("signing in", "email", email)

	reqBody, _ := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})

	endpoint := c.cfg.IdentityURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The upstream project only accepts requests attributed to the app.
	req.Header.Set("X-Ios-Bundle-Identifier", c.cfg.BundleID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute sign-in: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read sign-in response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.AuthenticationStatus("sign-in rejected", resp.StatusCode, string(body))
	}

	var result struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, errors.CodeDecode, "decode sign-in response")
	}
	if result.IDToken == "" {
		return errors.Authentication("sign-in response carried no id token")
	}

	c.storeLocked(result.IDToken, result.RefreshToken, result.ExpiresIn)
	return nil
}

// refreshLocked exchanges the refresh token for a fresh ID token.
// Callers must hold c.mu.
func (c *Client) refreshLocked(ctx context.Context) error {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}

	endpoint := c.cfg.TokenURL + "/token?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute refresh: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.AuthenticationStatus("token refresh rejected", resp.StatusCode, string(body))
	}

	// The securetoken endpoint uses snake_case and has been observed sending
	// expires_in as both a string and a number.
	var result struct {
		IDToken      string          `json:"id_token"`
		RefreshToken string          `json:"refresh_token"`
		ExpiresIn    json.RawMessage `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Wrap(err, errors.CodeDecode, "decode refresh response")
	}
	if result.IDToken == "" {
		return errors.Authentication("refresh response carried no id token")
	}

	c.storeLocked(result.IDToken, result.RefreshToken, decodeExpiresIn(result.ExpiresIn))
	return nil
}

// storeLocked updates the cache. A missing or unparsable lifetime falls back
// to an hour, the lifetime the upstream has always used.
func (c *Client) storeLocked(idToken, refreshToken, expiresIn string) {
	c.idToken = idToken
	if refreshToken != "" {
		c.refreshToken = refreshToken
	}

	lifetime := time.Hour
	if secs, err := strconv.ParseInt(expiresIn, 10, 64); err == nil && secs > 0 {
		lifetime = time.Duration(secs) * time.Second
	}
	c.expiresAt = c.now().Add(lifetime)

	c.logger.Debug("token cached", "expires_at", c.expiresAt)
}

func decodeExpiresIn(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
