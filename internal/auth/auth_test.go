package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/errors"
)

// fakeJWT builds an unsigned but structurally valid token for the claims.
func fakeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func testConfig(identityURL, tokenURL string) config.FirebaseConfig {
	return config.FirebaseConfig{
		APIKey:      "test-key",
		BundleID:    "com.example.app",
		IdentityURL: identityURL,
		TokenURL:    tokenURL,
	}
}

func TestSignInOnFirstToken(t *testing.T) {
	idToken := fakeJWT(t, map[string]any{"user_id": "u123"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %s", r.URL.Query().Get("key"))
		}
		if got := r.Header.Get("X-Ios-Bundle-Identifier"); got != "com.example.app" {
			t.Errorf("bundle header = %q", got)
		}

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "pw" || body["returnSecureToken"] != true {
			t.Errorf("unexpected body: %v", body)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"idToken":      idToken,
			"refreshToken": "rt-1",
			"expiresIn":    "3600",
		})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, srv.URL)
	cfg.Email = "a@b.c"
	cfg.Password = "pw"
	c := NewClient(cfg, slog.New(slog.DiscardHandler))

	got, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != idToken {
		t.Errorf("Token = %q, want the issued id token", got)
	}
	if c.RefreshToken() != "rt-1" {
		t.Errorf("RefreshToken = %q, want rt-1", c.RefreshToken())
	}

	uid, err := c.UserID(context.Background())
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if uid != "u123" {
		t.Errorf("UserID = %q, want u123", uid)
	}
}

func TestRefreshCachedUntilNearExpiry(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/token" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %s", r.PostForm.Get("grant_type"))
		}

		// expires_in arrives as a bare number here; both shapes are accepted.
		fmt.Fprintf(w, `{"id_token":"tok-%d","refresh_token":"rt-next","expires_in":3600}`, n)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, srv.URL)
	cfg.RefreshToken = "rt-0"
	c := NewClient(cfg, slog.New(slog.DiscardHandler))

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	second, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if first != second || calls.Load() != 1 {
		t.Errorf("expected cached token, got %q/%q after %d calls", first, second, calls.Load())
	}

	// Within the expiry margin the cache no longer counts as valid.
	now = now.Add(time.Hour - 30*time.Second)
	third, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if third == first || calls.Load() != 2 {
		t.Errorf("expected refresh near expiry, got %q after %d calls", third, calls.Load())
	}
	if c.RefreshToken() != "rt-next" {
		t.Errorf("RefreshToken = %q, want rotated token", c.RefreshToken())
	}
}

func TestConcurrentTokenSharesOneRefresh(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		fmt.Fprint(w, `{"id_token":"tok","refresh_token":"rt","expires_in":"3600"}`)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, srv.URL)
	cfg.RefreshToken = "rt-0"
	c := NewClient(cfg, slog.New(slog.DiscardHandler))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Token(context.Background()); err != nil {
				t.Errorf("Token: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("refresh calls = %d, want 1", calls.Load())
	}
}

func TestRefreshRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"TOKEN_EXPIRED"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, srv.URL)
	cfg.RefreshToken = "stale"
	c := NewClient(cfg, slog.New(slog.DiscardHandler))

	_, err := c.Token(context.Background())
	if !errors.Is(err, errors.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}

	var derr *errors.Error
	if !errors.As(err, &derr) {
		t.Fatalf("not a domain error: %v", err)
	}
	if derr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", derr.Status)
	}
}

func TestNoCredentials(t *testing.T) {
	c := NewClient(testConfig("http://unused", "http://unused"), slog.New(slog.DiscardHandler))
	_, err := c.Token(context.Background())
	if !errors.Is(err, errors.ErrAuthentication) {
		t.Errorf("err = %v, want ErrAuthentication", err)
	}
}

func TestUserIDFromToken(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T) string
		want    string
		wantErr bool
	}{
		{
			name:  "user_id claim",
			token: func(t *testing.T) string { return fakeJWT(t, map[string]any{"user_id": "abc"}) },
			want:  "abc",
		},
		{
			name:  "sub fallback",
			token: func(t *testing.T) string { return fakeJWT(t, map[string]any{"sub": "def"}) },
			want:  "def",
		},
		{
			name:  "user_id wins over sub",
			token: func(t *testing.T) string { return fakeJWT(t, map[string]any{"user_id": "abc", "sub": "def"}) },
			want:  "abc",
		},
		{
			name:    "no identifying claim",
			token:   func(t *testing.T) string { return fakeJWT(t, map[string]any{"aud": "p"}) },
			wantErr: true,
		},
		{
			name:    "not a jwt",
			token:   func(t *testing.T) string { return "garbage" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := userIDFromToken(tt.token(t))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("userIDFromToken = %q, want %q", got, tt.want)
			}
		})
	}
}
