// Package auth resolves bearer tokens into sessions via the OAuth
// identity provider's userinfo endpoint. The provider itself is a black
// box; this package only carries its answers around.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/promptrefiner/promptrefiner/internal/config"
)

// ErrUnauthenticated is returned when no valid session can be resolved
// for the presented credentials.
var ErrUnauthenticated = errors.New("not authenticated")

const defaultPlan = "FREE"

// Session identifies an authenticated caller: an email-like identifier
// plus the plan tier the usage gate keys on.
type Session struct {
	Email string
	Plan  string
}

type cachedSession struct {
	session   Session
	expiresAt time.Time
}

// Verifier checks bearer tokens against the identity provider and caches
// resolved sessions briefly so each request doesn't round-trip.
type Verifier struct {
	cfg        config.AuthConfig
	httpClient *http.Client
	cache      *lru.Cache[string, cachedSession]
	now        func() time.Time
}

func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	cache, err := lru.New[string, cachedSession](cfg.SessionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	return &Verifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		now:        time.Now,
	}, nil
}

type userinfoResponse struct {
	Email            string `json:"email"`
	Plan             string `json:"plan"`
	SubscriptionPlan string `json:"subscription_plan"`
}

// FromRequest extracts the bearer token from the Authorization header and
// resolves it to a session.
func (v *Verifier) FromRequest(r *http.Request) (Session, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Session{}, ErrUnauthenticated
	}
	return v.Verify(r.Context(), strings.TrimSpace(token))
}

// Verify resolves a bearer token into a session, consulting the cache
// first.
func (v *Verifier) Verify(ctx context.Context, token string) (Session, error) {
	if cached, ok := v.cache.Get(token); ok && cached.expiresAt.After(v.now()) {
		return cached.session, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.UserinfoEndpoint, nil)
	if err != nil {
		return Session{}, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("userinfo lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Session{}, ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, fmt.Errorf("userinfo lookup returned status %d", resp.StatusCode)
	}

	var info userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Session{}, fmt.Errorf("decoding userinfo response: %w", err)
	}

	if strings.TrimSpace(info.Email) == "" {
		return Session{}, ErrUnauthenticated
	}

	plan := info.Plan
	if plan == "" {
		plan = info.SubscriptionPlan
	}
	if plan == "" {
		plan = defaultPlan
	}

	session := Session{
		Email: strings.TrimSpace(info.Email),
		Plan:  strings.ToUpper(plan),
	}
	v.cache.Add(token, cachedSession{
		session:   session,
		expiresAt: v.now().Add(v.cfg.SessionTTL),
	})

	slog.Debug("session resolved", "plan", session.Plan)
	return session, nil
}
