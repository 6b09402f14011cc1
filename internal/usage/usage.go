// Package usage enforces per-plan request quotas with a fixed-size
// sliding window. The gate is advisory-before-call: it refuses to start
// an LLM call but never cancels one in flight.
package usage

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// Record is one identity's counter within the current window.
type Record struct {
	Count   int
	ResetAt time.Time
	Limit   int
	Period  time.Duration
}

// Store holds usage records by key. The bundled MemoryStore is
// process-local and resets on restart; a multi-process deployment would
// plug in a shared store here instead.
type Store interface {
	Get(key string) (Record, bool)
	Set(key string, rec Record)
}

type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok
}

func (s *MemoryStore) Set(key string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

// Plan describes one tier's quota. Unlimited plans bypass the gate
// entirely.
type Plan struct {
	Limit     int
	Period    time.Duration
	Label     string
	Unlimited bool
}

var plans = map[string]Plan{
	"FREE":       {Limit: 5, Period: week, Label: "weekly"},
	"PRO":        {Limit: 100, Period: month, Label: "monthly"},
	"ENTERPRISE": {Unlimited: true},
}

// planFor resolves a plan name; unrecognized plans fall back to the
// smallest tier's limits.
func planFor(name string) Plan {
	if p, ok := plans[strings.ToUpper(name)]; ok {
		return p
	}
	return plans["FREE"]
}

// Entitled reports whether the plan may use web search.
func Entitled(plan string) bool {
	return strings.ToUpper(plan) != "FREE"
}

// QuotaError is returned when a request would exceed the window limit.
type QuotaError struct {
	Plan    string
	Label   string
	RetryIn string
}

func (e *QuotaError) Error() string {
	friendly := friendlyPlanName(e.Plan)
	return fmt.Sprintf("You've hit the %s limit for the %s plan. Try again in %s or upgrade for higher limits.", e.Label, friendly, e.RetryIn)
}

func friendlyPlanName(plan string) string {
	upper := strings.ToUpper(plan)
	if len(upper) == 0 {
		return upper
	}
	return upper[:1] + strings.ToLower(upper[1:])
}

// Gate evaluates a counter per (identity, plan) key before each request.
type Gate struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

func NewGate(store Store) *Gate {
	return &Gate{store: store, now: time.Now}
}

func key(identity, plan string) string {
	return strings.ToLower(identity) + "::" + strings.ToUpper(plan)
}

// Record counts one request against the identity's window. It returns a
// *QuotaError when the window limit is already reached, and nil when the
// request may proceed.
func (g *Gate) Record(identity, plan string) error {
	p := planFor(plan)
	if p.Unlimited {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	k := key(identity, plan)

	rec, ok := g.store.Get(k)
	if !ok || !rec.ResetAt.After(now) {
		g.store.Set(k, Record{
			Count:   1,
			ResetAt: now.Add(p.Period),
			Limit:   p.Limit,
			Period:  p.Period,
		})
		return nil
	}

	if rec.Count >= p.Limit {
		return &QuotaError{
			Plan:    plan,
			Label:   p.Label,
			RetryIn: FormatRemaining(rec.ResetAt.Sub(now)),
		}
	}

	rec.Count++
	g.store.Set(k, rec)
	return nil
}

// FormatRemaining renders a duration as a human-readable retry estimate
// in minutes, hours, or days depending on magnitude.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "soon"
	}
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return plural(minutes, "minute")
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := (hours + 23) / 24
	return plural(days, "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
