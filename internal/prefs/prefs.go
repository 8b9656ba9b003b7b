// Package prefs holds the device account and theme selection. Values are
// read once at startup and written through to the kv store on change.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/kv"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/theme"
)

// Storage keys.
const (
	KeyAccount = "payoff/account"
	KeyTheme   = "payoff/theme"
)

// ErrUnknownTheme rejects a theme id that is not a preset.
var ErrUnknownTheme = errors.New("prefs: unknown theme")

// Prefs is the in-memory view of the account and theme. Safe for
// concurrent use.
type Prefs struct {
	store kv.Store
	log   *zap.SugaredLogger
	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	account model.UserAccount
	themeID string
}

// Option configures Prefs.
type Option func(*Prefs)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Prefs) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Prefs) { p.now = now }
}

// WithIDGenerator overrides account id generation.
func WithIDGenerator(gen func() string) Option {
	return func(p *Prefs) { p.newID = gen }
}

// Load reads the stored account and theme. A device with no account gets a
// fresh anonymous one, persisted immediately. A missing or unknown theme id
// falls back to defaultTheme.
func Load(ctx context.Context, store kv.Store, defaultTheme string, opts ...Option) (*Prefs, error) {
	p := &Prefs{
		store: store,
		log:   zap.NewNop().Sugar(),
		now:   time.Now,
		newID: ledger.NewID,
	}
	for _, opt := range opts {
		opt(p)
	}

	found, err := p.get(ctx, KeyAccount, &p.account)
	if err != nil {
		return nil, fmt.Errorf("loading account: %w", err)
	}
	if !found {
		if err := p.mintAccount(ctx); err != nil {
			return nil, err
		}
	}

	if _, ok := theme.Lookup(defaultTheme); !ok {
		defaultTheme = theme.DefaultID
	}
	p.themeID = defaultTheme

	var stored string
	found, err = p.get(ctx, KeyTheme, &stored)
	switch {
	case errors.Is(err, ledger.ErrMalformedData):
		p.log.Warnw("ignoring malformed stored theme", "error", err)
	case err != nil:
		return nil, fmt.Errorf("loading theme: %w", err)
	case found:
		if _, ok := theme.Lookup(stored); ok {
			p.themeID = stored
		} else {
			p.log.Warnw("ignoring unknown stored theme", "theme", stored)
		}
	}
	return p, nil
}

// Account returns the current account.
func (p *Prefs) Account() model.UserAccount {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.account
}

// ThemeID returns the selected preset id.
func (p *Prefs) ThemeID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.themeID
}

// Theme returns the selected preset.
func (p *Prefs) Theme() theme.Theme {
	return theme.ByName(p.ThemeID())
}

// SetDisplayName stores a trimmed display name. A blank name clears it.
func (p *Prefs) SetDisplayName(ctx context.Context, name string) (model.UserAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acct := p.account
	acct.DisplayName = strings.TrimSpace(name)
	if err := p.put(ctx, KeyAccount, acct); err != nil {
		return p.account, fmt.Errorf("saving account: %w", err)
	}
	p.account = acct
	return acct, nil
}

// CompleteOnboarding marks the first-run flow finished.
func (p *Prefs) CompleteOnboarding(ctx context.Context) (model.UserAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.account.OnboardingComplete {
		return p.account, nil
	}
	acct := p.account
	acct.OnboardingComplete = true
	if err := p.put(ctx, KeyAccount, acct); err != nil {
		return p.account, fmt.Errorf("saving account: %w", err)
	}
	p.account = acct
	return acct, nil
}

// SetTheme selects and persists a preset.
func (p *Prefs) SetTheme(ctx context.Context, id string) (theme.Theme, error) {
	t, ok := theme.Lookup(id)
	if !ok {
		return theme.Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.put(ctx, KeyTheme, id); err != nil {
		return theme.Theme{}, fmt.Errorf("saving theme: %w", err)
	}
	p.themeID = id
	return t, nil
}

// DeleteAccount drops the account record and replaces it with a fresh one,
// which restarts onboarding. The theme is kept.
func (p *Prefs) DeleteAccount(ctx context.Context) (model.UserAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Delete(ctx, KeyAccount); err != nil {
		return p.account, fmt.Errorf("deleting account: %w: %w", ledger.ErrStoreUnavailable, err)
	}
	if err := p.mintAccount(ctx); err != nil {
		return p.account, err
	}
	return p.account, nil
}

// mintAccount requires p.mu held or p unpublished.
func (p *Prefs) mintAccount(ctx context.Context) error {
	acct := model.UserAccount{
		ID:        p.newID(),
		CreatedAt: p.now().UTC(),
	}
	if err := p.put(ctx, KeyAccount, acct); err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	p.account = acct
	p.log.Infow("created device account", "id", acct.ID)
	return nil
}

func (p *Prefs) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := p.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ledger.ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ledger.ErrMalformedData, key, err)
	}
	return true, nil
}

func (p *Prefs) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := p.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrStoreUnavailable, err)
	}
	return nil
}
