// Package ledger persists debts and payments in a kv.Store and keeps the
// two collections consistent when a payment is recorded.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/kv"
	"github.com/theirongolddev/payoff/internal/model"
)

// Storage keys.
const (
	KeyDebts    = "payoff/debts"
	KeyPayments = "payoff/payments"
)

// Snapshot is both collections as they stand after a payment.
type Snapshot struct {
	Debts    []model.Debt    `json:"debts"`
	Payments []model.Payment `json:"payments"`
}

// Ledger is the debt and payment store. Mutations on one Ledger are
// serialized; separate processes sharing a store are not coordinated.
type Ledger struct {
	store    kv.Store
	log      *zap.SugaredLogger
	now      func() time.Time
	newID    func() string
	validate *validator.Validate

	mu sync.Mutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides UUIDv7 id generation.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// New returns a Ledger over store.
func New(store kv.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
		newID:    NewID,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewID returns a time-ordered UUIDv7, falling back to v4 if the clock
// source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// LoadDebts returns every stored debt. A missing key is an empty ledger.
func (l *Ledger) LoadDebts(ctx context.Context) ([]model.Debt, error) {
	debts := []model.Debt{}
	if err := l.load(ctx, KeyDebts, &debts); err != nil {
		return nil, fmt.Errorf("loading debts: %w", err)
	}
	return debts, nil
}

// LoadPayments returns every stored payment in recording order.
func (l *Ledger) LoadPayments(ctx context.Context) ([]model.Payment, error) {
	payments := []model.Payment{}
	if err := l.load(ctx, KeyPayments, &payments); err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}
	return payments, nil
}

// ReplaceDebts overwrites the debt collection. Balances are clamped into
// [0, OriginalBalance]; any debt that then fails validation rejects the
// whole replacement.
func (l *Ledger) ReplaceDebts(ctx context.Context, debts []model.Debt) ([]model.Debt, error) {
	for _, d := range debts {
		if err := l.validateStruct(d.Clamp()); err != nil {
			return nil, fmt.Errorf("debt %s: %w", d.ID, err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveDebts(ctx, debts)
}

// AddDebt validates nd, assigns it an id, and appends it.
func (l *Ledger) AddDebt(ctx context.Context, nd model.NewDebt) ([]model.Debt, error) {
	nd.Name = strings.TrimSpace(nd.Name)
	if err := l.validateStruct(nd); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	debts, err := l.LoadDebts(ctx)
	if err != nil {
		return nil, err
	}

	d := model.Debt{
		ID:              l.newID(),
		Name:            nd.Name,
		Balance:         nd.Balance,
		OriginalBalance: nd.Balance,
		Rate:            nd.Rate,
		MinPayment:      nd.MinPayment,
		CreatedAt:       l.now().UTC(),
	}
	l.log.Debugw("adding debt", "id", d.ID, "name", d.Name, "balance", d.Balance)
	return l.saveDebts(ctx, append(debts, d))
}

// UpdateDebt merges patch into the debt with id. An unknown id leaves the
// collection unchanged.
func (l *Ledger) UpdateDebt(ctx context.Context, id string, patch model.DebtPatch) ([]model.Debt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	debts, err := l.LoadDebts(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(debts, id)
	if i < 0 {
		l.log.Debugw("update of unknown debt ignored", "id", id)
		return debts, nil
	}

	merged := patch.Apply(debts[i])
	merged.Name = strings.TrimSpace(merged.Name)
	if err := l.validateStruct(merged); err != nil {
		return nil, err
	}
	debts[i] = merged
	return l.saveDebts(ctx, debts)
}

// DeleteDebt removes the debt with id. Its payments stay in the ledger.
func (l *Ledger) DeleteDebt(ctx context.Context, id string) ([]model.Debt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	debts, err := l.LoadDebts(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(debts, id)
	if i < 0 {
		return debts, nil
	}
	debts = append(debts[:i], debts[i+1:]...)
	return l.saveDebts(ctx, debts)
}

// RecordPayment appends p to the payment ledger, then reduces the matching
// debt's balance by p.Amount (never below zero). The payment is persisted
// first; if the debt update then fails, the payment remains recorded and the
// error is returned. A payment against an unknown debt is kept as an orphan
// and leaves the debts untouched.
func (l *Ledger) RecordPayment(ctx context.Context, p model.Payment) (Snapshot, error) {
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return Snapshot{}, fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidPayment, p.Amount)
	}
	if p.Amount > model.MaxAmount {
		return Snapshot{}, fmt.Errorf("%w: amount %v exceeds %v", ErrInvalidPayment, p.Amount, model.MaxAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if p.ID == "" {
		p.ID = l.newID()
	}
	if p.Date.IsZero() {
		p.Date = l.now().UTC()
	}

	payments, err := l.LoadPayments(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	debts, err := l.LoadDebts(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	payments = append(payments, p)
	if err := l.save(ctx, KeyPayments, payments); err != nil {
		return Snapshot{}, fmt.Errorf("saving payments: %w", err)
	}

	i := indexOf(debts, p.DebtID)
	if i < 0 {
		l.log.Warnw("payment recorded against unknown debt", "payment", p.ID, "debt", p.DebtID)
		return Snapshot{Debts: debts, Payments: payments}, nil
	}

	debts[i].Balance = subtract(debts[i].Balance, p.Amount)
	debts, err = l.saveDebts(ctx, debts)
	if err != nil {
		l.log.Errorw("payment saved but debt balance not updated", "payment", p.ID, "debt", p.DebtID, "error", err)
		return Snapshot{}, err
	}
	return Snapshot{Debts: debts, Payments: payments}, nil
}

// ClearAllData removes both collections. Clearing an empty ledger succeeds.
func (l *Ledger) ClearAllData(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, KeyDebts, KeyPayments); err != nil {
		return fmt.Errorf("clearing ledger: %w: %w", ErrStoreUnavailable, err)
	}
	l.log.Infow("ledger cleared")
	return nil
}

func (l *Ledger) saveDebts(ctx context.Context, debts []model.Debt) ([]model.Debt, error) {
	out := make([]model.Debt, len(debts))
	for i, d := range debts {
		out[i] = d.Clamp()
	}
	if err := l.save(ctx, KeyDebts, out); err != nil {
		return nil, fmt.Errorf("saving debts: %w", err)
	}
	return out, nil
}

func (l *Ledger) load(ctx context.Context, key string, v any) error {
	raw, err := l.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedData, key, err)
	}
	return nil
}

func (l *Ledger) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := l.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (l *Ledger) validateStruct(v any) error {
	if err := l.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidDebt, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidDebt, err)
	}
	return nil
}

func indexOf(debts []model.Debt, id string) int {
	for i, d := range debts {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// subtract computes balance-amount in decimal, floored at zero.
func subtract(balance, amount float64) float64 {
	rest := decimal.NewFromFloat(balance).Sub(decimal.NewFromFloat(amount))
	if rest.IsNegative() {
		return 0
	}
	return rest.InexactFloat64()
}
