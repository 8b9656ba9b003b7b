// Package server exposes the ledger and preferences over a local JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/prefs"
)

// Config controls the API listener.
type Config struct {
	Addr         string
	DataDir      string
	Invest       config.InvestConfig // defaults for the investment projection
	EventsBuffer int
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time         `json:"startedAt"`
	DataDir         string            `json:"dataDir,omitempty"`
	Account         model.UserAccount `json:"account"`
	Theme           string            `json:"theme"`
	Payments        int               `json:"payments"`
	Summary         calc.Summary      `json:"summary"`
	EventCount      int               `json:"eventCount"`
	SubscriberCount int               `json:"subscriberCount"`
}

// Server is the local HTTP API.
type Server struct {
	cfg    Config
	ledger *ledger.Ledger
	prefs  *prefs.Prefs
	log    *zap.SugaredLogger
	now    func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event
	nextSubID   int
	subs        map[int]chan Event
}

// New returns a server over l and p. A nil log discards output.
func New(cfg Config, l *ledger.Ledger, p *prefs.Prefs, log *zap.SugaredLogger) *Server {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultConfig().Server.Addr
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		cfg:       cfg,
		ledger:    l,
		prefs:     p,
		log:       log,
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(recovery(s.log), requestLogging(s.log))

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)

	v1.GET("/debts", s.listDebts)
	v1.POST("/debts", s.addDebt)
	v1.PATCH("/debts/:id", s.updateDebt)
	v1.DELETE("/debts/:id", s.deleteDebt)
	v1.GET("/debts/:id/projection", s.debtProjection)

	v1.GET("/payments", s.listPayments)
	v1.POST("/payments", s.recordPayment)

	v1.GET("/projection/investment", s.investmentProjection)

	v1.GET("/account", s.getAccount)
	v1.PATCH("/account", s.updateAccount)
	v1.GET("/theme", s.getTheme)
	v1.PUT("/theme", s.setTheme)

	v1.DELETE("/data", s.clearData)

	r.NoRoute(func(c *gin.Context) {
		respondWithError(c, s.log, errNoRoute)
	})
	return r
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is canceled, then shuts down
// gracefully. Open event streams end with ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		s.log.Infow("api listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) snapshotStatus(ctx context.Context) (Status, error) {
	debts, err := s.ledger.LoadDebts(ctx)
	if err != nil {
		return Status{}, err
	}
	payments, err := s.ledger.LoadPayments(ctx)
	if err != nil {
		return Status{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		DataDir:         s.cfg.DataDir,
		Account:         s.prefs.Account(),
		Theme:           s.prefs.ThemeID(),
		Payments:        len(payments),
		Summary:         calc.Summarize(debts),
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}, nil
}
