// Package cmd implements the payoff CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/kv"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/logger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/prefs"
)

var (
	flagDBPath     string
	flagConfigPath string
	flagQuiet      bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "payoff",
	Short:         "Personal debt payoff tracker",
	Long:          "Track what you owe, record payments, and see when you'll be debt-free.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", describeErr(err))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDBPath, "db", "", "Ledger database path (default <data dir>/payoff.db)")
	pf.StringVar(&flagConfigPath, "config", "", "Config file path (default "+config.ConfigPath()+")")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// app is everything one command invocation works with.
type app struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	dbPath string
	store  *kv.SQLite
	ledger *ledger.Ledger
	prefs  *prefs.Prefs
}

// openApp loads config, builds the logger, opens the database, and loads
// preferences. With logToFile the log goes to the data directory instead
// of stderr so it cannot draw over a full-screen UI.
func openApp(ctx context.Context, logToFile bool) (*app, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}

	logOpts := logger.Options{Level: cfg.General.LogLevel}
	switch {
	case flagVerbose:
		logOpts.Level = "debug"
	case flagQuiet:
		logOpts.Level = "error"
	}
	if logToFile {
		if err := os.MkdirAll(cfg.DataDir(), 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		logOpts.OutputPath = cfg.LogPath()
		logOpts.Production = true
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, err
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}
	log.Debugw("opening ledger", "db", dbPath)
	store, err := kv.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	p, err := prefs.Load(ctx, store, cfg.Appearance.Theme, prefs.WithLogger(log))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		dbPath: dbPath,
		store:  store,
		ledger: ledger.New(store, ledger.WithLogger(log)),
		prefs:  p,
	}, nil
}

func (a *app) Close() {
	logger.Sync(a.log)
	if err := a.store.Close(); err != nil {
		a.log.Warnw("closing ledger", "error", err)
	}
}

func (a *app) renderer() *cli.Renderer {
	return cli.NewRenderer(a.prefs.Theme())
}

// errNoDebtMatch is returned by resolveDebt when nothing matches. It is the
// only lookup failure `pay --force` records through.
var errNoDebtMatch = errors.New("no debt matches")

// resolveDebt finds a debt by exact id, a unique id prefix or suffix, or
// name (case-insensitive).
func resolveDebt(debts []model.Debt, ref string) (model.Debt, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Debt{}, errors.New("debt reference is empty")
	}

	var matches []model.Debt
	for _, d := range debts {
		if d.ID == ref {
			return d, nil
		}
		if strings.HasPrefix(d.ID, ref) || strings.HasSuffix(d.ID, ref) || strings.EqualFold(d.Name, ref) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return model.Debt{}, fmt.Errorf("%w %q", errNoDebtMatch, ref)
	case 1:
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, d := range matches {
		names[i] = fmt.Sprintf("%s (%s)", d.Name, shortID(d.ID))
	}
	return model.Debt{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
}

// shortID is the id suffix shown in listings. UUIDv7 prefixes are
// timestamps, so debts added together share them.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func describeErr(err error) string {
	switch {
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return "storage unavailable, nothing was saved (" + err.Error() + ")"
	case errors.Is(err, ledger.ErrMalformedData):
		return "stored data is unreadable (" + err.Error() + ")"
	}
	return err.Error()
}
