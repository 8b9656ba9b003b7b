package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/server"
	"github.com/theirongolddev/payoff/internal/theme"
)

type serverRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

var (
	flagServeAddr         string
	flagServeDetach       bool
	flagServePIDFile      string
	flagServeLogFile      string
	flagServeEventsBuffer int
	flagServeChild        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show API process and ledger status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running API server",
	RunE:  runServeStop,
}

func init() {
	dataDir := config.DefaultDataDir()
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", filepath.Join(dataDir, "payoff-serve.pid"), "PID file path")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", filepath.Join(dataDir, "payoff-serve.log"), "Log file path for detached mode")
	serveCmd.PersistentFlags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the server as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd, serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	files := serveFiles{pid: flagServePIDFile}
	switch {
	case flagServeDetach && flagServeChild:
		return errors.New("--detach cannot be combined with --child")
	case flagServeDetach:
		return spawnDetachedServer(files)
	default:
		return serveForeground(cmd.Context(), files)
	}
}

// spawnDetachedServer re-executes the current command line without
// --detach and with the hidden --child flag, output going to the log file.
func spawnDetachedServer(files serveFiles) error {
	if err := ensureServerNotRunning(files.pid); err != nil {
		return err
	}
	for _, dir := range []string{filepath.Dir(files.pid), filepath.Dir(flagServeLogFile)} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate payoff binary: %w", err)
	}
	logOut, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // user-supplied log path
	if err != nil {
		return fmt.Errorf("open server log: %w", err)
	}
	defer func() { _ = logOut.Close() }()

	child := exec.Command(exe, append(filterDetachArg(os.Args[1:]), "--child")...) //nolint:gosec // re-exec of this binary
	child.Stdout, child.Stderr = logOut, logOut
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached server: %w", err)
	}

	fmt.Printf("  API server started in background (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", files.pid)
	fmt.Printf("  Log:      %s\n", flagServeLogFile)
	return nil
}

func serveForeground(ctx context.Context, files serveFiles) error {
	if err := ensureServerNotRunning(files.pid); err != nil {
		return err
	}

	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	if err := os.MkdirAll(filepath.Dir(files.pid), 0o750); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}
	if err := writePID(files.pid, os.Getpid()); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer files.remove()

	if err := files.writeState(serverRuntimeState{
		PID:       os.Getpid(),
		Addr:      addr,
		StartedAt: time.Now(),
		DBPath:    a.dbPath,
	}); err != nil {
		a.log.Warnw("server state not written", "path", files.state(), "error", err)
	}

	if !flagVerbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(server.Config{
		Addr:         addr,
		DataDir:      a.cfg.DataDir(),
		Invest:       a.cfg.Invest,
		EventsBuffer: flagServeEventsBuffer,
	}, a.ledger, a.prefs, a.log)

	fmt.Printf("  payoff API on http://%s (ledger %s)\n", addr, a.dbPath)
	if !flagServeChild {
		fmt.Println("  Press Ctrl+C to stop.")
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	files := serveFiles{pid: flagServePIDFile}
	pid, alive, err := files.running()
	if err != nil {
		return err
	}
	if !alive {
		fmt.Println("  API server: not running")
		return nil
	}

	addr := flagServeAddr
	if addr == "" {
		if st, err := files.readState(); err == nil {
			addr = st.Addr
		}
	}
	if addr == "" {
		addr = config.DefaultConfig().Server.Addr
	}
	fmt.Printf("  API server: running (pid %d) on http://%s\n", pid, addr)

	st, err := probeStatus(addr)
	if err != nil {
		fmt.Printf("  Status probe failed: %v\n", err)
		return nil
	}
	fmt.Println(cli.NewRenderer(theme.ByName(st.Theme)).KeyValues([][2]string{
		{"Up since", st.StartedAt.Local().Format("2006-01-02 15:04")},
		{"Account", st.Account.Name()},
		{"Theme", st.Theme},
		{"Debts", fmt.Sprintf("%d (%s owed)", st.Summary.Debts, cli.FormatCurrency(st.Summary.TotalBalance))},
		{"Payments", strconv.Itoa(st.Payments)},
		{"Events", fmt.Sprintf("%d buffered, %d subscribers", st.EventCount, st.SubscriberCount)},
	}))
	return nil
}

func probeStatus(addr string) (server.Status, error) {
	var st server.Status
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // bounded by client timeout
	if err != nil {
		return st, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("decode status: %w", err)
	}
	return st, nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	files := serveFiles{pid: flagServePIDFile}
	pid, alive, err := files.running()
	if err != nil {
		return err
	}
	if !alive {
		return errors.New("API server is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find pid %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}

	for deadline := time.Now().Add(8 * time.Second); time.Now().Before(deadline); time.Sleep(150 * time.Millisecond) {
		if !processAlive(pid) {
			files.remove()
			fmt.Printf("  API server stopped (pid %d)\n", pid)
			return nil
		}
	}
	return fmt.Errorf("API server (pid %d) still running after SIGTERM", pid)
}

func filterDetachArg(args []string) []string {
	kept := args[:0:0]
	for _, arg := range args {
		if arg != "--detach" && !strings.HasPrefix(arg, "--detach=") {
			kept = append(kept, arg)
		}
	}
	return kept
}

// serveFiles locates the pid file of a running server and the JSON state
// file written next to it.
type serveFiles struct {
	pid string
}

func (f serveFiles) state() string { return f.pid + ".json" }

func (f serveFiles) remove() {
	_ = os.Remove(f.pid)
	_ = os.Remove(f.state())
}

// running reports the pid of a live server. A pid file left behind by a
// dead process is cleaned up.
func (f serveFiles) running() (int, bool, error) {
	pid, err := readPID(f.pid)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return 0, false, nil
	case err != nil:
		return 0, false, err
	case !processAlive(pid):
		f.remove()
		return pid, false, nil
	}
	return pid, true, nil
}

func ensureServerNotRunning(pidFile string) error {
	pid, alive, err := serveFiles{pid: pidFile}.running()
	if err != nil {
		return err
	}
	if alive {
		return fmt.Errorf("API server already running (pid %d)", pid)
	}
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, fmt.Appendf(nil, "%d\n", pid), 0o600)
}

func readPID(path string) (int, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // user-supplied pid path
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid file %s: bad contents %q", path, strings.TrimSpace(string(raw)))
	}
	return pid, nil
}

// processAlive probes pid with signal 0. EPERM still means the process exists.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	switch err := proc.Signal(syscall.Signal(0)); {
	case err == nil, errors.Is(err, syscall.EPERM):
		return true
	default:
		return false
	}
}

func (f serveFiles) writeState(st serverRuntimeState) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode server state: %w", err)
	}
	return os.WriteFile(f.state(), append(raw, '\n'), 0o600)
}

func (f serveFiles) readState() (serverRuntimeState, error) {
	var st serverRuntimeState
	raw, err := os.ReadFile(f.state()) //nolint:gosec // derived from the pid path
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(raw, &st)
	return st, err
}
