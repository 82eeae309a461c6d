// Package main provides the CLI entrypoint for typespeed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typespeed/internal/config"
	"github.com/verte-zerg/typespeed/internal/engine"
	"github.com/verte-zerg/typespeed/internal/model"
	"github.com/verte-zerg/typespeed/internal/passage"
	"github.com/verte-zerg/typespeed/internal/report"
	"github.com/verte-zerg/typespeed/internal/server"
	"github.com/verte-zerg/typespeed/internal/tui"
)

const (
	defaultPassage  = -1
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

var (
	testPassage        int
	testRecomputeDelay time.Duration
	testSound          bool

	serveAddr string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typespeed",
		Short:         "Typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.PersistentFlags().IntVar(&testPassage, "passage", defaultPassage, "passage index (-1 for random)")
	rootCmd.PersistentFlags().DurationVar(&testRecomputeDelay, "recompute-delay", engine.DefaultRecomputeDelay, "quiet period before live stats refresh")
	rootCmd.Flags().BoolVar(&testSound, "sound", false, "ring the terminal bell on completion")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPassagesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveTestConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typespeed needs an interactive terminal; try: typespeed serve")
	}

	bridge := tui.NewBridge()
	eng := engine.New(passage.New(), bridge, engine.Options{
		RecomputeDelay: cfg.RecomputeDelay,
		Passage:        cfg.Passage,
	})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := eng.Run(ctx); err != nil {
			logErrf("engine stopped: %v\n", err)
		}
	}()

	m := tui.NewModel(eng, bridge, cfg.Sound)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := program.Run()
	bridge.Close()
	cancel()
	<-stopped
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	if res, ok := m.LastResults(); ok {
		if err := report.RenderResults(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the test to a browser",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveTestConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	addr := serveAddr
	applyStringConfig(cmd, "addr", &addr, fileCfg.Server.Addr)

	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	srv := server.New(passage.New(), cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := config.Watch(ctx, path, func(fc config.FileConfig) {
			next := resolveTestConfig(cmd, fc)
			if err := validateConfig(next); err != nil {
				logger.Printf("ignoring config change: %v", err)
				return
			}
			srv.SetConfig(next)
			logger.Printf("config reloaded from %s", path)
		}, func(err error) {
			logger.Printf("config watch: %v", err)
		})
		if err != nil {
			logger.Printf("config watch disabled: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("listening on http://%s", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func newPassagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passages",
		Short: "List built-in passages",
		Args:  cobra.NoArgs,
		RunE:  runPassagesCmd,
	}
}

func runPassagesCmd(cmd *cobra.Command, _ []string) error {
	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	if err := report.RenderPassages(cmd.OutOrStdout(), passage.New().All(), width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveTestConfig layers file values under flags that were not set
// explicitly. It does not modify the flag variables, so it can be applied
// again on reload.
func resolveTestConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	cfg := model.Config{
		Passage:        testPassage,
		RecomputeDelay: testRecomputeDelay,
		Sound:          testSound,
	}
	applyIntConfig(cmd, "passage", &cfg.Passage, fileCfg.Test.Passage)
	applyMillisConfig(cmd, "recompute-delay", &cfg.RecomputeDelay, fileCfg.Test.RecomputeDelayMs)
	applyBoolConfig(cmd, "sound", &cfg.Sound, fileCfg.Test.Sound)
	return cfg
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyMillisConfig(cmd *cobra.Command, name string, target *time.Duration, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typespeed configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# passage = %d               # Passage index, -1 for random
# recompute-delay-ms = %d    # Quiet period before live stats refresh
# sound = false             # Ring the terminal bell on completion

[server]
# addr = %q   # Listen address for typespeed serve
`,
		defaultPassage,
		engine.DefaultRecomputeDelay.Milliseconds(),
		defaultAddr,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.RecomputeDelay <= 0 {
		return fmt.Errorf("--recompute-delay must be > 0")
	}
	if cfg.RecomputeDelay > time.Second {
		return fmt.Errorf("--recompute-delay must be <= 1s")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
