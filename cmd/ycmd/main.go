// Command ycmd runs the completion backend as an HTTP server: it loads the
// project's KDL config, wires the filename, snippet, and any configured
// LSP-backed completers into a dispatcher, and serves the completions HTTP
// surface on --port until signaled to stop or idle for
// --idle-suicide-seconds.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/ycmd-go/internal/completer"
	"github.com/standardbeagle/ycmd-go/internal/config"
	"github.com/standardbeagle/ycmd-go/internal/debug"
	"github.com/standardbeagle/ycmd-go/internal/dispatch"
	"github.com/standardbeagle/ycmd-go/internal/filenamecompleter"
	"github.com/standardbeagle/ycmd-go/internal/identifier"
	"github.com/standardbeagle/ycmd-go/internal/lsp"
	"github.com/standardbeagle/ycmd-go/internal/snippetcompleter"
	"github.com/standardbeagle/ycmd-go/internal/trigger"
	"github.com/standardbeagle/ycmd-go/internal/version"
)

// runningSubserver pairs a spawned LSP subserver with the dispatcher-facing
// completer it backs, so shutdown can tear both down together.
type runningSubserver struct {
	sub       *lsp.Subserver
	completer completer.Completer
}

func main() {
	app := &cli.App{
		Name:    "ycmd",
		Usage:   "code-completion backend server",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "project directory to look for .ycmd.kdl/ycmd.kdl in",
				Value: ".",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "TCP port to listen on (0 picks an ephemeral port)",
				Value: 0,
			},
			&cli.IntFlag{
				Name:  "idle-suicide-seconds",
				Usage: "exit automatically after this many seconds without a request (0 disables)",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "options-file",
				Usage: "transitional options blob written by the launching editor, read once and removed at startup",
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "write dispatch/rank/LSP debug logging to a timestamped file under the temp directory",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		debug.FatalAndExit("%v", err)
	}
}

// loadOptionsFile reads the transitional options blob at path, if any, and
// removes it immediately after reading: the file exists only to hand the
// server a one-time secret at launch, and must not linger on disk for a
// later process to find.
func loadOptionsFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}
	defer os.Remove(path)

	var options map[string]any
	if err := json.Unmarshal(content, &options); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	return options, nil
}

func run(c *cli.Context) error {
	projectRoot := c.String("config")

	if c.Bool("debug-log") {
		debug.EnableDebug = "true"
		logPath, err := debug.InitDebugLogFile()
		if err != nil {
			return debug.Fatal("failed to init debug log: %v", err)
		}
		defer debug.CloseDebugLog()
		debug.LogDispatch("debug logging to %s", logPath)
	}

	if _, err := loadOptionsFile(c.String("options-file")); err != nil {
		return debug.Fatal("%v", err)
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return debug.Fatal("failed to load config: %v", err)
	}

	for filetype, expr := range cfg.IdentifierOverrides {
		identifier.RegisterOverride(filetype, expr)
	}

	settings := completer.Settings{
		Triggers:      trigger.ParseTriggers([]map[string][]string{cfg.TriggerOverrides}, nil),
		MinNumChars:   cfg.Completion.MinNumChars,
		MaxCandidates: cfg.Completion.MaxNumCandidates,
	}

	filename := filenamecompleter.New(cfg.FilenameCompleter.Blacklist, cfg.FilenameCompleter.UseWorkingDir, settings)
	snippets := snippetcompleter.New(settings)
	dispatcher := dispatch.New(filename, snippets)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subservers := startLSPSubservers(ctx, cfg, settings, dispatcher)
	defer shutdownLSPSubservers(subservers)

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(c.Int("port"))))
	if err != nil {
		return debug.Fatal("failed to listen: %v", err)
	}
	debug.LogDispatch("listening on %s", listener.Addr())

	api := newAPIServer(dispatcher)
	server := &http.Server{Handler: api.routes()}

	errChan := make(chan error, 1)
	go func() { errChan <- server.Serve(listener) }()

	idleChan := make(chan struct{}, 1)
	go watchIdleSuicide(ctx, api, c.Int("idle-suicide-seconds"), func() { idleChan <- struct{}{} })

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return debug.Fatal("server error: %v", err)
		}
		return nil
	case <-idleChan:
		debug.LogDispatch("idle for %ds, shutting down", c.Int("idle-suicide-seconds"))
	case sig := <-sigChan:
		debug.LogDispatch("received signal %v, shutting down gracefully", sig)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// startLSPSubservers spawns one subserver per configured language server
// and registers its completer with dispatcher; a spawn failure is logged
// and skipped rather than failing the whole server, matching the
// filesystem-error-degrades-gracefully posture the rest of the backend
// follows.
func startLSPSubservers(ctx context.Context, cfg *config.Config, settings completer.Settings, dispatcher *dispatch.Dispatcher) []runningSubserver {
	running := make([]runningSubserver, 0, len(cfg.LSPServers))
	for filetype, server := range cfg.LSPServers {
		sub, err := lsp.Spawn(ctx, server.Command, server.Args...)
		if err != nil {
			debug.LogLSP("failed to spawn %s for %s: %v", server.Command, filetype, err)
			continue
		}
		c := lsp.New(sub, []string{filetype}, settings, nil)
		dispatcher.AddCompleter(c)
		running = append(running, runningSubserver{sub: sub, completer: c})
	}
	return running
}

func shutdownLSPSubservers(running []runningSubserver) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, rs := range running {
		if err := rs.sub.Shutdown(shutdownCtx); err != nil {
			debug.LogLSP("subserver shutdown error: %v", err)
		}
	}
}
