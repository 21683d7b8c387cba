package lsp

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/standardbeagle/ycmd-go/internal/debug"
)

// shutdownTimeout bounds how long Shutdown waits for the child to exit on
// its own after the shutdown/exit handshake before it is force-terminated,
// so a wedged language server can never hang the backend's own shutdown.
const shutdownTimeout = 5 * time.Second

// Subserver owns one spawned language server process and its transport:
// request/notification/shutdown, matching the spec's subserver contract.
type Subserver struct {
	cmd       *exec.Cmd
	transport *Transport
}

// Spawn starts path with args, wires its stdin/stdout as the LSP
// transport's duplex, and returns the running Subserver. The caller is
// responsible for eventually calling Shutdown.
func Spawn(ctx context.Context, path string, args ...string) (*Subserver, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("lsp: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("lsp: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("lsp: spawn %s: %w", path, err)
	}

	return &Subserver{cmd: cmd, transport: NewTransport(stdout, stdin)}, nil
}

// Request performs an id-correlated method call and returns its raw
// result, or the server's reported error.
func (s *Subserver) Request(ctx context.Context, method string, params any) (Output, error) {
	out, err := s.transport.Call(ctx, method, params)
	if err != nil {
		return Output{}, err
	}
	if out.Error != nil {
		return Output{}, out.Error
	}
	return out, nil
}

// Notify sends a fire-and-forget notification.
func (s *Subserver) Notify(method string, params any) error {
	return s.transport.Notify(method, params)
}

// Requests exposes the subserver's own calls and notifications (e.g.
// textDocument/publishDiagnostics).
func (s *Subserver) Requests() <-chan Output {
	return s.transport.Requests()
}

// Shutdown sends the LSP shutdown request followed by the exit
// notification, then waits for the child to exit on its own. If it hasn't
// within shutdownTimeout, the process is killed outright so a wedged
// server can never block the caller indefinitely.
func (s *Subserver) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if _, err := s.transport.Call(shutdownCtx, "shutdown", nil); err != nil {
		debug.LogLSP("shutdown request failed, killing process: %v", err)
		_ = s.cmd.Process.Kill()
		s.transport.Close()
		return s.cmd.Wait()
	}
	_ = s.transport.Notify("exit", nil)

	waited := make(chan error, 1)
	go func() { waited <- s.cmd.Wait() }()

	select {
	case err := <-waited:
		s.transport.Close()
		return err
	case <-shutdownCtx.Done():
		debug.LogLSP("subserver did not exit within %s, killing", shutdownTimeout)
		_ = s.cmd.Process.Kill()
		s.transport.Close()
		return <-waited
	}
}
