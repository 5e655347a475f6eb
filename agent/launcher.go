package agent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quizmcp/logger"
)

const restartDelay = 5 * time.Second

// Launcher supervises a standalone agent process, restarting it after
// unexpected exits. A deliberate Stop suppresses the restart.
type Launcher struct {
	command string
	args    []string
	log     *logger.Logger

	mu      sync.Mutex
	proc    *Process
	stopped bool
}

func NewLauncher(command string, args []string) *Launcher {
	return &Launcher{
		command: command,
		args:    args,
		log:     logger.NewLogger("Launcher", uuid.NewString()),
	}
}

// Run starts the agent and blocks, restarting it after a fixed delay each
// time it exits unexpectedly. It returns when Stop is called, the context
// is cancelled, or the agent cannot be spawned at all.
func (l *Launcher) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return nil
		}
		proc := NewProcess(l.command, l.args, nil)
		if err := proc.Start(); err != nil {
			l.mu.Unlock()
			return err
		}
		l.proc = proc
		l.mu.Unlock()

		// the supervised agent speaks on stdout only if something is
		// connected; drain so it can never block on a full pipe
		go func() {
			for range proc.Messages() {
			}
		}()

		select {
		case <-ctx.Done():
			_ = proc.Stop()
			return ctx.Err()
		case <-proc.Done():
		}

		l.mu.Lock()
		stopped := l.stopped
		l.mu.Unlock()
		if stopped || proc.Stopping() {
			return nil
		}

		l.log.Warnf("agent exited unexpectedly (%v), restarting in %s", proc.ExitErr(), restartDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(restartDelay):
		}
	}
}

// Stop shuts the supervised agent down and prevents any further restarts.
// Safe to call more than once.
func (l *Launcher) Stop() {
	l.mu.Lock()
	l.stopped = true
	proc := l.proc
	l.mu.Unlock()

	if proc != nil {
		_ = proc.Stop()
	}
}
