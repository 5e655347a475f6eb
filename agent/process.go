// Package agent owns the sidecar process: spawning it, detecting that it
// is ready to serve, and tearing it down. The agent-side stdio loop lives
// here too, so one package holds both ends of the child-process transport.
package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/quizmcp/codec"
	"github.com/quizmcp/logger"
)

// ReadyMarker is printed to the agent's stderr once it is accepting
// requests. The parent treats it as the first of two equivalent connect
// signals; the initialize handshake is the second.
const ReadyMarker = "quizmcp agent ready"

var (
	ErrExited         = errors.New("agent process exited")
	ErrConnectTimeout = errors.New("agent failed to connect")
)

const (
	readyPollInterval = 500 * time.Millisecond
	stopGracePeriod   = 5 * time.Second
)

// Ready-poll attempt budgets. The fast budget suits an in-process
// coordinator connecting on demand; the slow one suits a cold launcher
// start where the agent binary may still be paging in.
const (
	ReadyAttemptsFast = 10
	ReadyAttemptsSlow = 30
)

// Process wraps one running sidecar. Its stdout is framed into JSON-RPC
// messages; its stderr is drained into the log and scanned for the ready
// marker.
type Process struct {
	command  string
	args     []string
	extraEnv []string

	log    *logger.Logger
	framer *codec.Framer

	cmd      *exec.Cmd
	stdin    io.WriteCloser
	writeMu  sync.Mutex
	msgs     chan codec.Message
	done     chan struct{}
	ready    atomic.Bool
	stopping atomic.Bool

	exitMu  sync.Mutex
	exitErr error
}

// NewProcess prepares a sidecar runner. extraEnv entries ("KEY=value") are
// appended to the inherited environment.
func NewProcess(command string, args, extraEnv []string) *Process {
	return &Process{
		command:  command,
		args:     args,
		extraEnv: extraEnv,
		log:      logger.NewLogger("AgentProcess", uuid.NewString()),
		framer:   codec.NewFramer(),
		msgs:     make(chan codec.Message, 64),
		done:     make(chan struct{}),
	}
}

// Start spawns the sidecar and begins pumping its streams. A spawn failure
// is returned directly; it is a different condition from a handshake
// timeout and callers may fall back to another transport on either.
func (p *Process) Start() error {
	cmd := exec.Command(p.command, p.args...)
	cmd.Env = append(os.Environ(), p.extraEnv...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create agent stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create agent stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create agent stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn agent %q: %w", p.command, err)
	}
	p.cmd = cmd
	p.stdin = stdin
	p.log.Infof("spawned agent %s (pid %d)", p.command, cmd.Process.Pid)

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		p.readStdout(stdout)
	}()
	go func() {
		defer readers.Done()
		p.readStderr(stderr)
	}()

	go func() {
		readers.Wait()
		err := cmd.Wait()
		p.exitMu.Lock()
		p.exitErr = err
		p.exitMu.Unlock()
		close(p.done)
	}()
	return nil
}

func (p *Process) readStdout(r io.Reader) {
	defer close(p.msgs)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, msg := range p.framer.Feed(buf[:n]) {
				p.msgs <- msg
			}
		}
		if err != nil {
			return
		}
	}
}

func (p *Process) readStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, ReadyMarker) {
			p.ready.Store(true)
		}
		p.log.Info("agent: " + line)
	}
}

// Messages yields the framed JSON-RPC messages from the agent's stdout.
// The channel closes when the process's stdout does.
func (p *Process) Messages() <-chan codec.Message { return p.msgs }

// Done is closed once the process has exited.
func (p *Process) Done() <-chan struct{} { return p.done }

// Ready reports whether the stderr ready marker has been seen.
func (p *Process) Ready() bool { return p.ready.Load() }

// Stopping reports whether Stop was called; the launcher uses it to tell
// a deliberate shutdown from a crash.
func (p *Process) Stopping() bool { return p.stopping.Load() }

// ExitErr returns the process's exit error once Done is closed.
func (p *Process) ExitErr() error {
	p.exitMu.Lock()
	defer p.exitMu.Unlock()
	return p.exitErr
}

// Send writes one JSON-RPC message to the agent's stdin.
func (p *Process) Send(v any) error {
	select {
	case <-p.done:
		return ErrExited
	default:
	}
	data, err := p.framer.Serialize(v)
	if err != nil {
		return err
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_, err = p.stdin.Write(data)
	return err
}

// WaitReady polls for the stderr ready marker every 500 ms for up to the
// given number of attempts. Budget exhaustion and process death are
// distinct errors.
func (p *Process) WaitReady(attempts int) error {
	for i := 0; i < attempts; i++ {
		if p.ready.Load() {
			return nil
		}
		select {
		case <-p.done:
			return fmt.Errorf("%w while waiting for ready marker", ErrExited)
		case <-time.After(readyPollInterval):
		}
	}
	if p.ready.Load() {
		return nil
	}
	return fmt.Errorf("%w: no ready marker after %d attempts", ErrConnectTimeout, attempts)
}

// Stop terminates the sidecar: SIGTERM first, escalating to SIGKILL if the
// process has not exited within the grace period. Calling Stop again, or
// on a process that already exited, is a no-op.
func (p *Process) Stop() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if !p.stopping.CompareAndSwap(false, true) {
		return nil
	}
	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		p.log.Warnf("SIGTERM failed: %v", err)
	}
	select {
	case <-p.done:
	case <-time.After(stopGracePeriod):
		p.log.Warn("agent did not exit after SIGTERM, killing")
		_ = p.cmd.Process.Kill()
		<-p.done
	}
	return nil
}
