package port

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/mdzio/go-lib/conc"
	"go.opentelemetry.io/otel/metric"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
)

const (
	// DefaultRestartDelay is the delay before a failed worker is restarted.
	DefaultRestartDelay = 5 * time.Second

	// time for the worker to exit after its stdin is closed
	stopTimeout = 3 * time.Second
)

// ErrNotRunning is returned by Supervisor.Call while no worker is running.
var ErrNotRunning = errors.New("Worker not running")

// Supervisor starts a worker process and talks to it over stdin and stdout.
// If the worker exits or the channel fails, the worker is restarted after
// RestartDelay.
type Supervisor struct {
	// Path is the worker executable.
	Path string
	// Args are passed to the worker before the -mode flag.
	Args []string
	Mode entity.Mode
	// RestartDelay defaults to DefaultRestartDelay.
	RestartDelay time.Duration
	// MaxFrameSize limits frames in both directions. 0 selects
	// frame.DefaultMaxSize.
	MaxFrameSize int
	// Events receives the events of all worker instances.
	Events EventHandler
	// MeterProvider supplies the meter of the ports.
	MeterProvider metric.MeterProvider
	// OnStart is called after each start of the worker, e.g. to configure the
	// entity. If it fails, the worker is restarted.
	OnStart func(ctx context.Context, p *Port) error

	mutex  sync.Mutex
	port   *Port
	cancel func()
}

// Start starts the worker and the restart loop.
func (s *Supervisor) Start() {
	if s.RestartDelay <= 0 {
		s.RestartDelay = DefaultRestartDelay
	}
	cancel := conc.DaemonFunc(s.run)
	s.mutex.Lock()
	s.cancel = cancel
	s.mutex.Unlock()
}

// Stop stops the worker and waits for its exit.
func (s *Supervisor) Stop() {
	s.mutex.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mutex.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Port returns the port of the running worker.
func (s *Supervisor) Port() (*Port, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.port == nil {
		return nil, ErrNotRunning
	}
	return s.port, nil
}

// Call forwards a call to the running worker.
func (s *Supervisor) Call(ctx context.Context, cmd proto.Command, token Token, args ...interface{}) (interface{}, error) {
	p, err := s.Port()
	if err != nil {
		return nil, err
	}
	return p.Call(ctx, cmd, token, args...)
}

func (s *Supervisor) setPort(p *Port) {
	s.mutex.Lock()
	s.port = p
	s.mutex.Unlock()
}

func (s *Supervisor) run(ctx conc.Context) {
	for {
		err := s.runWorker(ctx)
		if ctx.IsDone() {
			log.Info("Supervisor stopped")
			return
		}
		log.Errorf("Worker %s failed, restarting in %v: %v", s.Path, s.RestartDelay, err)
		if ctx.Sleep(s.RestartDelay) != nil {
			log.Info("Supervisor stopped")
			return
		}
	}
}

func (s *Supervisor) runWorker(ctx conc.Context) error {
	args := append(append([]string(nil), s.Args...), "-mode", s.Mode.String())
	cmd := exec.Command(s.Path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = &logWriter{}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("Starting of worker failed: %w", err)
	}
	log.Infof("Worker %s started, PID %d", s.Path, cmd.Process.Pid)

	p := New(&pipeConn{r: stdout, w: stdin}, Config{
		MaxFrameSize:  s.MaxFrameSize,
		Events:        s.Events,
		MeterProvider: s.MeterProvider,
	})
	cause := s.startup(ctx, p)
	if cause == nil {
		s.setPort(p)
		select {
		case <-p.Done():
			cause = p.Err()
		case <-ctx.Done():
			cause = ErrClosed
		}
		s.setPort(nil)
	}
	// closing stdin makes the worker exit
	p.Close()
	return s.wait(cmd, cause)
}

func (s *Supervisor) startup(ctx conc.Context, p *Port) error {
	if s.OnStart == nil {
		return nil
	}
	cctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-cctx.Done():
		}
	}()
	if err := s.OnStart(cctx, p); err != nil {
		return fmt.Errorf("Start hook failed: %w", err)
	}
	return nil
}

// wait waits for the exit of the worker. It is killed after stopTimeout.
func (s *Supervisor) wait(cmd *exec.Cmd, cause error) error {
	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()
	var err error
	select {
	case err = <-exited:
	case <-time.After(stopTimeout):
		log.Warningf("Worker %s does not exit, killing it", s.Path)
		cmd.Process.Kill()
		err = <-exited
	}
	if err != nil {
		log.Debugf("Worker exited: %v", err)
		if cause == nil || errors.Is(cause, ErrClosed) {
			cause = fmt.Errorf("Worker exited: %w", err)
		}
	} else {
		log.Debug("Worker exited")
	}
	return cause
}

// pipeConn combines the stdio pipes of the worker.
type pipeConn struct {
	r io.ReadCloser
	w io.WriteCloser
}

func (c *pipeConn) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

func (c *pipeConn) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c *pipeConn) Close() error {
	werr := c.w.Close()
	rerr := c.r.Close()
	if werr != nil {
		return werr
	}
	return rerr
}

// logWriter forwards the stderr lines of the worker to the log.
type logWriter struct {
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := w.buf.Next(idx + 1)
		log.Info("worker: ", string(bytes.TrimRight(line, "\r\n")))
	}
	return len(p), nil
}
