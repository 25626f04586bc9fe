// Package port is the supervisor side of the channel to a worker. A Port
// correlates calls with replies by their token, allows any number of
// concurrent calls and forwards unsolicited events to an event handler.
package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mdzio/go-lib/conc"
	"github.com/mdzio/go-logging"
	"go.opentelemetry.io/otel/metric"

	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

var log = logging.Get("uaport-port")

// Port errors.
var (
	ErrClosed         = errors.New("Port closed")
	ErrEmptyToken     = errors.New("Empty token")
	ErrDuplicateToken = errors.New("Token already outstanding")
)

// EventHandler receives events and replies for unknown tokens. It is called
// from the read loop, one event at a time and in arrival order.
type EventHandler interface {
	HandleEvent(ev *proto.Event)
}

// EventHandlerFunc is an adapter to use ordinary functions as EventHandler.
type EventHandlerFunc func(ev *proto.Event)

// HandleEvent implements EventHandler.
func (f EventHandlerFunc) HandleEvent(ev *proto.Event) {
	f(ev)
}

// Config configures a Port.
type Config struct {
	// MaxFrameSize limits incoming and outgoing frames. 0 selects
	// frame.DefaultMaxSize.
	MaxFrameSize int
	// Events receives events. If nil, events are logged and dropped.
	Events EventHandler
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
}

type callState int

const (
	stateSent callState = iota
	stateAwaitingReply
	stateCompleted
)

type pendingCall struct {
	cmd   proto.Command
	state callState
	reply chan *proto.Reply
}

// Port is the correlation and dispatch router for one channel.
type Port struct {
	conn    io.ReadWriteCloser
	reader  *frame.Reader
	writer  *frame.Writer
	events  EventHandler
	metrics *metrics

	mutex     sync.Mutex
	pending   map[string]*pendingCall
	abandoned map[string]struct{}
	err       error
	done      chan struct{}

	cancel func()
}

// New creates a Port on conn and starts reading.
func New(conn io.ReadWriteCloser, cfg Config) *Port {
	p := &Port{
		conn:      conn,
		reader:    frame.NewReader(conn, cfg.MaxFrameSize),
		writer:    frame.NewWriter(conn, cfg.MaxFrameSize),
		events:    cfg.Events,
		metrics:   newMetrics(cfg.MeterProvider),
		pending:   make(map[string]*pendingCall),
		abandoned: make(map[string]struct{}),
		done:      make(chan struct{}),
	}
	p.cancel = conc.DaemonFunc(p.run)
	return p
}

// Call sends a command with the given arguments and waits for the reply. A
// failed call returns a *proto.ReplyError, which the channel survives. A
// request exceeding the frame size limit is not sent and fails with a local
// einval error. Other errors are context errors or channel failures wrapping
// ErrClosed.
func (p *Port) Call(ctx context.Context, cmd proto.Command, token Token, args ...interface{}) (interface{}, error) {
	if len(token) == 0 {
		return nil, ErrEmptyToken
	}
	req, err := proto.NewRequest(cmd, token, args...)
	if err != nil {
		return nil, err
	}
	payload, err := req.Encode()
	if err != nil {
		return nil, err
	}
	// an oversized request is never written, the channel stays in sync
	if len(payload) > p.writer.MaxSize() {
		return nil, ua.Errorf(ua.ErrInvalidArgument, "Request %s exceeds frame size limit: %d > %d",
			cmd, len(payload), p.writer.MaxSize())
	}

	// register before sending, the reply may arrive before Write returns
	key := token.key()
	c := &pendingCall{cmd: cmd, state: stateSent, reply: make(chan *proto.Reply, 1)}
	p.mutex.Lock()
	if p.err != nil {
		p.mutex.Unlock()
		return nil, p.closedErr()
	}
	if _, ok := p.pending[key]; ok {
		p.mutex.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrDuplicateToken, token)
	}
	if _, ok := p.abandoned[key]; ok {
		p.mutex.Unlock()
		return nil, fmt.Errorf("%w: %v (reply of abandoned call pending)", ErrDuplicateToken, token)
	}
	p.pending[key] = c
	p.mutex.Unlock()

	start := time.Now()
	p.metrics.call(cmd)
	log.Debugf("Calling %s, token %v", cmd, token)
	if err := p.writer.WriteFrame(payload); err != nil {
		p.fail(err)
		return nil, p.closedErr()
	}
	p.mutex.Lock()
	if c.state == stateSent {
		c.state = stateAwaitingReply
	}
	p.mutex.Unlock()

	select {
	case rep := <-c.reply:
		return p.result(c, rep, start)
	case <-p.done:
		return nil, p.closedErr()
	case <-ctx.Done():
		p.mutex.Lock()
		if _, ok := p.pending[key]; ok {
			delete(p.pending, key)
			p.abandoned[key] = struct{}{}
			p.mutex.Unlock()
			log.Debugf("Call of %s abandoned, token %v: %v", cmd, token, ctx.Err())
			return nil, ctx.Err()
		}
		p.mutex.Unlock()
		// reply or failure raced with the cancellation
		select {
		case rep := <-c.reply:
			return p.result(c, rep, start)
		case <-p.done:
			return nil, p.closedErr()
		}
	}
}

func (p *Port) result(c *pendingCall, rep *proto.Reply, start time.Time) (interface{}, error) {
	p.metrics.completed(c.cmd, start)
	if rep.Err != nil {
		log.Debugf("Call of %s failed: %v", c.cmd, rep.Err)
		return nil, rep.Err
	}
	log.Debugf("Call of %s succeeded", c.cmd)
	return rep.Result, nil
}

// Err returns the cause of the channel failure, or nil while the port is
// working.
func (p *Port) Err() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.err
}

// Done is closed when the port has failed or was closed.
func (p *Port) Done() <-chan struct{} {
	return p.done
}

// Pending returns the number of outstanding calls.
func (p *Port) Pending() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.pending)
}

// Close closes the channel. Outstanding calls fail with ErrClosed.
func (p *Port) Close() {
	p.fail(ErrClosed)
	p.cancel()
}

func (p *Port) closedErr() error {
	p.mutex.Lock()
	cause := p.err
	p.mutex.Unlock()
	if cause == nil || errors.Is(cause, ErrClosed) {
		return ErrClosed
	}
	return fmt.Errorf("%w: %w", ErrClosed, cause)
}

// fail marks the port as failed. The first cause wins.
func (p *Port) fail(cause error) {
	p.mutex.Lock()
	if p.err != nil {
		p.mutex.Unlock()
		return
	}
	p.err = cause
	n := len(p.pending)
	p.pending = make(map[string]*pendingCall)
	p.abandoned = make(map[string]struct{})
	close(p.done)
	p.mutex.Unlock()

	if cause != ErrClosed {
		p.metrics.failure()
		log.Errorf("Channel failed, %d pending calls aborted: %v", n, cause)
	} else {
		log.Debugf("Channel closed, %d pending calls aborted", n)
	}
	p.conn.Close()
}

func (p *Port) run(ctx conc.Context) {
	for {
		payload, err := p.reader.ReadFrame()
		if err != nil {
			if ctx.IsDone() {
				return
			}
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			p.fail(fmt.Errorf("Receiving of frame failed: %w", err))
			return
		}
		msg, err := proto.DecodeMessage(payload)
		if err != nil {
			p.fail(err)
			return
		}
		switch m := msg.(type) {
		case *proto.Reply:
			p.reply(m)
		case *proto.Event:
			p.event(m)
		default:
			p.fail(&term.ProtocolError{Msg: fmt.Sprintf("Unexpected message from worker: %T", msg)})
			return
		}
	}
}

func (p *Port) reply(rep *proto.Reply) {
	key := Token(rep.Token).key()
	p.mutex.Lock()
	c, ok := p.pending[key]
	if ok {
		delete(p.pending, key)
		c.state = stateCompleted
		c.reply <- rep
		p.mutex.Unlock()
		return
	}
	_, late := p.abandoned[key]
	if late {
		delete(p.abandoned, key)
	}
	p.mutex.Unlock()

	if late {
		p.metrics.lateReply()
		log.Warningf("Late reply dropped, token %v", Token(rep.Token))
		return
	}
	log.Warningf("Reply for unknown token %v", Token(rep.Token))
	p.event(&proto.Event{Kind: proto.OrphanReply, Reply: rep})
}

func (p *Port) event(ev *proto.Event) {
	p.metrics.event(ev.Kind)
	if p.events == nil {
		log.Debugf("Event dropped: %v", ev)
		return
	}
	if log.TraceEnabled() {
		log.Tracef("Event received: %v", ev)
	}
	p.events.HandleEvent(ev)
}
