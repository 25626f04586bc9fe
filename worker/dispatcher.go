// Package worker serves commands received over the channel against an entity.
// Commands are processed one at a time. Events of the entity are sent
// independently by an Emitter.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
)

var log = logging.Get("uaport-worker")

// A Handler executes a command. It reads its arguments from args and must call
// args.Done before using them. A nil result is replied as ok.
type Handler interface {
	Call(ctx context.Context, e entity.Entity, args *term.Args) (interface{}, error)
}

// HandlerFunc is an adapter to use ordinary functions as Handler.
type HandlerFunc func(ctx context.Context, e entity.Entity, args *term.Args) (interface{}, error)

// Call implements interface Handler.
func (f HandlerFunc) Call(ctx context.Context, e entity.Entity, args *term.Args) (interface{}, error) {
	return f(ctx, e, args)
}

// UnknownFunc handles commands without registered handler.
type UnknownFunc func(ctx context.Context, cmd proto.Command, e entity.Entity, args *term.Args) (interface{}, error)

// Dispatcher dispatches a command to a registered handler.
type Dispatcher struct {
	mutex    sync.RWMutex
	handlers map[proto.Command]Handler
	unknown  UnknownFunc
}

// NewDispatcher creates a Dispatcher with handlers for all commands.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	registerHandlers(d)
	return d
}

// Handle registers a Handler.
func (d *Dispatcher) Handle(cmd proto.Command, h Handler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.handlers == nil {
		d.handlers = make(map[proto.Command]Handler)
	}
	d.handlers[cmd] = h
}

// HandleFunc registers an ordinary function as Handler.
func (d *Dispatcher) HandleFunc(cmd proto.Command, f func(context.Context, entity.Entity, *term.Args) (interface{}, error)) {
	d.Handle(cmd, HandlerFunc(f))
}

// HandleUnknownFunc registers a function to handle unknown commands. By
// default, unknown commands are protocol errors.
func (d *Dispatcher) HandleUnknownFunc(f UnknownFunc) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.unknown = f
}

// Commands lists the commands with registered handler.
func (d *Dispatcher) Commands() []proto.Command {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	cmds := make([]proto.Command, 0, len(d.handlers))
	for cmd := range d.handlers {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// Dispatch dispatches a command to the registered handler.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd proto.Command, e entity.Entity, args *term.Args) (interface{}, error) {
	d.mutex.RLock()
	h, ok := d.handlers[cmd]
	unknown := d.unknown
	d.mutex.RUnlock()

	if !ok {
		if unknown == nil {
			unknown = func(_ context.Context, cmd proto.Command, _ entity.Entity, _ *term.Args) (interface{}, error) {
				return nil, &term.ProtocolError{Msg: fmt.Sprintf("Unknown command: %s", cmd)}
			}
		}
		return unknown(ctx, cmd, e, args)
	}
	return h.Call(ctx, e, args)
}
