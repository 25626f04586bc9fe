package worker

import (
	"github.com/mdzio/go-lib/conc"

	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/proto"
)

const emitterQueueSize = 200

// Emitter sends events of the entity to the supervisor. Events are queued and
// written by a background goroutine, so that Emit never blocks. If the queue
// is full, the event is dropped.
type Emitter struct {
	w      *frame.Writer
	events chan *proto.Event
	cancel func()
}

// NewEmitter creates an Emitter writing to w. w should be shared with the
// Server to serialize all frames.
func NewEmitter(w *frame.Writer) *Emitter {
	e := &Emitter{
		w:      w,
		events: make(chan *proto.Event, emitterQueueSize),
	}
	e.cancel = conc.DaemonFunc(e.run)
	return e
}

// Emit implements entity.EventSink.
func (e *Emitter) Emit(ev *proto.Event) {
	select {
	case e.events <- ev:
	default:
		log.Errorf("Queue overflow, event dropped: %v", ev)
	}
}

// Close sends the queued events and stops the Emitter.
func (e *Emitter) Close() {
	e.cancel()
}

func (e *Emitter) run(ctx conc.Context) {
	for {
		select {
		case ev := <-e.events:
			e.send(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-e.events:
					e.send(ev)
				default:
					return
				}
			}
		}
	}
}

func (e *Emitter) send(ev *proto.Event) {
	b, err := ev.Encode()
	if err != nil {
		log.Errorf("Encoding of event %v failed: %v", ev, err)
		return
	}
	if err := e.w.WriteFrame(b); err != nil {
		log.Errorf("Sending of event %v failed: %v", ev, err)
		return
	}
	log.Tracef("Event sent: %v", ev)
}
