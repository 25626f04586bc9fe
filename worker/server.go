package worker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

// Server reads requests, executes them against the entity and sends the
// replies.
type Server struct {
	Entity     entity.Entity
	Dispatcher *Dispatcher
	// MaxFrameSize limits incoming frames. 0 selects frame.DefaultMaxSize.
	MaxFrameSize int
}

// Serve processes requests from r until r reaches EOF. Replies are written to
// w. A nil error is returned on a clean EOF, otherwise the fatal error that
// stopped processing: a framing, protocol or I/O error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w *frame.Writer) error {
	if s.Dispatcher == nil {
		s.Dispatcher = NewDispatcher()
	}
	fr := frame.NewReader(r, s.MaxFrameSize)
	log.Info("Serving requests")
	for {
		payload, err := fr.ReadFrame()
		if err == io.EOF {
			log.Info("Channel closed by supervisor")
			return nil
		}
		if err != nil {
			return fmt.Errorf("Receiving of request failed: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := proto.DecodeMessage(payload)
		if err != nil {
			return err
		}
		req, ok := msg.(*proto.Request)
		if !ok {
			return &term.ProtocolError{Msg: fmt.Sprintf("Unexpected message from supervisor: %T", msg)}
		}
		rep, err := s.execute(ctx, req)
		if err != nil {
			return fmt.Errorf("Command %s failed: %w", req.Command, err)
		}
		if err := s.send(w, req, rep); err != nil {
			return err
		}
	}
}

// execute runs a command. Only fatal errors are returned, call errors are
// converted into the reply.
func (s *Server) execute(ctx context.Context, req *proto.Request) (*proto.Reply, error) {
	log.Debugf("Executing %s, token % X", req.Command, req.Token)
	args := term.NewArgs(req.Args)
	var res interface{}
	var err error
	if s.Entity == nil && req.Command != proto.CmdTest {
		err = ua.ErrNoEntity
	} else {
		res, err = s.Dispatcher.Dispatch(ctx, req.Command, s.Entity, args)
	}
	if err == nil {
		return &proto.Reply{Token: req.Token, Result: res}, nil
	}
	if term.IsProtocolError(err) {
		return nil, err
	}
	return &proto.Reply{Token: req.Token, Err: replyError(req.Command, err)}, nil
}

func replyError(cmd proto.Command, err error) *proto.ReplyError {
	if le, ok := ua.AsLocal(err); ok {
		log.Debugf("%s rejected: %v", cmd, err)
		return proto.LocalError(le)
	}
	if sc, ok := ua.AsStatus(err); ok {
		log.Debugf("%s failed: %v", cmd, err)
		if !sc.Known() {
			log.Warningf("Unknown status code from %s: 0x%08X", cmd, uint32(sc))
		}
		return proto.StatusError(sc)
	}
	log.Errorf("%s failed: %v", cmd, err)
	return proto.StatusError(ua.StatusBadInternalError)
}

func (s *Server) send(w *frame.Writer, req *proto.Request, rep *proto.Reply) error {
	b, err := rep.Encode()
	if err != nil {
		log.Errorf("Encoding of reply for %s failed: %v", req.Command, err)
		rep = &proto.Reply{Token: req.Token, Err: proto.StatusError(ua.StatusBadInternalError)}
		if b, err = rep.Encode(); err != nil {
			return err
		}
	}
	err = w.WriteFrame(b)
	if errors.Is(err, frame.ErrTooLarge) {
		// nothing was written, the channel is still in sync
		log.Warningf("Reply for %s exceeds frame size: %v", req.Command, err)
		rep = &proto.Reply{Token: req.Token, Err: proto.StatusError(ua.StatusBadResponseTooLarge)}
		if b, err = rep.Encode(); err != nil {
			return err
		}
		err = w.WriteFrame(b)
	}
	if err != nil {
		return fmt.Errorf("Sending of reply failed: %w", err)
	}
	return nil
}
