/*
uaworker executes OPC UA commands received on a framed binary channel. By
default the channel is stdin/stdout, so the worker can be started as port
process by a supervisor. Log messages are written to stderr.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/entity/memory"
	"github.com/mdzio/go-uaport/entity/uaclient"
	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/port"
	"github.com/mdzio/go-uaport/worker"
)

var (
	log = logging.Get("main")

	logLevel = logging.InfoLevel
	mode     = entity.Server
	maxFrame = flag.Int("maxframe", frame.DefaultMaxSize, "max. frame payload size in `bytes`")
	listen   = flag.String("listen", "", "serve connections on `address` (unix:path, tcp:host:port or npipe:name) instead of stdin/stdout")
)

func init() {
	flag.Var(
		&logLevel,
		"log",
		"specifies the minimum `severity` of printed log messages: off, error, warning, info, debug or trace",
	)
	flag.Var(&mode, "mode", "entity `mode`: client or server")
}

func newEntity(sink entity.EventSink) entity.Entity {
	if mode == entity.Client {
		return uaclient.New(sink)
	}
	return memory.New(sink)
}

// serve runs a worker on a channel until the channel is closed.
func serve(r io.Reader, w io.Writer) error {
	fw := frame.NewWriter(w, *maxFrame)
	em := worker.NewEmitter(fw)
	e := newEntity(em)
	srv := &worker.Server{Entity: e, MaxFrameSize: *maxFrame}
	err := srv.Serve(context.Background(), r, fw)
	if cerr := e.Close(); cerr != nil {
		log.Warningf("Closing of %s entity failed: %v", mode, cerr)
	}
	em.Close()
	return err
}

func serveListener() error {
	l, err := port.Listen(*listen)
	if err != nil {
		return err
	}
	defer l.Close()
	log.Infof("Listening on %s", *listen)
	for {
		conn, err := l.Accept()
		if err != nil {
			return fmt.Errorf("Accepting connection failed: %w", err)
		}
		log.Infof("Connection from %s accepted", conn.RemoteAddr())
		err = serve(conn, conn)
		conn.Close()
		if err != nil {
			return err
		}
	}
}

func run() error {
	// parse command line
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage of uaworker:")
		flag.PrintDefaults()
	}
	// flag.Parse calls os.Exit(2) on error
	flag.Parse()
	// set log options
	logging.SetLevel(logLevel)
	log.Infof("Starting worker in %s mode", mode)

	if *listen != "" {
		return serveListener()
	}
	// stdout is the channel, nothing else may write to it
	channel := os.Stdout
	os.Stdout = os.Stderr
	return serve(os.Stdin, channel)
}

func main() {
	err := run()
	// log fatal error
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	os.Exit(0)
}
