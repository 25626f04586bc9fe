package port

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// Address schemes.
const (
	SchemeUnix = "unix"
	SchemeTCP  = "tcp"
	SchemePipe = "npipe"
)

// SplitAddr splits an address of the form scheme:path.
func SplitAddr(addr string) (scheme, path string, err error) {
	idx := strings.IndexByte(addr, ':')
	if idx < 0 {
		return "", "", fmt.Errorf("Invalid address, missing scheme: %s", addr)
	}
	scheme, path = addr[:idx], addr[idx+1:]
	switch scheme {
	case SchemeUnix, SchemeTCP, SchemePipe:
		if path == "" {
			return "", "", fmt.Errorf("Invalid address, missing path: %s", addr)
		}
		return scheme, path, nil
	}
	return "", "", fmt.Errorf("Unsupported address scheme: %s", scheme)
}

// Dial connects to an already running worker. Supported addresses are
// unix:/path/to/socket, tcp:host:port and, on Windows, npipe:\\.\pipe\name.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	scheme, path, err := SplitAddr(addr)
	if err != nil {
		return nil, err
	}
	var conn net.Conn
	if scheme == SchemePipe {
		conn, err = dialPipe(ctx, path)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, scheme, path)
	}
	if err != nil {
		return nil, fmt.Errorf("Connecting to worker %s failed: %w", addr, err)
	}
	log.Debugf("Connected to worker %s", addr)
	return conn, nil
}

// Listen creates a listener for the worker side of Dial.
func Listen(addr string) (net.Listener, error) {
	scheme, path, err := SplitAddr(addr)
	if err != nil {
		return nil, err
	}
	var l net.Listener
	if scheme == SchemePipe {
		l, err = listenPipe(path)
	} else {
		l, err = net.Listen(scheme, path)
	}
	if err != nil {
		return nil, fmt.Errorf("Listen on address %s failed: %w", addr, err)
	}
	return l, nil
}
