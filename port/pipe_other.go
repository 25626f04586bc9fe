//go:build !windows

package port

import (
	"context"
	"errors"
	"net"
)

var errNoPipes = errors.New("Named pipes are only supported on Windows")

func dialPipe(context.Context, string) (net.Conn, error) {
	return nil, errNoPipes
}

func listenPipe(string) (net.Listener, error) {
	return nil, errNoPipes
}
