//go:build windows

package port

import (
	"context"
	"net"

	"github.com/Microsoft/go-winio"
)

func dialPipe(ctx context.Context, path string) (net.Conn, error) {
	return winio.DialPipeContext(ctx, path)
}

func listenPipe(path string) (net.Listener, error) {
	return winio.ListenPipe(path, nil)
}
