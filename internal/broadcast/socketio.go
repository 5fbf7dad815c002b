package broadcast

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultDialTimeout bounds the wait for the initial connection.
const DefaultDialTimeout = 15 * time.Second

// SocketIO publishes events over a socket.io connection.
type SocketIO struct {
	client *socket.Socket
}

var _ Publisher = (*SocketIO)(nil)

// Dial connects to rawURL. The URL path selects the socket.io path and the
// fragment, if any, selects the namespace.
func Dial(ctx context.Context, rawURL string, timeout time.Duration) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse broadcast URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("broadcast URL %q must include scheme and host", rawURL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := "/"
	if parsedURL.Fragment != "" {
		namespace = "/" + parsedURL.Fragment
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Broadcast connected.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Connecting broadcast client...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Publish emits e as EventName.
func (s *SocketIO) Publish(ctx context.Context, e *Event) error {
	if !s.client.Connected() {
		return errors.New("broadcast client is not connected")
	}
	ctxlog.FromContext(ctx).Debug("Publishing run result.", "sid", s.client.Id(), "exit_code", e.ExitCode)
	return s.client.Emit(EventName, e.Map())
}

// Close disconnects the client.
func (s *SocketIO) Close() error {
	s.client.Disconnect()
	return nil
}
