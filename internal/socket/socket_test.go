package socket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xgillard/apca-datav2/errs"
)

// stubTransport records written frames and serves scripted inbound ones.
type stubTransport struct {
	mu      sync.Mutex
	written [][]byte
	inbound chan []byte
	readErr error
	closed  bool
}

func newStubTransport() *stubTransport {
	return &stubTransport{inbound: make(chan []byte, 8)}
}

func (s *stubTransport) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case data, ok := <-s.inbound:
		if !ok {
			if s.readErr != nil {
				return nil, s.readErr
			}
			return nil, errors.New("transport closed")
		}
		return data, nil
	}
}

func (s *stubTransport) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, append([]byte(nil), data...))
	return nil
}

func (s *stubTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubTransport) frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.written))
	copy(out, s.written)
	return out
}

func TestSplitConsumesConnection(t *testing.T) {
	conn := NewConn(newStubTransport())

	send, recv, err := conn.Split()
	require.NoError(t, err)
	require.NotNil(t, send)
	require.NotNil(t, recv)

	_, _, err = conn.Split()
	require.ErrorIs(t, err, errs.ErrConnClosed)
	require.ErrorIs(t, conn.Close(), errs.ErrConnClosed)
}

func TestSendWritesFramesInCallOrder(t *testing.T) {
	transport := newStubTransport()
	send, _, err := NewConn(transport).Split()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, send.Send(ctx, map[string]string{"action": "auth"}))
	require.NoError(t, send.Send(ctx, map[string]string{"action": "subscribe"}))

	frames := transport.frames()
	require.Len(t, frames, 2)
	require.Contains(t, string(frames[0]), "auth")
	require.Contains(t, string(frames[1]), "subscribe")
}

func TestSendPathIndependentOfReceivePath(t *testing.T) {
	// No reader is draining the inbound direction; sends must still complete.
	transport := newStubTransport()
	transport.inbound <- []byte(`[{"T":"success","msg":"connected"}]`)
	send, _, err := NewConn(transport).Split()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, send.Send(ctx, map[string]string{"action": "auth"}))
	require.NoError(t, send.Send(ctx, map[string]string{"action": "subscribe"}))
	require.Len(t, transport.frames(), 2)
}

func TestFramesDeliversInArrivalOrder(t *testing.T) {
	transport := newStubTransport()
	transport.inbound <- []byte(`first`)
	transport.inbound <- []byte(`second`)
	close(transport.inbound)

	_, recv, err := NewConn(transport).Split()
	require.NoError(t, err)

	frames, errCh := recv.Frames(context.Background())
	require.Equal(t, "first", string(<-frames))
	require.Equal(t, "second", string(<-frames))

	_, ok := <-frames
	require.False(t, ok)
	for err := range errCh {
		require.Error(t, err)
	}
	require.True(t, transport.closed)
}

func TestFramesSurfacesTransportError(t *testing.T) {
	transport := newStubTransport()
	transport.readErr = errors.New("connection reset")
	close(transport.inbound)

	_, recv, err := NewConn(transport).Split()
	require.NoError(t, err)

	frames, errCh := recv.Frames(context.Background())
	_, ok := <-frames
	require.False(t, ok)

	got := <-errCh
	require.Error(t, got)
	var e *errs.E
	require.ErrorAs(t, got, &e)
	require.Equal(t, errs.CodeTransport, e.Code)
}

func TestFramesStopsOnContextCancel(t *testing.T) {
	transport := newStubTransport()
	_, recv, err := NewConn(transport).Split()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	frames, _ := recv.Frames(ctx)
	cancel()

	require.Eventually(t, func() bool {
		_, ok := <-frames
		return !ok
	}, time.Second, 10*time.Millisecond, "frames channel not closed after cancel")
	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()
		return transport.closed
	}, time.Second, 10*time.Millisecond, "transport not released after cancel")
}

func TestFramesStopsQuietlyOnDeadlineExceeded(t *testing.T) {
	transport := newStubTransport()
	_, recv, err := NewConn(transport).Split()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	frames, errCh := recv.Frames(ctx)

	require.Eventually(t, func() bool {
		_, ok := <-frames
		return !ok
	}, time.Second, 10*time.Millisecond, "frames channel not closed after deadline")
	for err := range errCh {
		require.Fail(t, "deadline expiry surfaced as transport error", "%v", err)
	}
	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()
		return transport.closed
	}, time.Second, 10*time.Millisecond, "transport not released after deadline")
}

func TestHandleDecodeErrorPolicies(t *testing.T) {
	decodeErr := errors.New("bad frame")

	errCh := make(chan error, 1)
	require.False(t, HandleDecodeError(SkipOnDecodeError, errCh, decodeErr))
	require.Empty(t, errCh)

	require.False(t, HandleDecodeError(EmitOnDecodeError, errCh, decodeErr))
	require.ErrorIs(t, <-errCh, decodeErr)

	require.True(t, HandleDecodeError(FailOnDecodeError, errCh, decodeErr))
	require.ErrorIs(t, <-errCh, decodeErr)
}
