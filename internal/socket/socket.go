// Package socket owns the websocket session mechanics shared by the
// market-data and order-update feeds: dialing, the irreversible send/receive
// split, outbound frame encoding, and the inbound frame pump. Message
// semantics stay in the feed packages; this package moves bytes.
package socket

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	json "github.com/goccy/go-json"

	"github.com/xgillard/apca-datav2/errs"
)

// FrameMode selects the websocket frame type used for outbound messages. The
// market-data service speaks text frames; the order-update service speaks
// binary frames. Inbound frames of either type are accepted regardless.
type FrameMode int

const (
	TextFrames FrameMode = iota
	BinaryFrames
)

// Transport is the minimal bidirectional message connection the session needs.
// The production implementation wraps coder/websocket; tests substitute stubs.
type Transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

type wsTransport struct {
	conn *websocket.Conn
	mode websocket.MessageType
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	typ, data, err := t.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageText && typ != websocket.MessageBinary {
		return nil, fmt.Errorf("unexpected websocket frame type %v", typ)
	}
	return data, nil
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, t.mode, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "shutdown")
}

// Dial opens a websocket connection to url and wraps it in a Conn.
func Dial(ctx context.Context, url string, mode FrameMode) (*Conn, error) {
	wsConn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, errs.Transport(errs.FamilyStream, fmt.Errorf("dial %s: %w", url, err))
	}
	frameMode := websocket.MessageText
	if mode == BinaryFrames {
		frameMode = websocket.MessageBinary
	}
	// Frames can be large bursts of batched data points.
	wsConn.SetReadLimit(1 << 22)
	return NewConn(&wsTransport{conn: wsConn, mode: frameMode}), nil
}

// Conn is an unsplit session connection. Its only operations are Split and
// Close; all traffic flows through the halves.
type Conn struct {
	transport Transport
}

// NewConn wraps an established transport.
func NewConn(t Transport) *Conn {
	return &Conn{transport: t}
}

// Split consumes the connection and returns its two independently-owned
// directions. The Conn is unusable afterwards; a second Split fails. The two
// halves share no mutable state, so one goroutine may write while another
// reads without synchronization.
func (c *Conn) Split() (*SendHalf, *RecvHalf, error) {
	if c.transport == nil {
		return nil, nil, errs.ErrConnClosed
	}
	t := c.transport
	c.transport = nil
	return &SendHalf{transport: t}, &RecvHalf{transport: t}, nil
}

// Close drops an unsplit connection.
func (c *Conn) Close() error {
	if c.transport == nil {
		return errs.ErrConnClosed
	}
	t := c.transport
	c.transport = nil
	return t.Close()
}

// SendHalf is the outbound direction of a split connection. Every call is a
// one-shot encode-and-transmit; it returns once the frame is written, without
// waiting for any server acknowledgement.
type SendHalf struct {
	transport Transport
}

// Send marshals v and writes it as a single frame.
func (s *SendHalf) Send(ctx context.Context, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errs.Serialization(errs.FamilyStream, err)
	}
	if err := s.transport.Write(ctx, payload); err != nil {
		return errs.Transport(errs.FamilyStream, err)
	}
	return nil
}

// RecvHalf is the inbound direction of a split connection.
type RecvHalf struct {
	transport Transport
}

// Frames pumps raw inbound frames until the transport fails or ctx is
// cancelled. Both channels close when the pump stops; the transport is closed
// on the way out so an abandoned receiver releases the socket.
func (r *RecvHalf) Frames(ctx context.Context) (<-chan []byte, <-chan error) {
	frames := make(chan []byte)
	errCh := make(chan error, 1)

	go func() {
		defer close(frames)
		defer close(errCh)
		defer func() {
			_ = r.transport.Close()
		}()
		for {
			data, err := r.transport.Read(ctx)
			if err != nil {
				// A read cut short by the caller's own context, whether
				// cancelled or past its deadline, is not a transport fault.
				if ctx.Err() != nil {
					return
				}
				select {
				case errCh <- errs.Transport(errs.FamilyStream, err):
				default:
				}
				return
			}
			select {
			case <-ctx.Done():
				return
			case frames <- data:
			}
		}
	}()

	return frames, errCh
}
