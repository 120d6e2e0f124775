package tradestream

import (
	"context"

	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/internal/socket"
)

// Streaming endpoints for the live and paper trading environments.
const (
	LiveStreamURL  = "wss://api.alpaca.markets/stream"
	PaperStreamURL = "wss://paper-api.alpaca.markets/stream"
)

// StreamOption configures an order-update stream client.
type StreamOption func(*streamConfig)

type streamConfig struct {
	url    string
	policy socket.DecodePolicy
}

// WithStreamURL overrides the endpoint URL. Intended for tests.
func WithStreamURL(url string) StreamOption {
	return func(c *streamConfig) {
		c.url = url
	}
}

// WithDecodePolicy selects what the receiver does with undecodable frames.
func WithDecodePolicy(policy socket.DecodePolicy) StreamOption {
	return func(c *streamConfig) {
		c.policy = policy
	}
}

// Client is an order-update session. As with the market-data feed, Split
// hands the two directions of the socket to separate owners.
type Client struct {
	send *Sender
	recv *Receiver
}

// DialLive connects to the live trading environment's update feed.
func DialLive(ctx context.Context, opts ...StreamOption) (*Client, error) {
	return dial(ctx, LiveStreamURL, opts...)
}

// DialPaper connects to the paper trading environment's update feed.
func DialPaper(ctx context.Context, opts ...StreamOption) (*Client, error) {
	return dial(ctx, PaperStreamURL, opts...)
}

func dial(ctx context.Context, url string, opts ...StreamOption) (*Client, error) {
	cfg := streamConfig{url: url}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	// This feed speaks binary frames, unlike the market-data one.
	conn, err := socket.Dial(ctx, cfg.url, socket.BinaryFrames)
	if err != nil {
		return nil, err
	}
	return newClient(conn, cfg.policy)
}

func newClient(conn *socket.Conn, policy socket.DecodePolicy) (*Client, error) {
	sendHalf, recvHalf, err := conn.Split()
	if err != nil {
		return nil, err
	}
	return &Client{
		send: &Sender{half: sendHalf},
		recv: &Receiver{half: recvHalf, policy: policy},
	}, nil
}

// Split consumes the client and returns its two halves. The client is
// unusable afterwards; a second Split fails with errs.ErrConnClosed.
func (c *Client) Split() (*Sender, *Receiver, error) {
	if c.send == nil {
		return nil, nil, errs.ErrConnClosed
	}
	send, recv := c.send, c.recv
	c.send, c.recv = nil, nil
	return send, recv, nil
}

// Authenticate sends the credential handshake. See Sender.Authenticate.
func (c *Client) Authenticate(ctx context.Context, keyID, secretKey string) error {
	return c.send.Authenticate(ctx, keyID, secretKey)
}

// Listen announces interest in order updates. See Sender.Listen.
func (c *Client) Listen(ctx context.Context) error {
	return c.send.Listen(ctx)
}

// Stream returns the receive sequence. See Receiver.Stream.
func (c *Client) Stream(ctx context.Context) (<-chan Update, <-chan error) {
	return c.recv.Stream(ctx)
}

// Sender owns the outbound direction of the session. Calls return once the
// frame is transmitted; confirmation arrives as Authorization and Listening
// updates on the receive side.
type Sender struct {
	half *socket.SendHalf
}

// Authenticate transmits the credentials. Expect an Authorization update with
// status Authorized when the server accepts them.
func (s *Sender) Authenticate(ctx context.Context, keyID, secretKey string) error {
	return s.half.Send(ctx, authenticateAction{
		Action: "authenticate",
		Data:   authenticateData{KeyID: keyID, SecretKey: secretKey},
	})
}

// Listen asks the server to deliver order updates. Expect a Listening update
// naming the trade_updates stream when the request takes effect.
func (s *Sender) Listen(ctx context.Context) error {
	return s.half.Send(ctx, listenAction{
		Action: "listen",
		Data:   listenData{Streams: []string{TradeUpdatesStream}},
	})
}

// Receiver owns the inbound direction of the session.
type Receiver struct {
	half   *socket.RecvHalf
	policy socket.DecodePolicy
}

// Stream decodes inbound frames into updates until the transport closes or
// ctx is cancelled. Undecodable frames follow the configured DecodePolicy.
func (r *Receiver) Stream(ctx context.Context) (<-chan Update, <-chan error) {
	updates := make(chan Update)
	errCh := make(chan error, 4)

	frames, transportErrs := r.half.Frames(ctx)

	go func() {
		defer close(updates)
		defer close(errCh)
		for {
			select {
			case <-ctx.Done():
				return
			case frame, ok := <-frames:
				if !ok {
					frames = nil
					if transportErrs == nil {
						return
					}
					continue
				}
				update, err := DecodeFrame(frame)
				if err != nil {
					if socket.HandleDecodeError(r.policy, errCh, err) {
						return
					}
					continue
				}
				select {
				case <-ctx.Done():
					return
				case updates <- update:
				}
			case err, ok := <-transportErrs:
				if !ok {
					transportErrs = nil
					if frames == nil {
						return
					}
					continue
				}
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
				}
			}
		}
	}()

	return updates, errCh
}
