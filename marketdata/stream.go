package marketdata

import (
	"context"
	"fmt"

	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/internal/socket"
)

// StreamURL is the realtime market-data endpoint, parameterized by feed.
const StreamURL = "wss://stream.data.alpaca.markets/v2/%s"

// StreamOption configures a realtime stream client.
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
// The default skips the frame and logs it; FailOnDecodeError restores the
// stop-the-stream behaviour, EmitOnDecodeError reports each bad frame on the
// error channel and continues.
func WithDecodePolicy(policy socket.DecodePolicy) StreamOption {
	return func(c *streamConfig) {
		c.policy = policy
	}
}

// Client is a realtime market-data session. It bundles the two directions of
// the socket until Split hands them to separate owners.
type Client struct {
	send *Sender
	recv *Receiver
}

// Dial connects to the realtime endpoint serving the given feed. The returned
// client is connected but unauthenticated; authenticate, then subscribe, then
// drain the receive stream.
func Dial(ctx context.Context, feed Feed, opts ...StreamOption) (*Client, error) {
	cfg := streamConfig{url: fmt.Sprintf(StreamURL, feed)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	conn, err := socket.Dial(ctx, cfg.url, socket.TextFrames)
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

// Split consumes the client and returns its two halves so one goroutine can
// write while another reads. The client is unusable afterwards; a second Split
// fails with errs.ErrConnClosed.
func (c *Client) Split() (*Sender, *Receiver, error) {
	if c.send == nil {
		return nil, nil, errs.ErrConnClosed
	}
	send, recv := c.send, c.recv
	c.send, c.recv = nil, nil
	return send, recv, nil
}

// Authenticate sends the auth action. See Sender.Authenticate.
func (c *Client) Authenticate(ctx context.Context, key, secret string) error {
	return c.send.Authenticate(ctx, key, secret)
}

// Subscribe sends a subscribe action. See Sender.Subscribe.
func (c *Client) Subscribe(ctx context.Context, sub Subscription) error {
	return c.send.Subscribe(ctx, sub)
}

// Unsubscribe sends an unsubscribe action. See Sender.Unsubscribe.
func (c *Client) Unsubscribe(ctx context.Context, sub Subscription) error {
	return c.send.Unsubscribe(ctx, sub)
}

// Stream returns the receive sequence. See Receiver.Stream.
func (c *Client) Stream(ctx context.Context) (<-chan Message, <-chan error) {
	return c.recv.Stream(ctx)
}

// Sender owns the outbound direction of the session. Calls return once the
// frame is transmitted; confirmation arrives as Success, Error, or
// SubscriptionUpdate messages on the receive side, which the caller observes
// and correlates. Subscribing before the server acknowledged authentication
// yields a "not authenticated" Error message, not a local rejection.
type Sender struct {
	half *socket.SendHalf
}

// Authenticate transmits the credentials. Expect a Success message with
// "authenticated" on the receive side when the server accepts them.
func (s *Sender) Authenticate(ctx context.Context, key, secret string) error {
	return s.half.Send(ctx, authAction{Action: "auth", Key: key, Secret: secret})
}

// Subscribe requests realtime data for the listed symbols per channel.
func (s *Sender) Subscribe(ctx context.Context, sub Subscription) error {
	return s.half.Send(ctx, subscriptionAction{Action: "subscribe", Subscription: sub})
}

// Unsubscribe removes the listed symbols from the session's subscriptions.
func (s *Sender) Unsubscribe(ctx context.Context, sub Subscription) error {
	return s.half.Send(ctx, subscriptionAction{Action: "unsubscribe", Subscription: sub})
}

// Receiver owns the inbound direction of the session.
type Receiver struct {
	half   *socket.RecvHalf
	policy socket.DecodePolicy
}

// Stream decodes inbound frames into messages until the transport closes or
// ctx is cancelled. The sequence is not restartable: once the channels close
// the session is over. Undecodable frames follow the configured DecodePolicy.
func (r *Receiver) Stream(ctx context.Context) (<-chan Message, <-chan error) {
	messages := make(chan Message)
	errCh := make(chan error, 4)

	frames, transportErrs := r.half.Frames(ctx)

	go func() {
		defer close(messages)
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
				msgs, err := DecodeFrame(frame)
				if err != nil {
					if socket.HandleDecodeError(r.policy, errCh, err) {
						return
					}
					continue
				}
				for _, msg := range msgs {
					select {
					case <-ctx.Done():
						return
					case messages <- msg:
					}
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

	return messages, errCh
}
