package marketdata

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/internal/socket"
)

type stubTransport struct {
	mu      sync.Mutex
	written [][]byte
	inbound chan []byte
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

func (s *stubTransport) Close() error { return nil }

func (s *stubTransport) frames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.written))
	for i, f := range s.written {
		out[i] = string(f)
	}
	return out
}

func newStubClient(t *testing.T, transport socket.Transport, policy socket.DecodePolicy) *Client {
	t.Helper()
	client, err := newClient(socket.NewConn(transport), policy)
	require.NoError(t, err)
	return client
}

func TestSenderTransmitsHandshakeInCallOrder(t *testing.T) {
	transport := newStubTransport()
	client := newStubClient(t, transport, socket.SkipOnDecodeError)
	send, _, err := client.Split()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, send.Authenticate(ctx, "key-id", "secret"))
	require.NoError(t, send.Subscribe(ctx, Subscription{Trades: []string{"AAPL"}, Bars: []string{"*"}}))
	require.NoError(t, send.Unsubscribe(ctx, Subscription{Bars: []string{"*"}}))

	frames := transport.frames()
	require.Len(t, frames, 3)
	require.JSONEq(t, `{"action":"auth","key":"key-id","secret":"secret"}`, frames[0])
	require.JSONEq(t, `{"action":"subscribe","trades":["AAPL"],"bars":["*"]}`, frames[1])
	require.JSONEq(t, `{"action":"unsubscribe","bars":["*"]}`, frames[2])
}

func TestReceiverDecodesControlAndDataMessages(t *testing.T) {
	transport := newStubTransport()
	transport.inbound <- []byte(`[{"T":"success","msg":"authenticated"}]`)
	transport.inbound <- []byte(`[{"T":"subscription","trades":["AAPL"],"quotes":null,"bars":null}]`)
	transport.inbound <- []byte(`[{"T":"t","i":1,"S":"AAPL","x":"V","p":"126.55","s":1,"t":"2021-02-22T15:51:44.208Z","c":[],"z":"C"}]`)
	close(transport.inbound)

	client := newStubClient(t, transport, socket.SkipOnDecodeError)
	_, recv, err := client.Split()
	require.NoError(t, err)

	messages, _ := recv.Stream(context.Background())
	var got []Message
	for msg := range messages {
		got = append(got, msg)
	}
	require.Len(t, got, 3)
	require.Equal(t, &Success{Msg: "authenticated"}, got[0])
	sub, ok := got[1].(*SubscriptionUpdate)
	require.True(t, ok)
	require.Equal(t, []string{"AAPL"}, []string(sub.Trades))
	require.Empty(t, sub.Quotes)
	trade, ok := got[2].(*Trade)
	require.True(t, ok)
	require.InDelta(t, 126.55, float64(trade.Price), 1e-9)
}

func TestReceiverSkipsUndecodableFrameByDefault(t *testing.T) {
	transport := newStubTransport()
	transport.inbound <- []byte(`[{"T":"no-such-tag"}]`)
	transport.inbound <- []byte(`[{"T":"success","msg":"connected"}]`)
	close(transport.inbound)

	client := newStubClient(t, transport, socket.SkipOnDecodeError)
	_, recv, err := client.Split()
	require.NoError(t, err)

	messages, _ := recv.Stream(context.Background())
	var got []Message
	for msg := range messages {
		got = append(got, msg)
	}
	require.Len(t, got, 1)
	require.Equal(t, &Success{Msg: "connected"}, got[0])
}

func TestReceiverFailPolicyTerminatesStream(t *testing.T) {
	transport := newStubTransport()
	transport.inbound <- []byte(`[{"T":"no-such-tag"}]`)
	transport.inbound <- []byte(`[{"T":"success","msg":"connected"}]`)

	client := newStubClient(t, transport, socket.FailOnDecodeError)
	_, recv, err := client.Split()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	messages, errCh := recv.Stream(ctx)

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("expected decode error")
	}
	require.Eventually(t, func() bool {
		_, ok := <-messages
		return !ok
	}, time.Second, 10*time.Millisecond, "stream not terminated after decode failure")
}

func TestClientSplitIsOneShot(t *testing.T) {
	client := newStubClient(t, newStubTransport(), socket.SkipOnDecodeError)
	send, recv, err := client.Split()
	require.NoError(t, err)
	require.NotNil(t, send)
	require.NotNil(t, recv)

	_, _, err = client.Split()
	require.ErrorIs(t, err, errs.ErrConnClosed)
}
