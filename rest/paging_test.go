package rest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubPage struct {
	items []string
	token *string
}

func (p stubPage) Split() ([]string, *string) {
	return p.items, p.token
}

func token(s string) *string { return &s }

// stubFetcher serves a scripted page chain and records every token it was
// invoked with. It also tracks whether two invocations ever overlap.
type stubFetcher struct {
	pages    []stubPage
	calls    []*string
	inFlight atomic.Int32
	overlap  atomic.Bool
	delay    time.Duration
}

func (f *stubFetcher) fetch(ctx context.Context, tok *string) (stubPage, error) {
	if f.inFlight.Add(1) > 1 {
		f.overlap.Store(true)
	}
	defer f.inFlight.Add(-1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return stubPage{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	f.calls = append(f.calls, tok)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestPagerYieldsEveryItemInOrder(t *testing.T) {
	fetcher := &stubFetcher{pages: []stubPage{
		{items: []string{"a", "b"}, token: token("t1")},
		{items: []string{"c", "d", "e"}, token: token("t2")},
		{items: []string{"f"}, token: nil},
	}}
	pager := NewPager(context.Background(), fetcher.fetch)
	defer pager.Close()

	got, err := pager.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)

	_, err = pager.Next(context.Background())
	require.ErrorIs(t, err, Done)
}

func TestPagerEndToEndTokenChain(t *testing.T) {
	fetcher := &stubFetcher{pages: []stubPage{
		{items: []string{"a", "b"}, token: token("t1")},
		{items: []string{"c"}, token: token("t2")},
		{items: nil, token: nil},
	}}
	pager := NewPager(context.Background(), fetcher.fetch)
	defer pager.Close()

	got, err := pager.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got)

	require.Len(t, fetcher.calls, 3)
	require.Nil(t, fetcher.calls[0])
	require.Equal(t, "t1", *fetcher.calls[1])
	require.Equal(t, "t2", *fetcher.calls[2])
}

func TestPagerNeverOverlapsFetches(t *testing.T) {
	fetcher := &stubFetcher{
		delay: 5 * time.Millisecond,
		pages: []stubPage{
			{items: []string{"a"}, token: token("t1")},
			{items: []string{"b"}, token: token("t2")},
			{items: []string{"c"}, token: nil},
		},
	}
	pager := NewPager(context.Background(), fetcher.fetch)
	defer pager.Close()

	_, err := pager.Collect(context.Background())
	require.NoError(t, err)
	require.False(t, fetcher.overlap.Load(), "two fetches were in flight at once")
}

func TestPagerEmptyPageWithTokenContinues(t *testing.T) {
	fetcher := &stubFetcher{pages: []stubPage{
		{items: []string{"a"}, token: token("t1")},
		{items: nil, token: token("t2")},
		{items: []string{"b"}, token: nil},
	}}
	pager := NewPager(context.Background(), fetcher.fetch)
	defer pager.Close()

	got, err := pager.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
	require.Len(t, fetcher.calls, 3)
}

func TestPagerFetchErrorIsTerminal(t *testing.T) {
	boom := errors.New("page 2 unavailable")
	var calls atomic.Int32
	fetch := func(ctx context.Context, tok *string) (stubPage, error) {
		switch calls.Add(1) {
		case 1:
			return stubPage{items: []string{"a", "b"}, token: token("t1")}, nil
		case 2:
			return stubPage{}, boom
		default:
			t.Error("fetch invoked after a terminal error")
			return stubPage{}, boom
		}
	}
	pager := NewPager(context.Background(), fetch)
	defer pager.Close()

	item, err := pager.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a", item)
	item, err = pager.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "b", item)

	_, err = pager.Next(context.Background())
	require.ErrorIs(t, err, boom)

	// The error is sticky and no further fetch is issued.
	_, err = pager.Next(context.Background())
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 2, calls.Load())
}

func TestPagerCloseCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	fetch := func(ctx context.Context, tok *string) (stubPage, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return stubPage{}, ctx.Err()
	}
	pager := NewPager(context.Background(), fetch)
	<-started
	pager.Close()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch not cancelled by Close")
	}
}

func TestPagerNextHonorsCallContext(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, tok *string) (stubPage, error) {
		select {
		case <-release:
			return stubPage{items: []string{"a"}, token: nil}, nil
		case <-ctx.Done():
			return stubPage{}, ctx.Err()
		}
	}
	pager := NewPager(context.Background(), fetch)
	defer pager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := pager.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The pending result was not lost; a fresh context resumes consumption.
	close(release)
	item, err := pager.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a", item)
}
