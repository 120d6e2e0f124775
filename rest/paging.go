package rest

import (
	"context"
	"errors"
)

// Done is returned by Pager.Next when the token chain is exhausted and every
// buffered item has been consumed. It signals normal completion, not a failure.
var Done = errors.New("no more items")

// Paged is one response unit of a cursor-paginated listing: a batch of items
// plus the continuation token for the next request. Split returns a nil token
// when the server has no more data. A page with zero items and a non-nil token
// is valid and non-terminal; termination is judged on the token alone.
type Paged[T any] interface {
	Split() ([]T, *string)
}

// FetchFunc retrieves one page. A nil token requests the first page; any later
// call passes the token returned by the previous page verbatim.
type FetchFunc[P any] func(ctx context.Context, token *string) (P, error)

type fetchResult[P any] struct {
	page P
	err  error
}

// Pager turns a chain of page fetches into a lazily-produced sequence of
// items. It keeps at most one fetch in flight: the follow-up request for page
// k+1 is issued as soon as page k's token is known, without waiting for the
// consumer to drain the buffer. A Pager is owned by a single consumer and must
// not be shared between goroutines.
type Pager[T any, P Paged[T]] struct {
	fetch   FetchFunc[P]
	buf     []T
	pending chan fetchResult[P]
	err     error

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPager constructs a pager and immediately schedules the first fetch with a
// nil token. The construction itself never fails; the first fetch error
// surfaces from the first Next call that needs it. ctx bounds every fetch the
// pager issues; cancelling it releases any in-flight request.
func NewPager[T any, P Paged[T]](ctx context.Context, fetch FetchFunc[P]) *Pager[T, P] {
	pagerCtx, cancel := context.WithCancel(ctx)
	p := &Pager[T, P]{fetch: fetch, ctx: pagerCtx, cancel: cancel}
	p.schedule(nil)
	return p
}

// schedule launches the fetch for the given token. The result channel is
// buffered so the goroutine exits even if the pager is abandoned.
func (p *Pager[T, P]) schedule(token *string) {
	ch := make(chan fetchResult[P], 1)
	go func() {
		page, err := p.fetch(p.ctx, token)
		ch <- fetchResult[P]{page: page, err: err}
	}()
	p.pending = ch
}

// Next returns the next item in page order. When the buffer is empty it waits
// for the in-flight fetch, refills the buffer, and schedules the follow-up
// fetch if the page carried a token. It returns Done after the final page
// drains. A fetch error is terminal: it is returned from this and every later
// call, and no further requests are issued.
func (p *Pager[T, P]) Next(ctx context.Context) (T, error) {
	var zero T
	for {
		if p.err != nil {
			return zero, p.err
		}
		if len(p.buf) > 0 {
			item := p.buf[0]
			p.buf = p.buf[1:]
			return item, nil
		}
		if p.pending == nil {
			return zero, Done
		}
		select {
		case <-ctx.Done():
			// The pending result stays buffered; a later Next can resume.
			return zero, ctx.Err()
		case res := <-p.pending:
			p.pending = nil
			if res.err != nil {
				p.err = res.err
				return zero, res.err
			}
			items, token := res.page.Split()
			if token != nil {
				p.schedule(token)
			}
			p.buf = items
		}
	}
}

// Collect drains the pager and returns every remaining item. It stops at the
// first fetch error.
func (p *Pager[T, P]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for {
		item, err := p.Next(ctx)
		if errors.Is(err, Done) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
}

// Close releases the pager, cancelling any in-flight fetch. The pager must not
// be used afterwards.
func (p *Pager[T, P]) Close() {
	p.cancel()
}
