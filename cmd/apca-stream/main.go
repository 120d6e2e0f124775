// Command apca-stream tails the order-update feed of the account, printing
// every lifecycle event. The session is redialed with exponential backoff
// when the transport drops.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sourcegraph/conc"

	"github.com/xgillard/apca-datav2/config"
	"github.com/xgillard/apca-datav2/internal/observability"
	"github.com/xgillard/apca-datav2/tradestream"
)

const maxReconnectInterval = time.Minute

func main() {
	flag.Parse()

	logger := log.New(os.Stderr, "apca-stream ", log.LstdFlags|log.Lmsgprefix)
	observability.SetLogger(observability.StdLogger{L: logger})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.MaxInterval = maxReconnectInterval

	for {
		err := runSession(ctx, cfg, logger)
		if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		logger.Printf("session ended: %v", err)

		sleep := backoffCfg.NextBackOff()
		if sleep == backoff.Stop {
			sleep = maxReconnectInterval
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

func runSession(ctx context.Context, cfg config.Settings, logger *log.Logger) error {
	opts := []tradestream.StreamOption{}
	if cfg.StreamURL != "" {
		opts = append(opts, tradestream.WithStreamURL(cfg.StreamURL))
	}
	dial := tradestream.DialPaper
	if cfg.Live() {
		dial = tradestream.DialLive
	}
	client, err := dial(ctx, opts...)
	if err != nil {
		return err
	}
	send, recv, err := client.Split()
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr onceErr
	var wg conc.WaitGroup
	wg.Go(func() {
		if err := send.Authenticate(sessionCtx, cfg.Credentials.KeyID, cfg.Credentials.Secret); err != nil {
			firstErr.set(err)
			cancel()
			return
		}
		if err := send.Listen(sessionCtx); err != nil {
			firstErr.set(err)
			cancel()
		}
	})
	wg.Go(func() {
		defer cancel()
		updates, errCh := recv.Stream(sessionCtx)
		for updates != nil || errCh != nil {
			select {
			case update, ok := <-updates:
				if !ok {
					updates = nil
					continue
				}
				printUpdate(logger, update)
			case err, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				if err != nil {
					firstErr.set(err)
				}
			}
		}
	})
	wg.Wait()
	if err := firstErr.get(); err != nil {
		return err
	}
	if ctx.Err() == nil {
		return errors.New("transport closed")
	}
	return nil
}

func printUpdate(logger *log.Logger, update tradestream.Update) {
	switch u := update.(type) {
	case *tradestream.Authorization:
		if u.Status != tradestream.Authorized {
			logger.Printf("authorization refused: %s", u.Status)
			return
		}
		fmt.Printf("authorized (%s)\n", u.Action)
	case *tradestream.Listening:
		fmt.Printf("listening on %v\n", u.Streams)
	case *tradestream.TradeUpdate:
		line := fmt.Sprintf("%-22s %-8s %s", u.Event, u.Order.Symbol, u.Order.ID)
		if u.Price != nil {
			line += fmt.Sprintf(" @ %.4f", u.Price.Float64())
		}
		if u.PositionQty != nil {
			line += fmt.Sprintf(" position=%.4f", u.PositionQty.Float64())
		}
		fmt.Println(line)
	}
}

type onceErr struct {
	mu  sync.Mutex
	err error
}

func (o *onceErr) set(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		o.err = err
	}
}

func (o *onceErr) get() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
