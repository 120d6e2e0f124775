// Command apca-realtime tails the realtime market-data feed for a set of
// symbols, printing every trade, quote, and bar it receives. The session is
// redialed with exponential backoff when the transport drops.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sourcegraph/conc"

	"github.com/xgillard/apca-datav2/config"
	"github.com/xgillard/apca-datav2/internal/observability"
	"github.com/xgillard/apca-datav2/marketdata"
)

const maxReconnectInterval = time.Minute

func main() {
	subsPath := flag.String("subscriptions", "", "path to a yaml file declaring per-channel symbol lists")
	trades := flag.String("trades", "", "comma-separated symbols for the trades channel")
	quotes := flag.String("quotes", "", "comma-separated symbols for the quotes channel")
	bars := flag.String("bars", "", "comma-separated symbols for the bars channel")
	flag.Parse()

	logger := log.New(os.Stderr, "apca-realtime ", log.LstdFlags|log.Lmsgprefix)
	observability.SetLogger(observability.StdLogger{L: logger})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	sub := marketdata.Subscription{
		Trades: splitSymbols(*trades),
		Quotes: splitSymbols(*quotes),
		Bars:   splitSymbols(*bars),
	}
	if *subsPath != "" {
		file, err := config.LoadSubscriptions(*subsPath)
		if err != nil {
			logger.Fatalf("load subscriptions: %v", err)
		}
		sub = marketdata.Subscription{Trades: file.Trades, Quotes: file.Quotes, Bars: file.Bars}
	}
	if len(sub.Trades) == 0 && len(sub.Quotes) == 0 && len(sub.Bars) == 0 {
		logger.Fatal("nothing to subscribe to: pass -subscriptions or at least one of -trades/-quotes/-bars")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.MaxInterval = maxReconnectInterval

	for {
		err := runSession(ctx, cfg, sub, logger)
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

// runSession drives one authenticated session to completion: handshake on the
// send half, decoded message drain on the receive half, each on its own
// goroutine.
func runSession(ctx context.Context, cfg config.Settings, sub marketdata.Subscription, logger *log.Logger) error {
	opts := []marketdata.StreamOption{}
	if cfg.StreamURL != "" {
		opts = append(opts, marketdata.WithStreamURL(cfg.StreamURL))
	}
	client, err := marketdata.Dial(ctx, marketdata.Feed(cfg.Feed), opts...)
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
		if err := send.Subscribe(sessionCtx, sub); err != nil {
			firstErr.set(err)
			cancel()
		}
	})
	wg.Go(func() {
		defer cancel()
		messages, errCh := recv.Stream(sessionCtx)
		for messages != nil || errCh != nil {
			select {
			case msg, ok := <-messages:
				if !ok {
					messages = nil
					continue
				}
				printMessage(msg)
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

// onceErr keeps the first error reported by either session goroutine.
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

func printMessage(msg marketdata.Message) {
	switch m := msg.(type) {
	case *marketdata.Error:
		fmt.Printf("error   %d %s\n", m.Code, m.Msg)
	case *marketdata.Success:
		fmt.Printf("control %s\n", m.Msg)
	case *marketdata.SubscriptionUpdate:
		fmt.Printf("subscribed trades=%v quotes=%v bars=%v\n", m.Trades, m.Quotes, m.Bars)
	case *marketdata.Trade:
		fmt.Printf("trade   %-8s %10.4f x%-6d %s\n", m.Symbol, float64(m.Price), m.Size, m.Timestamp.Format(time.RFC3339Nano))
	case *marketdata.Quote:
		fmt.Printf("quote   %-8s bid %10.4f x%-6d ask %10.4f x%-6d\n", m.Symbol, float64(m.BidPrice), m.BidSize, float64(m.AskPrice), m.AskSize)
	case *marketdata.Bar:
		fmt.Printf("bar     %-8s o=%.4f h=%.4f l=%.4f c=%.4f v=%d\n", m.Symbol, float64(m.Open), float64(m.High), float64(m.Low), float64(m.Close), m.Volume)
	}
}

func splitSymbols(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
