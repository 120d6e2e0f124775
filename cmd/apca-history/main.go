// Command apca-history dumps the historical trades, quotes, or bars of a
// symbol over a time range, fetching pages lazily as it prints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/xgillard/apca-datav2/config"
	"github.com/xgillard/apca-datav2/internal/observability"
	"github.com/xgillard/apca-datav2/marketdata"
	"github.com/xgillard/apca-datav2/rest"
)

func main() {
	symbol := flag.String("symbol", "", "symbol to query (required)")
	kind := flag.String("kind", "trades", "what to dump: trades, quotes, or bars")
	timeframe := flag.String("timeframe", string(marketdata.Minute), "bar aggregation window (bars only)")
	start := flag.String("start", "", "range start, RFC 3339 (required)")
	end := flag.String("end", "", "range end, RFC 3339 (required)")
	limit := flag.Int("limit", 0, "page size; 0 keeps the vendor default")
	flag.Parse()

	logger := log.New(os.Stderr, "apca-history ", log.LstdFlags|log.Lmsgprefix)
	observability.SetLogger(observability.StdLogger{L: logger})

	if *symbol == "" || *start == "" || *end == "" {
		flag.Usage()
		os.Exit(2)
	}
	startAt, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		logger.Fatalf("parse -start: %v", err)
	}
	endAt, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		logger.Fatalf("parse -end: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := newClient(cfg)
	req := rest.HistoryRequest{Symbol: *symbol, Start: startAt, End: endAt, Limit: *limit}

	switch *kind {
	case "trades":
		pager := client.StreamTrades(ctx, req)
		defer pager.Close()
		err = drain(ctx, pager, func(t marketdata.TradeData) {
			fmt.Printf("%s %10.4f x%-6d %s\n", t.Timestamp.Format(time.RFC3339Nano), float64(t.Price), t.Size, t.Exchange)
		})
	case "quotes":
		pager := client.StreamQuotes(ctx, req)
		defer pager.Close()
		err = drain(ctx, pager, func(q marketdata.QuoteData) {
			fmt.Printf("%s bid %10.4f x%-6d ask %10.4f x%-6d\n", q.Timestamp.Format(time.RFC3339Nano), float64(q.BidPrice), q.BidSize, float64(q.AskPrice), q.AskSize)
		})
	case "bars":
		pager := client.StreamBars(ctx, rest.BarsRequest{HistoryRequest: req, TimeFrame: marketdata.TimeFrame(*timeframe)})
		defer pager.Close()
		err = drain(ctx, pager, func(b marketdata.BarData) {
			fmt.Printf("%s o=%.4f h=%.4f l=%.4f c=%.4f v=%d\n", b.Timestamp.Format(time.RFC3339), float64(b.Open), float64(b.High), float64(b.Low), float64(b.Close), b.Volume)
		})
	default:
		logger.Fatalf("unknown -kind %q: want trades, quotes, or bars", *kind)
	}
	if err != nil {
		logger.Fatalf("fetch %s: %v", *kind, err)
	}
}

func newClient(cfg config.Settings) *rest.Client {
	opts := []rest.Option{}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, rest.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	if cfg.RequestsPerMinute > 0 {
		opts = append(opts, rest.WithLimiter(rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), cfg.RequestsPerMinute)))
	}
	if cfg.TradingURL != "" {
		opts = append(opts, rest.WithBaseURL(cfg.TradingURL))
	}
	if cfg.DataURL != "" {
		opts = append(opts, rest.WithDataURL(cfg.DataURL))
	}
	return rest.New(cfg.Credentials.KeyID, cfg.Credentials.Secret, cfg.Live(), opts...)
}

// drain consumes a pager to its end, printing each item as it arrives.
func drain[T any, P rest.Paged[T]](ctx context.Context, pager *rest.Pager[T, P], print func(T)) error {
	for {
		item, err := pager.Next(ctx)
		if err != nil {
			if errors.Is(err, rest.Done) {
				return nil
			}
			return err
		}
		print(item)
	}
}
