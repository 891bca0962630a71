// Command resolverd runs the caching DNS resolver: a single UDP
// listening socket served by one strictly sequential request loop,
// plus an optional read-only status HTTP endpoint (spec Sections 4-5).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/resolverd/internal/cache"
	"github.com/jroosing/resolverd/internal/clock"
	"github.com/jroosing/resolverd/internal/helpers"
	"github.com/jroosing/resolverd/internal/logging"
	"github.com/jroosing/resolverd/internal/resolver"
	"github.com/jroosing/resolverd/internal/statusapi"
)

const (
	defaultPort            = 8053
	defaultUpstream        = "8.8.8.8:53"
	defaultUpstreamTimeout = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	port            int
	upstream        string
	upstreamTimeout time.Duration
	debug           bool
	jsonLogs        bool
	httpAddr        string
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.IntVar(&f.port, "port", defaultPort, "UDP port to listen on")
	flag.StringVar(&f.upstream, "upstream", defaultUpstream, "Upstream DNS server address (host:port)")
	flag.DurationVar(&f.upstreamTimeout, "upstream-timeout", defaultUpstreamTimeout, "Timeout for each upstream round trip")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flag.StringVar(&f.httpAddr, "http", "", "Address for the read-only status API (empty disables it)")
	flag.Parse()
	return f
}

func run() error {
	flags := parseFlags()

	level := "INFO"
	if flags.debug {
		level = "DEBUG"
	}
	logger := logging.Configure(logging.Config{
		Level:            level,
		Structured:       flags.jsonLogs,
		StructuredFormat: "json",
	})

	port := int(helpers.ClampIntToUint16(flags.port))
	addr := net.JoinHostPort("", fmt.Sprintf("%d", port))
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer conn.Close()

	logger.Info("resolver starting",
		"addr", conn.LocalAddr(),
		"upstream", flags.upstream,
		"upstream_timeout", flags.upstreamTimeout,
	)

	c := cache.New(clock.System{})
	r := resolver.New(conn, c, clock.System{}, flags.upstream, flags.upstreamTimeout, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var statusSrv *statusapi.Server
	if flags.httpAddr != "" {
		statusSrv = statusapi.New(flags.httpAddr, logger,
			func() (int, uint64, uint64) {
				snap := c.Snapshot()
				return snap.Entries, snap.Hits, snap.Misses
			},
			func() statusapi.QueryStats {
				snap := r.Stats()
				return statusapi.QueryStats{
					CacheHits:  snap.CacheHits,
					Forwards:   snap.Forwards,
					NXDomain:   snap.NXDomain,
					Malformed:  snap.Malformed,
					Timeouts:   snap.Timeouts,
					IOFailures: snap.IOFailures,
				}
			},
		)
		logger.Info("status api starting", "addr", flags.httpAddr)
		go func() {
			if serveErr := statusSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Error("status api error", "err", serveErr)
			}
		}()
	}

	resolverErr := make(chan error, 1)
	go func() {
		resolverErr <- r.Run()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		conn.Close()
		<-resolverErr
	case err := <-resolverErr:
		if statusSrv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = statusSrv.Shutdown(shutdownCtx)
			shutdownCancel()
		}
		return fmt.Errorf("resolver loop exited: %w", err)
	}

	if statusSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = statusSrv.Shutdown(shutdownCtx)
		shutdownCancel()
	}
	return nil
}
