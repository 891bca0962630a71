// Package resolver implements the caching DNS resolver's serial query
// loop (spec Section 5): receive, decode, serve from cache or forward
// upstream, cache the upstream's answer, reply. Exactly one query is
// ever in flight — there is no worker pool and no concurrent request
// handling.
package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/jroosing/resolverd/internal/cache"
	"github.com/jroosing/resolverd/internal/clock"
	"github.com/jroosing/resolverd/internal/dns"
)

// maxDatagramSize is the largest UDP datagram this resolver will read,
// for both the client-facing socket and the upstream socket. Plain DNS
// over UDP without large EDNS buffers fits comfortably under this.
const maxDatagramSize = 4096

// Resolver runs the single-threaded receive/cache/forward/reply loop
// described in spec Section 5.
type Resolver struct {
	Logger *slog.Logger

	conn            *net.UDPConn
	cache           *cache.Cache
	clock           clock.Clock
	upstreamAddr    string
	upstreamTimeout time.Duration
	stats           Stats
}

// New builds a Resolver that serves on conn, answers from c, and
// forwards cache misses to upstreamAddr with upstreamTimeout bounding
// each upstream round trip.
func New(conn *net.UDPConn, c *cache.Cache, clk clock.Clock, upstreamAddr string, upstreamTimeout time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		Logger:          logger,
		conn:            conn,
		cache:           c,
		clock:           clk,
		upstreamAddr:    upstreamAddr,
		upstreamTimeout: upstreamTimeout,
	}
}

// Stats returns the resolver's live query counters.
func (r *Resolver) Stats() Snapshot {
	return r.stats.Snapshot()
}

// Run reads datagrams from the listening socket and handles each one to
// completion before reading the next (spec Section 5: strictly serial,
// no concurrent request handling). It returns only when the listening
// socket itself fails — every other error (malformed input, upstream
// timeout, upstream I/O failure) is logged and the loop continues.
func (r *Resolver) Run() error {
	buf := make([]byte, maxDatagramSize)
	for {
		n, peer, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			return fmt.Errorf("listening socket: %w", err)
		}
		req := make([]byte, n)
		copy(req, buf[:n])
		r.handle(req, peer)
	}
}

// handle processes a single client datagram end to end: decode, serve
// from cache or forward, reply. Errors are logged and swallowed — a bad
// or unanswerable datagram never takes down the loop.
func (r *Resolver) handle(reqBytes []byte, peer *net.UDPAddr) {
	start := r.clock.Now()
	req, err := dns.DecodeMessage(reqBytes, start)
	if err != nil {
		r.stats.malformed.Add(1)
		r.Logger.Debug("dropping malformed datagram", "peer", peer, "err", err)
		return
	}
	if len(req.Questions) == 0 {
		r.stats.malformed.Add(1)
		r.Logger.Debug("dropping datagram with no question", "peer", peer)
		return
	}
	q := req.Questions[0]
	qname := q.Name.String()

	respBytes, outcome, err := r.answer(req, q, start)
	if err != nil {
		r.Logger.Debug("dropping query", "peer", peer, "qname", qname, "qtype", q.Type, "outcome", outcome, "err", err)
		return
	}

	if _, err := r.conn.WriteToUDP(respBytes, peer); err != nil {
		r.Logger.Warn("failed to write response", "peer", peer, "qname", qname, "err", err)
		return
	}
	r.Logger.Debug("answered query", "peer", peer, "qname", qname, "qtype", q.Type, "outcome", outcome, "elapsed", r.clock.Now().Sub(start))
}

// answer resolves a single decoded question, returning the wire bytes
// to send back to the client and a short outcome label for logging.
func (r *Resolver) answer(req dns.Message, q dns.Question, now time.Time) (respBytes []byte, outcome string, err error) {
	if r.cache.HasFresh(q) {
		rr, _ := r.cache.Get(q)
		resp, err := dns.BuildResponse(req, []dns.ResourceRecord{rr})
		if err != nil {
			return nil, "cache-hit", fmt.Errorf("building cached response: %w", err)
		}
		r.stats.cacheHits.Add(1)
		return resp.RawBytes, "cache-hit", nil
	}

	upstreamBytes, err := r.forward(req.RawBytes)
	if err != nil {
		switch {
		case errors.Is(err, ErrUpstreamTimeout):
			r.stats.timeouts.Add(1)
			return nil, "upstream-timeout", err
		default:
			r.stats.ioFailures.Add(1)
			return nil, "upstream-io-failure", err
		}
	}

	upstreamMsg, err := dns.DecodeMessage(upstreamBytes, now)
	if err != nil {
		r.stats.malformed.Add(1)
		return nil, "upstream-malformed", fmt.Errorf("decoding upstream response: %w", err)
	}

	if dns.RCode(upstreamMsg.Header.RCode) == dns.RCodeNXDomain {
		r.stats.nxdomain.Add(1)
		return upstreamMsg.RawBytes, "nxdomain", nil
	}

	if len(upstreamMsg.Answers) == 0 {
		// Nothing to cache or synthesize a response from; hand the
		// upstream's own reply back unchanged.
		r.stats.forwards.Add(1)
		return upstreamMsg.RawBytes, "forward-no-answer", nil
	}

	answer := upstreamMsg.Answers[0]
	r.cache.Put(q, answer)

	resp, err := dns.BuildResponse(req, []dns.ResourceRecord{answer})
	if err != nil {
		return nil, "forward", fmt.Errorf("building response: %w", err)
	}
	r.stats.forwards.Add(1)
	return resp.RawBytes, "forward", nil
}

// forward sends reqBytes to the upstream server over a fresh ephemeral
// UDP socket and returns its reply, bounded by upstreamTimeout. Each
// call opens and closes its own socket — there is no connection pool,
// since at most one query is ever in flight.
func (r *Resolver) forward(reqBytes []byte) ([]byte, error) {
	conn, err := net.Dial("udp", r.upstreamAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing upstream: %v", ErrUpstreamIOFailure, err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(r.clock.Now().Add(r.upstreamTimeout)); err != nil {
		return nil, fmt.Errorf("%w: setting read deadline: %v", ErrUpstreamIOFailure, err)
	}

	if _, err := conn.Write(reqBytes); err != nil {
		return nil, fmt.Errorf("%w: writing query: %v", ErrUpstreamIOFailure, err)
	}

	buf := make([]byte, maxDatagramSize)
	n, err := conn.Read(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamIOFailure, err)
	}

	resp := make([]byte, n)
	copy(resp, buf[:n])
	return resp, nil
}
