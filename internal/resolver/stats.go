package resolver

import "sync/atomic"

// Stats holds atomic query counters read by the observability API (C10)
// while the resolver loop keeps writing to them.
type Stats struct {
	cacheHits  atomic.Uint64
	forwards   atomic.Uint64
	nxdomain   atomic.Uint64
	malformed  atomic.Uint64
	timeouts   atomic.Uint64
	ioFailures atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats' counters.
type Snapshot struct {
	CacheHits  uint64
	Forwards   uint64
	NXDomain   uint64
	Malformed  uint64
	Timeouts   uint64
	IOFailures uint64
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		CacheHits:  s.cacheHits.Load(),
		Forwards:   s.forwards.Load(),
		NXDomain:   s.nxdomain.Load(),
		Malformed:  s.malformed.Load(),
		Timeouts:   s.timeouts.Load(),
		IOFailures: s.ioFailures.Load(),
	}
}
