// Package statusapi exposes a minimal read-only HTTP surface for the
// resolver's health and query statistics (spec Section 4.8): there is
// no configuration, filtering, or zone state to serve, just process
// health and counters.
package statusapi

// StatusResponse is the body of GET /health.
type StatusResponse struct {
	Status string `json:"status"`
}

// CPUStats reports system-wide CPU count and utilization.
type CPUStats struct {
	NumCPU      int     `json:"num_cpu"`
	UsedPercent float64 `json:"used_percent"`
}

// MemoryStats reports system-wide memory usage.
type MemoryStats struct {
	TotalMB     float64 `json:"total_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// CacheStats reports the resolver's cache occupancy and hit/miss counts.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// QueryStats reports per-outcome resolver query counters.
type QueryStats struct {
	CacheHits  uint64 `json:"cache_hits"`
	Forwards   uint64 `json:"forwards"`
	NXDomain   uint64 `json:"nxdomain"`
	Malformed  uint64 `json:"malformed"`
	Timeouts   uint64 `json:"upstream_timeouts"`
	IOFailures uint64 `json:"upstream_io_failures"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	UptimeSeconds int64       `json:"uptime_seconds"`
	CPU           CPUStats    `json:"cpu"`
	Memory        MemoryStats `json:"memory"`
	Cache         CacheStats  `json:"cache"`
	Queries       QueryStats  `json:"queries"`
}
