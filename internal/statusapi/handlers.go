package statusapi

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type handler struct {
	startTime time.Time
	cache     CacheSource
	queries   QuerySource
}

// CacheSource supplies cache occupancy and hit/miss counters.
type CacheSource func() (entries int, hits, misses uint64)

// QuerySource supplies resolver query outcome counters.
type QuerySource func() QueryStats

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *handler) stats(c *gin.Context) {
	uptime := time.Since(h.startTime)

	memStats := MemoryStats{}
	if vm, err := mem.VirtualMemory(); err == nil {
		memStats.TotalMB = float64(vm.Total) / 1024 / 1024
		memStats.UsedMB = float64(vm.Used) / 1024 / 1024
		memStats.UsedPercent = vm.UsedPercent
	}

	cpuStats := CPUStats{NumCPU: runtime.NumCPU()}
	if pct, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(pct) > 0 {
		cpuStats.UsedPercent = pct[0]
	}

	entries, hits, misses := h.cache()

	c.JSON(http.StatusOK, StatsResponse{
		UptimeSeconds: int64(uptime.Seconds()),
		CPU:           cpuStats,
		Memory:        memStats,
		Cache:         CacheStats{Entries: entries, Hits: hits, Misses: misses},
		Queries:       h.queries(),
	})
}
