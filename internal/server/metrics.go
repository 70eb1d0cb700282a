package server

import (
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// handleMetrics reports process resource gauges alongside the Agent's
// running cost counters.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memRSS := s.processStats()
	state := s.state.Current()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"process_cpu_percent": cpuPercent,
		"process_rss_bytes":   memRSS,
		"cycle_count":         state.CycleCount,
		"total_api_costs":     state.TotalAPICosts.String(),
	})
}

// processStats returns this process's CPU percentage (over a short window)
// and resident set size in bytes. Failures degrade to zero rather than
// failing the request.
func (s *Server) processStats() (float64, uint64) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to inspect process")
		return 0, 0
	}

	cpuPercent, err := proc.Percent(100 * time.Millisecond)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read process cpu percent")
		cpuPercent = 0
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read process memory info")
		return cpuPercent, 0
	}

	return cpuPercent, memInfo.RSS
}
