package server

import (
	"net/http"
	"net/url"
	"strconv"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "oracle",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state := s.state.Current()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":               state.Status,
		"bankroll":             state.Bankroll.String(),
		"peak_bankroll":        state.PeakBankroll.String(),
		"total_pnl":            state.TotalPnL.String(),
		"cycle_count":          state.CycleCount,
		"trades_placed":        state.TradesPlaced,
		"trades_won":           state.TradesWon,
		"trades_lost":          state.TradesLost,
		"total_api_costs":      state.TotalAPICosts.String(),
		"total_ib_commissions": state.TotalIBCommissions.String(),
		"start_time":           state.StartTime,
	})
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	reports, err := s.decisionLog.RecentCycleReports(r.Context(), limitParam(r.URL.Query(), 50))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	reports, err := s.decisionLog.RecentCycleReports(r.Context(), limitParam(r.URL.Query(), 500))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	points := make([]map[string]string, 0, len(reports))
	for _, report := range reports {
		points = append(points, map[string]string{
			"cycle_id":    report.CycleID,
			"recorded_at": report.RecordedAt,
			"bankroll":    report.Bankroll,
		})
	}
	s.writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	decisions, err := s.decisionLog.RecentDecisions(r.Context(), limitParam(r.URL.Query(), 100))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, decisions)
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	state := s.state.Current()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"total_api_costs":      state.TotalAPICosts.String(),
		"total_ib_commissions": state.TotalIBCommissions.String(),
	})
}

func limitParam(q url.Values, fallback int) int {
	raw := q.Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
