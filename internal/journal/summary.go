package journal

// Summary contains statistics for one session.
type Summary struct {
	SessionID          string  `json:"session_id"`
	StartedAt          string  `json:"started_at"`
	EndedAt            string  `json:"ended_at,omitempty"`
	DurationMs         int64   `json:"duration_ms"`
	Turns              int     `json:"turns"`
	Swaps              int     `json:"swaps"`
	ToHolding          int     `json:"to_holding"`
	Resets             int     `json:"resets"`
	Replays            int     `json:"replays"`
	ReplayedTurns      int     `json:"replayed_turns"`
	Demos              int     `json:"demos"`
	DemoMoves          int     `json:"demo_moves"`
	Solves             int     `json:"solves"`
	TPS                float64 `json:"tps"`
	LongestPauseMs     int64   `json:"longest_pause_ms"`
	PauseCountOver1500 int     `json:"pause_count_over_1500ms"`
	AvgTurnGapMs       float64 `json:"avg_turn_gap_ms"`
}

// Summarize computes the summary of s from its events.
func Summarize(s Session, events []Event) Summary {
	sum := Summary{
		SessionID: s.SessionID,
		StartedAt: s.StartedAt.Format("2006-01-02 15:04:05"),
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format("2006-01-02 15:04:05")
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}

	// A session starts on a solved cube. Solves counts the turns, swaps
	// and replays that bring it back; resets and demos always end solved
	// and are not counted.
	solved := true
	var turns []Event
	for _, e := range events {
		switch e.Kind {
		case KindTurn:
			sum.Turns++
			turns = append(turns, e)
		case KindSwap:
			sum.Swaps++
		case KindHolding:
			sum.ToHolding++
		case KindReset:
			sum.Resets++
		case KindReplay:
			sum.Replays++
			sum.ReplayedTurns += e.Moves
		case KindDemo:
			sum.Demos++
			sum.DemoMoves += e.Moves
		}
		switch e.Kind {
		case KindTurn, KindSwap, KindHolding, KindReplay:
			if e.Solved && !solved {
				sum.Solves++
			}
		}
		solved = e.Solved
	}

	if sum.DurationMs == 0 && len(events) > 1 {
		sum.DurationMs = events[len(events)-1].TsMs - events[0].TsMs
	}
	sum.TPS = CalculateTPS(turns, sum.DurationMs)
	sum.LongestPauseMs = FindLongestPause(turns)
	sum.PauseCountOver1500 = CountPausesOver(turns, 1500)
	sum.AvgTurnGapMs = CalculateAvgGap(turns)
	return sum
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns []Event, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(turns)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgGap calculates the average time between events.
func CalculateAvgGap(events []Event) float64 {
	if len(events) < 2 {
		return 0
	}
	total := events[len(events)-1].TsMs - events[0].TsMs
	return float64(total) / float64(len(events)-1)
}

// FindLongestPause finds the longest gap between consecutive events.
func FindLongestPause(events []Event) int64 {
	var longest int64
	for i := 1; i < len(events); i++ {
		if gap := events[i].TsMs - events[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(events []Event, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(events); i++ {
		if events[i].TsMs-events[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}
