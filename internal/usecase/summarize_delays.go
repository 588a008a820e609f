package usecase

import (
	"github.com/compozy/rcbot/internal/domain"
	"github.com/montanaflynn/stats"
)

// DelaySummary describes how stale the pending commits of a pass are.
type DelaySummary struct {
	Repos  int
	Max    float64
	Mean   float64
	Median float64
}

// SummarizeDelays aggregates the delays of infos. An empty input yields a
// zero summary.
func SummarizeDelays(infos []domain.RepoInfo) DelaySummary {
	if len(infos) == 0 {
		return DelaySummary{}
	}
	data := make(stats.Float64Data, 0, len(infos))
	for _, info := range infos {
		data = append(data, float64(info.DelayDays))
	}
	summary := DelaySummary{Repos: len(infos)}
	// Errors are only returned for empty input, handled above.
	summary.Max, _ = stats.Max(data)
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	return summary
}
