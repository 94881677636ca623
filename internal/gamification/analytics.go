package gamification

import "github.com/neurolearn/backend/internal/models"

const (
	trendSpan       = 5
	trendMinRecords = 2 * trendSpan
)

// ComputeAnalytics summarizes records (oldest first). The trend compares the
// mean accuracy of the last five records with the five before them.
func ComputeAnalytics(records []models.QuizHistoryRecord) models.AnalyticsSummary {
	if len(records) == 0 {
		return models.AnalyticsSummary{ImprovementTrend: models.TrendNoData}
	}

	var accuracy, responseTime float64
	for _, r := range records {
		accuracy += r.Accuracy
		responseTime += r.AvgResponseTime
	}
	n := float64(len(records))

	return models.AnalyticsSummary{
		AvgAccuracy:      accuracy / n,
		AvgResponseTime:  responseTime / n,
		ImprovementTrend: trend(records),
		TotalQuizzes:     len(records),
	}
}

func trend(records []models.QuizHistoryRecord) models.Trend {
	if len(records) < trendMinRecords {
		return models.TrendInsufficient
	}

	end := len(records)
	recent := meanAccuracy(records[end-trendSpan:])
	older := meanAccuracy(records[end-trendMinRecords : end-trendSpan])

	switch {
	case recent > older:
		return models.TrendImproving
	case recent < older:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func meanAccuracy(records []models.QuizHistoryRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Accuracy
	}
	return sum / float64(len(records))
}
