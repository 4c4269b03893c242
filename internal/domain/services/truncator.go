package services

import "github.com/ochairo/asfault-reports/internal/domain/entities"

// NoTimeLimit disables time-budget truncation
const NoTimeLimit = -1

// TruncateByTime returns the prefix of seq that fits the time budget.
// Generation and execution time accumulate from the first population; the
// population at which the running total reaches limitSeconds is the last one
// kept. A limit of NoTimeLimit returns seq unchanged.
func TruncateByTime(seq entities.PopulationSequence, limitSeconds int) entities.PopulationSequence {
	if limitSeconds == NoTimeLimit {
		return seq
	}

	limit := float64(limitSeconds)
	cumulative := 0.0
	for idx := range seq {
		cumulative += seq[idx].ElapsedTime()
		if cumulative >= limit {
			return seq[:idx+1]
		}
	}
	return seq
}
