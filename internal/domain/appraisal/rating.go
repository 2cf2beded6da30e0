package appraisal

import "math"

// AggregateGoalRating returns the rounded mean of the defined task
// ratings, half rounding up. Tasks without a rating are excluded; no
// rated task at all yields 0. Order-independent by construction.
func AggregateGoalRating(tasks []Task) int {
	sum, count := 0, 0
	for _, task := range tasks {
		if task.FinalRating == nil {
			continue
		}
		sum += *task.FinalRating
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// EffectiveGoalRating is the display value: the stored rating, or 0
// when none was ever set. The zero is never written back.
func EffectiveGoalRating(g Goal) int {
	if g.FinalRating == nil {
		return 0
	}
	return *g.FinalRating
}

func EffectiveTaskRating(t Task) int {
	if t.FinalRating == nil {
		return 0
	}
	return *t.FinalRating
}
