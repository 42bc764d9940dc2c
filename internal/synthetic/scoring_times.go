package synthetic

// ScoringBuckets are the 15-minute windows reported by ScoringTimes, in match order.
var ScoringBuckets = []string{"0-15", "16-30", "31-45", "46-60", "61-75", "76-90"}

// avgFirstGoalMinute is a fixed display value.
const avgFirstGoalMinute = 35

// ScoringTimes is a simulated goal-time distribution.
type ScoringTimes struct {
	Synthetic        bool           `json:"synthetic"`
	Buckets          map[string]int `json:"buckets"`
	AvgFirstGoalTime int            `json:"avg_first_goal_time"`
}

// ScoringTimes simulates a distribution over matchCount matches; each bucket gains 0 or 1 per match.
func (g *Generator) ScoringTimes(matchCount int) ScoringTimes {
	buckets := make(map[string]int, len(ScoringBuckets))
	for _, b := range ScoringBuckets {
		buckets[b] = 0
	}
	for i := 0; i < matchCount; i++ {
		for _, b := range ScoringBuckets {
			buckets[b] += g.intN(2)
		}
	}
	return ScoringTimes{
		Synthetic:        true,
		Buckets:          buckets,
		AvgFirstGoalTime: avgFirstGoalMinute,
	}
}
