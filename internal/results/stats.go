package results

import "math"

// ParticipationRate returns active/total as a percentage rounded to one
// decimal. A profile with zero users reports 0, never a division error.
func ParticipationRate(total, active int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(active) / float64(total) * 100
	return math.Round(rate*10) / 10
}
