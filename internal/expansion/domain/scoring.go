package domain

// Evaluation weights. Changing the weighting is a code change, not a
// runtime parameter; the five weights sum to 1.0.
const (
	weightLocation    = 0.30
	weightTraffic     = 0.20
	weightCompetition = 0.20
	weightCost        = 0.15
	weightPotential   = 0.15
)

// EvaluationCriteria holds the five sub-scores a surveyor assigns to a
// candidate site. Sub-scores are not range-checked here; callers agree on
// a common scale.
type EvaluationCriteria struct {
	Location    float64 `json:"location"`
	Traffic     float64 `json:"traffic"`
	Competition float64 `json:"competition"`
	Cost        float64 `json:"cost"`
	Potential   float64 `json:"potential"`
}

// OverallScore computes the weighted overall evaluation score. A nil
// criteria yields 0; callers then supply a pre-computed raw score instead.
// No rounding is applied here; presentation rounds to one decimal place.
func OverallScore(c *EvaluationCriteria) float64 {
	if c == nil {
		return 0
	}
	return weightLocation*c.Location +
		weightTraffic*c.Traffic +
		weightCompetition*c.Competition +
		weightCost*c.Cost +
		weightPotential*c.Potential
}
