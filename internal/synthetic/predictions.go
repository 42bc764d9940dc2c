package synthetic

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
)

// MaxFixtures is the most fixtures accepted in one prediction request.
const MaxFixtures = 8

const (
	HomeWin = "Home Win"
	AwayWin = "Away Win"
)

// Fixture is an upcoming pairing to predict.
type Fixture struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

// Prediction is a simulated outcome; it carries no modeling.
type Prediction struct {
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	Prediction string `json:"prediction"`
	Confidence int    `json:"confidence"`
	Synthetic  bool   `json:"synthetic"`
}

// Predict returns one simulated prediction per fixture.
func (g *Generator) Predict(fixtures []Fixture) ([]Prediction, error) {
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("%w: at least one fixture is required", domain.ErrInvalidArgument)
	}
	if len(fixtures) > MaxFixtures {
		return nil, fmt.Errorf("%w: at most %d fixtures per request", domain.ErrInvalidArgument, MaxFixtures)
	}

	out := make([]Prediction, 0, len(fixtures))
	for i, f := range fixtures {
		home := strings.TrimSpace(f.HomeTeam)
		away := strings.TrimSpace(f.AwayTeam)
		if home == "" || away == "" {
			return nil, fmt.Errorf("%w: fixture %d needs homeTeam and awayTeam", domain.ErrInvalidArgument, i)
		}
		pick := AwayWin
		if g.float() > 0.5 {
			pick = HomeWin
		}
		out = append(out, Prediction{
			HomeTeam:   home,
			AwayTeam:   away,
			Prediction: pick,
			Confidence: g.intN(100),
			Synthetic:  true,
		})
	}
	return out, nil
}
