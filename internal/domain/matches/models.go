package matches

import (
	"fmt"
	"strings"
)

// Outcome is a single-result symbol from one team's perspective.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// Points awarded for the outcome in a league table.
func (o Outcome) Points() int {
	switch o {
	case Win:
		return 3
	case Draw:
		return 1
	default:
		return 0
	}
}

// OutcomeFor compares goals scored against goals conceded.
func OutcomeFor(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return Win
	case goalsFor < goalsAgainst:
		return Loss
	default:
		return Draw
	}
}

// MatchResult is one completed fixture. It is treated as immutable once ingested.
type MatchResult struct {
	Date        string `json:"date" validate:"required"`
	HomeTeam    string `json:"home_team" validate:"required,nefield=AwayTeam"`
	AwayTeam    string `json:"away_team" validate:"required"`
	HTHomeScore int    `json:"ht_home_score" validate:"gte=0,ltefield=HomeScore"`
	HTAwayScore int    `json:"ht_away_score" validate:"gte=0,ltefield=AwayScore"`
	HomeScore   int    `json:"home_score" validate:"gte=0"`
	AwayScore   int    `json:"away_score" validate:"gte=0"`
	Competition string `json:"competition,omitempty"`
}

// Score renders the final score as "H-A".
func (m MatchResult) Score() string {
	return FormatScore(m.HomeScore, m.AwayScore)
}

// Involves reports whether team played on either side.
func (m MatchResult) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Between reports whether the fixture was contested by exactly these two teams, in either order.
func (m MatchResult) Between(team1, team2 string) bool {
	return (m.HomeTeam == team1 && m.AwayTeam == team2) ||
		(m.HomeTeam == team2 && m.AwayTeam == team1)
}

// Side is a match seen from one participant.
type Side struct {
	Home         bool
	Opponent     string
	GoalsFor     int
	GoalsAgainst int
	HTFor        int
	HTAgainst    int
}

// Outcome of the match for this side.
func (s Side) Outcome() Outcome {
	return OutcomeFor(s.GoalsFor, s.GoalsAgainst)
}

// Score renders "for-against".
func (s Side) Score() string {
	return FormatScore(s.GoalsFor, s.GoalsAgainst)
}

// SideOf returns the match from team's point of view. ok is false when team did not play.
func (m MatchResult) SideOf(team string) (Side, bool) {
	switch team {
	case m.HomeTeam:
		return Side{
			Home:         true,
			Opponent:     m.AwayTeam,
			GoalsFor:     m.HomeScore,
			GoalsAgainst: m.AwayScore,
			HTFor:        m.HTHomeScore,
			HTAgainst:    m.HTAwayScore,
		}, true
	case m.AwayTeam:
		return Side{
			Opponent:     m.HomeTeam,
			GoalsFor:     m.AwayScore,
			GoalsAgainst: m.HomeScore,
			HTFor:        m.HTAwayScore,
			HTAgainst:    m.HTHomeScore,
		}, true
	default:
		return Side{}, false
	}
}

// FormatScore renders two goal counts as "a-b".
func FormatScore(a, b int) string {
	return fmt.Sprintf("%d-%d", a, b)
}

// NoResult is the placeholder score before any qualifying match is seen.
const NoResult = "0-0"

// Extreme tracks the largest winning (or losing) margin seen so far.
// Only a strictly larger margin replaces the current one, so the first such result is kept on ties.
type Extreme struct {
	margin int
	score  string
}

// Offer considers a result with the given absolute margin.
func (e *Extreme) Offer(margin int, score string) {
	if margin > e.margin {
		e.margin = margin
		e.score = score
	}
}

// String returns the recorded score, or NoResult when nothing qualified.
func (e Extreme) String() string {
	if e.score == "" {
		return NoResult
	}
	return e.score
}

// TrimTeam normalizes a team name for comparisons.
func TrimTeam(name string) string {
	return strings.TrimSpace(name)
}
