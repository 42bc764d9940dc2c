package standings

import "github.com/preston-bernstein/league-stats-service/internal/domain/matches"

// TeamStanding is one row of a league table.
type TeamStanding struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
}

// TeamForm is one row of the form table. Played is a fixed display value and
// PenaltyKicks is not tracked; goals and points are season totals.
type TeamForm struct {
	Position     int    `json:"position"`
	Team         string `json:"team"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	PenaltyKicks int    `json:"penaltyKicks"`
	Played       int    `json:"played"`
	Points       int    `json:"points"`
	Form         string `json:"form"`
	FormPoints   int    `json:"formPoints"`
}

// Table is the pair of tables derived from a league's matches.
type Table struct {
	Standings []TeamStanding `json:"standings"`
	Forms     []TeamForm     `json:"teamForms"`
}

// FormPoints scores a form string: 3 per win, 1 per draw.
func FormPoints(form string) int {
	total := 0
	for _, r := range form {
		total += matches.Outcome(string(r)).Points()
	}
	return total
}
