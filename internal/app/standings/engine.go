package standings

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
	domainstandings "github.com/preston-bernstein/league-stats-service/internal/domain/standings"
)

const (
	// FormWindow is how many recent outcomes a team's form keeps.
	FormWindow = 6
	// formTablePlayed is the fixed "played" value shown on the form table.
	formTablePlayed = 6
)

type accumulator struct {
	team         string
	played       int
	won          int
	drawn        int
	lost         int
	goalsFor     int
	goalsAgainst int
	points       int
	form         []matches.Outcome
}

func (a *accumulator) record(goalsFor, goalsAgainst int) {
	a.played++
	a.goalsFor += goalsFor
	a.goalsAgainst += goalsAgainst

	outcome := matches.OutcomeFor(goalsFor, goalsAgainst)
	switch outcome {
	case matches.Win:
		a.won++
	case matches.Draw:
		a.drawn++
	default:
		a.lost++
	}
	a.points += outcome.Points()

	a.form = append(a.form, outcome)
	if len(a.form) > FormWindow {
		a.form = a.form[len(a.form)-FormWindow:]
	}
}

func (a *accumulator) formString() string {
	var b strings.Builder
	for _, o := range a.form {
		b.WriteString(string(o))
	}
	return b.String()
}

func (a *accumulator) standing() domainstandings.TeamStanding {
	return domainstandings.TeamStanding{
		Team:           a.team,
		Played:         a.played,
		Won:            a.won,
		Drawn:          a.drawn,
		Lost:           a.lost,
		GoalsFor:       a.goalsFor,
		GoalsAgainst:   a.goalsAgainst,
		GoalDifference: a.goalsFor - a.goalsAgainst,
		Points:         a.points,
		Form:           a.formString(),
	}
}

// Compute rebuilds the league table and form table from scratch.
// Matches are applied in the order given; teams are seeded in first-appearance order,
// which is also the tie order for both tables.
func Compute(results []matches.MatchResult) domainstandings.Table {
	order := make([]*accumulator, 0)
	byTeam := make(map[string]*accumulator)
	seed := func(team string) {
		if _, ok := byTeam[team]; ok {
			return
		}
		acc := &accumulator{team: team}
		byTeam[team] = acc
		order = append(order, acc)
	}
	for _, m := range results {
		seed(m.HomeTeam)
		seed(m.AwayTeam)
	}

	for _, m := range results {
		byTeam[m.HomeTeam].record(m.HomeScore, m.AwayScore)
		byTeam[m.AwayTeam].record(m.AwayScore, m.HomeScore)
	}

	return domainstandings.Table{
		Standings: rankStandings(order),
		Forms:     rankForms(order),
	}
}

func rankStandings(order []*accumulator) []domainstandings.TeamStanding {
	table := make([]domainstandings.TeamStanding, 0, len(order))
	for _, acc := range order {
		table = append(table, acc.standing())
	}
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

func rankForms(order []*accumulator) []domainstandings.TeamForm {
	forms := make([]domainstandings.TeamForm, 0, len(order))
	for _, acc := range order {
		form := acc.formString()
		forms = append(forms, domainstandings.TeamForm{
			Team:         acc.team,
			GoalsFor:     acc.goalsFor,
			GoalsAgainst: acc.goalsAgainst,
			Played:       formTablePlayed,
			Points:       acc.points,
			Form:         form,
			FormPoints:   domainstandings.FormPoints(form),
		})
	}
	sort.SliceStable(forms, func(i, j int) bool {
		return forms[i].FormPoints > forms[j].FormPoints
	})
	for i := range forms {
		forms[i].Position = i + 1
	}
	return forms
}
