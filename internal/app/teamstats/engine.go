package teamstats

import (
	"fmt"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	"github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
)

const (
	// FormWindow is how many recent results the team form keeps.
	FormWindow = 5
	// shotsPerGame is shown until shot data is ingested.
	shotsPerGame = 12.5

	baseRating = 7.0
)

type extremes struct {
	total, home, away matches.Extreme
}

func (e *extremes) offer(home bool, margin int, score string) {
	e.total.Offer(margin, score)
	if home {
		e.home.Offer(margin, score)
	} else {
		e.away.Offer(margin, score)
	}
}

func (e *extremes) split() ScoreSplit {
	return ScoreSplit{Total: e.total.String(), Home: e.home.String(), Away: e.away.String()}
}

// Compute analyses team across results (in input order) and its position in each league table.
func Compute(team string, results []matches.MatchResult, tables []leagues.LeagueTable) (Stats, error) {
	team = matches.TrimTeam(team)
	if team == "" {
		return Stats{}, fmt.Errorf("%w: team is required", domain.ErrInvalidArgument)
	}

	stats := Stats{
		Team:         team,
		Form:         make([]string, 0, FormWindow),
		Competitions: competitions(team, tables),
		PerformanceMetrics: PerformanceMetrics{
			ShotsPerGame: shotsPerGame,
		},
	}
	var victories, defeats extremes
	form := make([]string, 0)
	bothScored := 0
	d := &stats.DetailedStats

	for _, m := range results {
		side, ok := m.SideOf(team)
		if !ok {
			continue
		}
		gf, ga := side.GoalsFor, side.GoalsAgainst

		stats.Overview.MatchesPlayed++
		stats.Overview.GoalsFor += gf
		stats.Overview.GoalsAgainst += ga
		stats.PerformanceMetrics.GoalsScored += gf
		stats.PerformanceMetrics.GoalsConceded += ga
		stats.PerformanceMetrics.TotalMatches++

		d.MatchesPlayed.add(side.Home, 1)
		d.GoalsFor.add(side.Home, gf)
		d.GoalsAgainst.add(side.Home, ga)
		d.FirstHalfGoals.For += side.HTFor
		d.FirstHalfGoals.Against += side.HTAgainst
		d.SecondHalfGoals.For += gf - side.HTFor
		d.SecondHalfGoals.Against += ga - side.HTAgainst

		outcome := side.Outcome()
		switch outcome {
		case matches.Win:
			stats.Overview.Wins++
			d.Wins.add(side.Home, 1)
			victories.offer(side.Home, gf-ga, side.Score())
		case matches.Loss:
			stats.Overview.Losses++
			d.Losses.add(side.Home, 1)
			defeats.offer(side.Home, ga-gf, side.Score())
		default:
			stats.Overview.Draws++
			d.Draws.add(side.Home, 1)
		}
		d.Points.add(side.Home, outcome.Points())
		form = append(form, string(outcome))

		if ga == 0 {
			stats.PerformanceMetrics.CleanSheets++
			d.CleanSheets.add(side.Home, 1)
		}
		if gf == 0 {
			d.FailedToScore.add(side.Home, 1)
		}
		if m.HomeScore > 0 && m.AwayScore > 0 {
			bothScored++
		}
	}

	if len(form) > FormWindow {
		form = form[len(form)-FormWindow:]
	}
	stats.Form = append(stats.Form, form...)
	if n := stats.PerformanceMetrics.TotalMatches; n > 0 {
		stats.PerformanceMetrics.BothTeamsScoredPercentage = float64(bothScored) / float64(n) * 100
	}
	d.BiggestVictory = victories.split()
	d.BiggestDefeat = defeats.split()
	return stats, nil
}

func competitions(team string, tables []leagues.LeagueTable) []Competition {
	out := make([]Competition, 0)
	for _, table := range tables {
		for _, row := range table.Standings {
			if row.Team != team {
				continue
			}
			out = append(out, Competition{
				LeagueID: table.LeagueID,
				Position: row.Position,
				Matches:  row.Played,
				Goals:    row.GoalsFor,
				Points:   row.Points,
				Rating:   Rating(row.Position, len(table.Standings)),
			})
			break
		}
	}
	return out
}

// Rating maps a table position to a 6.0-8.0 score: 8.0 for the leader, 6.0 for the bottom side.
// Single-team tables rate 7.0.
func Rating(position, totalTeams int) float64 {
	if totalTeams <= 1 {
		return baseRating
	}
	impact := float64(totalTeams-position)/float64(totalTeams-1)*2 - 1
	return baseRating + impact
}
