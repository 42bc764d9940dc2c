package h2h

import (
	"fmt"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
)

// DefaultCompetition labels fixtures that carry no competition.
const DefaultCompetition = "League"

// Compute aggregates every fixture between team1 and team2, in either home/away order.
// Results are scanned left to right; the first fixture with the largest margin is the one reported.
func Compute(results []matches.MatchResult, team1, team2 string) (Stats, error) {
	team1 = matches.TrimTeam(team1)
	team2 = matches.TrimTeam(team2)
	if team1 == "" || team2 == "" {
		return Stats{}, fmt.Errorf("%w: team1 and team2 are required", domain.ErrInvalidArgument)
	}

	stats := Stats{
		Team1:   team1,
		Team2:   team2,
		Matches: make([]MatchSummary, 0),
	}
	var victory, defeat matches.Extreme

	for _, m := range results {
		if !m.Between(team1, team2) {
			continue
		}
		side, _ := m.SideOf(team1)

		overall := &stats.Overall
		season := &stats.Season
		overall.TotalMatches++
		overall.Team1Goals += side.GoalsFor
		overall.Team2Goals += side.GoalsAgainst
		season.MatchesPlayed++
		season.GoalsFor += side.GoalsFor
		season.GoalsAgainst += side.GoalsAgainst

		switch side.Outcome() {
		case matches.Win:
			overall.Team1Wins++
			season.Wins++
			victory.Offer(side.GoalsFor-side.GoalsAgainst, side.Score())
		case matches.Loss:
			overall.Team2Wins++
			season.Losses++
			defeat.Offer(side.GoalsAgainst-side.GoalsFor, side.Score())
		default:
			overall.Draws++
			season.Draws++
		}

		if m.HomeScore == 0 || m.AwayScore == 0 {
			season.CleanSheets++
		}
		if side.GoalsFor == 0 {
			season.FailedToScore++
		}

		competition := m.Competition
		if competition == "" {
			competition = DefaultCompetition
		}
		stats.Matches = append(stats.Matches, MatchSummary{
			Date:        m.Date,
			Competition: competition,
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			Score:       m.Score(),
		})
	}

	if n := stats.Season.MatchesPlayed; n > 0 {
		stats.Season.AvgGoalsScored = float64(stats.Season.GoalsFor) / float64(n)
		stats.Season.AvgGoalsConceded = float64(stats.Season.GoalsAgainst) / float64(n)
	}
	stats.Overall.BiggestVictory = victory.String()
	stats.Overall.BiggestDefeat = defeat.String()
	stats.Season.BiggestVictory = victory.String()
	stats.Season.BiggestDefeat = defeat.String()
	return stats, nil
}
