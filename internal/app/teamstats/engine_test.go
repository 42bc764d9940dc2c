package teamstats

import (
	"errors"
	"math"
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	"github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/league-stats-service/internal/domain/standings"
)

func result(home, away string, hth, hta, hs, as int) matches.MatchResult {
	return matches.MatchResult{
		Date:        "2024-01-01",
		HomeTeam:    home,
		AwayTeam:    away,
		HTHomeScore: hth,
		HTAwayScore: hta,
		HomeScore:   hs,
		AwayScore:   as,
	}
}

func TestComputeRequiresTeam(t *testing.T) {
	if _, err := Compute(" ", nil, nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestComputeNoMatches(t *testing.T) {
	stats, err := Compute("A", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Form == nil || stats.Competitions == nil {
		t.Fatal("expected non-nil form and competitions")
	}
	if stats.PerformanceMetrics.BothTeamsScoredPercentage != 0 {
		t.Fatalf("expected 0%% btts with no matches, got %v", stats.PerformanceMetrics.BothTeamsScoredPercentage)
	}
	if stats.PerformanceMetrics.ShotsPerGame != 12.5 {
		t.Fatalf("expected static shots per game, got %v", stats.PerformanceMetrics.ShotsPerGame)
	}
	if stats.DetailedStats.BiggestVictory.Total != matches.NoResult {
		t.Fatalf("expected placeholder victory, got %+v", stats.DetailedStats.BiggestVictory)
	}
}

func TestComputeOverviewAndSplits(t *testing.T) {
	results := []matches.MatchResult{
		result("A", "B", 1, 0, 3, 0), // home W 3-0
		result("C", "A", 1, 1, 2, 1), // away L 1-2
		result("A", "C", 0, 0, 1, 1), // home D
		result("B", "A", 0, 2, 0, 4), // away W 4-0
		result("B", "C", 0, 0, 5, 0), // not A
	}
	stats, err := Compute("A", results, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o := stats.Overview
	if o.MatchesPlayed != 4 || o.Wins != 2 || o.Draws != 1 || o.Losses != 1 || o.GoalsFor != 9 || o.GoalsAgainst != 3 {
		t.Fatalf("unexpected overview %+v", o)
	}
	if got := stats.Form; len(got) != 4 || got[0] != "W" || got[1] != "L" || got[2] != "D" || got[3] != "W" {
		t.Fatalf("unexpected form %v", got)
	}

	d := stats.DetailedStats
	if d.MatchesPlayed != (Split{Total: 4, Home: 2, Away: 2}) {
		t.Fatalf("unexpected played split %+v", d.MatchesPlayed)
	}
	if d.Points != (Split{Total: 7, Home: 4, Away: 3}) {
		t.Fatalf("unexpected points split %+v", d.Points)
	}
	if d.CleanSheets != (Split{Total: 2, Home: 1, Away: 1}) {
		t.Fatalf("unexpected clean sheets %+v", d.CleanSheets)
	}
	if d.BiggestVictory != (ScoreSplit{Total: "4-0", Home: "3-0", Away: "4-0"}) {
		t.Fatalf("unexpected biggest victory %+v", d.BiggestVictory)
	}
	if d.BiggestDefeat != (ScoreSplit{Total: "1-2", Home: "0-0", Away: "1-2"}) {
		t.Fatalf("unexpected biggest defeat %+v", d.BiggestDefeat)
	}
	if d.FirstHalfGoals != (HalfGoals{For: 4, Against: 1}) || d.SecondHalfGoals != (HalfGoals{For: 5, Against: 2}) {
		t.Fatalf("unexpected half goals %+v %+v", d.FirstHalfGoals, d.SecondHalfGoals)
	}

	pm := stats.PerformanceMetrics
	if pm.CleanSheets != 2 || pm.TotalMatches != 4 || pm.GoalsScored != 9 {
		t.Fatalf("unexpected metrics %+v", pm)
	}
	// Both scored in 2 of 4 (1-2 and 1-1).
	if pm.BothTeamsScoredPercentage != 50 {
		t.Fatalf("expected 50%% btts, got %v", pm.BothTeamsScoredPercentage)
	}
}

func TestComputeFormKeepsLastFive(t *testing.T) {
	results := []matches.MatchResult{
		result("A", "B", 0, 0, 0, 1),
		result("A", "B", 0, 0, 1, 0),
		result("A", "B", 0, 0, 1, 1),
		result("A", "B", 0, 0, 2, 0),
		result("A", "B", 0, 0, 0, 2),
		result("A", "B", 0, 0, 3, 0),
	}
	stats, _ := Compute("A", results, nil)
	want := []string{"W", "D", "W", "L", "W"}
	if len(stats.Form) != len(want) {
		t.Fatalf("expected %d form entries, got %v", len(want), stats.Form)
	}
	for i := range want {
		if stats.Form[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, stats.Form)
		}
	}
}

func TestComputeCompetitions(t *testing.T) {
	tables := []leagues.LeagueTable{
		{LeagueID: "premier", Standings: []standings.TeamStanding{
			{Position: 1, Team: "A", Played: 10, GoalsFor: 20, Points: 25},
			{Position: 2, Team: "B"},
			{Position: 3, Team: "C"},
		}},
		{LeagueID: "cup", Standings: []standings.TeamStanding{{Position: 1, Team: "B"}}},
		{LeagueID: "solo", Standings: []standings.TeamStanding{{Position: 1, Team: "A", Played: 1}}},
	}
	stats, _ := Compute("A", nil, tables)
	if len(stats.Competitions) != 2 {
		t.Fatalf("expected 2 competitions, got %+v", stats.Competitions)
	}
	first := stats.Competitions[0]
	if first.LeagueID != "premier" || first.Position != 1 || first.Matches != 10 || first.Goals != 20 || first.Points != 25 {
		t.Fatalf("unexpected competition %+v", first)
	}
	if first.Rating != 8 {
		t.Fatalf("expected leader rating 8, got %v", first.Rating)
	}
	if stats.Competitions[1].Rating != 7 {
		t.Fatalf("expected single-team rating 7, got %v", stats.Competitions[1].Rating)
	}
}

func TestRating(t *testing.T) {
	cases := []struct {
		position, total int
		want            float64
	}{
		{1, 20, 8},
		{20, 20, 6},
		{2, 3, 7},
		{1, 1, 7},
		{1, 0, 7},
	}
	for _, tc := range cases {
		if got := Rating(tc.position, tc.total); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Rating(%d,%d): expected %v, got %v", tc.position, tc.total, tc.want, got)
		}
	}
}
