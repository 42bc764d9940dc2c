package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/app/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/league-stats-service/internal/store"
)

// SampleCSV is a small valid upload: Chelsea top on goal difference, Arsenal second, Wolves third.
const SampleCSV = "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n" +
	"2024-08-17,Arsenal,Wolves,1,0,2,0\n" +
	"2024-08-24,Wolves,Chelsea,0,1,2,6\n" +
	"2024-08-31,Chelsea,Arsenal,1,1,1,1\n"

// SampleMatch returns a finished fixture with the given teams and full-time score.
func SampleMatch(home, away string, homeScore, awayScore int) matches.MatchResult {
	return matches.MatchResult{
		Date:      "2024-08-17",
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

// NewLeagueService returns a league service backed by an in-memory store.
func NewLeagueService(opts ...leagues.Option) *leagues.Service {
	return leagues.NewService(store.NewLeagueStore(store.NewMemoryStore()), opts...)
}

// NewLeagueServiceWithCSV returns an in-memory league service with csv imported into league id.
func NewLeagueServiceWithCSV(t *testing.T, id, csv string, opts ...leagues.Option) *leagues.Service {
	t.Helper()
	svc := NewLeagueService(opts...)
	if _, err := svc.ImportCSV(context.Background(), id, strings.NewReader(csv)); err != nil {
		t.Fatalf("seed league %s: %v", id, err)
	}
	return svc
}
