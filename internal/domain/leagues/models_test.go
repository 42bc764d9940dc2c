package leagues

import (
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/domain/standings"
)

func TestNewLeagueDefaults(t *testing.T) {
	l := NewLeague("premier", "Season")
	if l.Season != "Season premier" {
		t.Fatalf("unexpected season label %q", l.Season)
	}
	if l.Status != StatusInProgress {
		t.Fatalf("expected in-progress status, got %s", l.Status)
	}
	if l.Winner != Placeholder || l.SecondPlace != Placeholder || l.ThirdPlace != Placeholder {
		t.Fatalf("expected placeholder podium, got %+v", l)
	}
	if got := SeasonLabel("  ", "x"); got != "x" {
		t.Fatalf("expected bare id without prefix, got %q", got)
	}
}

func TestWithPodium(t *testing.T) {
	l := NewLeague("premier", "Season")

	short := []standings.TeamStanding{{Team: "A"}, {Team: "B"}}
	if got := l.WithPodium(short); got.Winner != Placeholder {
		t.Fatalf("expected placeholders for two-team table, got %+v", got)
	}

	full := []standings.TeamStanding{{Team: "A"}, {Team: "B"}, {Team: "C"}, {Team: "D"}}
	got := l.WithPodium(full)
	if got.Winner != "A" || got.SecondPlace != "B" || got.ThirdPlace != "C" {
		t.Fatalf("unexpected podium %+v", got)
	}
	if l.Winner != Placeholder {
		t.Fatal("expected original league to be unchanged")
	}
}
