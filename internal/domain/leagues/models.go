package leagues

import (
	"strings"
	"time"

	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/league-stats-service/internal/domain/standings"
)

// Status of a league season.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Placeholder shown for podium places until the table has enough teams.
const Placeholder = "-"

// League is one entry of the league registry.
type League struct {
	ID          string `json:"id"`
	Season      string `json:"season"`
	Winner      string `json:"winner"`
	SecondPlace string `json:"secondPlace"`
	ThirdPlace  string `json:"thirdPlace"`
	Status      Status `json:"status"`
}

// NewLeague builds an in-progress registry entry with an empty podium.
func NewLeague(id, seasonPrefix string) League {
	return League{
		ID:          id,
		Season:      SeasonLabel(seasonPrefix, id),
		Winner:      Placeholder,
		SecondPlace: Placeholder,
		ThirdPlace:  Placeholder,
		Status:      StatusInProgress,
	}
}

// SeasonLabel joins the configured prefix and the league id.
func SeasonLabel(prefix, id string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return id
	}
	return prefix + " " + id
}

// WithPodium returns a copy with winner/second/third taken from the table.
// Tables with fewer than three rows leave the placeholders untouched.
func (l League) WithPodium(table []standings.TeamStanding) League {
	if len(table) < 3 {
		return l
	}
	l.Winner = table[0].Team
	l.SecondPlace = table[1].Team
	l.ThirdPlace = table[2].Team
	return l
}

// LeagueData is the per-league persisted blob.
type LeagueData struct {
	Matches   []matches.MatchResult    `json:"matches"`
	Standings []standings.TeamStanding `json:"standings"`
	TeamForms []standings.TeamForm     `json:"teamForms"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// LeagueTable pairs a league id with its current standings.
type LeagueTable struct {
	LeagueID  string                   `json:"leagueId"`
	Standings []standings.TeamStanding `json:"standings"`
}

// Dataset is every stored league combined; each match's Competition is its league id when unset.
type Dataset struct {
	Matches []matches.MatchResult
	Tables  []LeagueTable
}

// Event types published on league changes.
const (
	EventUpdated = "league.updated"
	EventDeleted = "league.deleted"
)

// Event notifies subscribers that a league changed.
type Event struct {
	Type      string                   `json:"type"`
	LeagueID  string                   `json:"leagueId"`
	League    *League                  `json:"league,omitempty"`
	Standings []standings.TeamStanding `json:"standings,omitempty"`
	At        time.Time                `json:"at"`
}
