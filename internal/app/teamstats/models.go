package teamstats

// Overview is the team's record across every stored league.
type Overview struct {
	MatchesPlayed int `json:"matches_played"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goals_for"`
	GoalsAgainst  int `json:"goals_against"`
}

// PerformanceMetrics are headline numbers for the team's matches.
// ShotsPerGame is a fixed display value; shots are not ingested.
type PerformanceMetrics struct {
	GoalsScored               int     `json:"goals_scored"`
	GoalsConceded             int     `json:"goals_conceded"`
	CleanSheets               int     `json:"clean_sheets"`
	ShotsPerGame              float64 `json:"shots_pg"`
	BothTeamsScoredPercentage float64 `json:"bothTeamsScoredPercentage"`
	TotalMatches              int     `json:"totalMatches"`
}

// Split is a counter broken down by venue.
type Split struct {
	Total int `json:"total"`
	Home  int `json:"home"`
	Away  int `json:"away"`
}

func (s *Split) add(home bool, n int) {
	s.Total += n
	if home {
		s.Home += n
	} else {
		s.Away += n
	}
}

// ScoreSplit is a score string broken down by venue.
type ScoreSplit struct {
	Total string `json:"total"`
	Home  string `json:"home"`
	Away  string `json:"away"`
}

// HalfGoals counts goals scored and conceded in one half.
type HalfGoals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// DetailedStats are the home/away splits for the team.
type DetailedStats struct {
	MatchesPlayed   Split      `json:"matches_played"`
	Wins            Split      `json:"wins"`
	Draws           Split      `json:"draws"`
	Losses          Split      `json:"losses"`
	GoalsFor        Split      `json:"goals_for"`
	GoalsAgainst    Split      `json:"goals_against"`
	Points          Split      `json:"points"`
	CleanSheets     Split      `json:"clean_sheets"`
	FailedToScore   Split      `json:"failed_to_score"`
	BiggestVictory  ScoreSplit `json:"biggest_victory"`
	BiggestDefeat   ScoreSplit `json:"biggest_defeat"`
	FirstHalfGoals  HalfGoals  `json:"first_half_goals"`
	SecondHalfGoals HalfGoals  `json:"second_half_goals"`
}

// Competition summarizes the team's standing in one league.
type Competition struct {
	LeagueID string  `json:"leagueId"`
	Position int     `json:"position"`
	Matches  int     `json:"matches"`
	Goals    int     `json:"goals"`
	Points   int     `json:"points"`
	Rating   float64 `json:"rating"`
}

// Stats is the full team analysis payload.
type Stats struct {
	Team               string             `json:"team"`
	Overview           Overview           `json:"overview"`
	Form               []string           `json:"form"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
	DetailedStats      DetailedStats      `json:"detailedStats"`
	Competitions       []Competition      `json:"competitions"`
}
