package h2h

// MatchSummary echoes one qualifying fixture.
type MatchSummary struct {
	Date        string `json:"date"`
	Competition string `json:"competition"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Score       string `json:"score"`
}

// OverallStats tallies the fixtures between the two teams.
type OverallStats struct {
	TotalMatches   int    `json:"total_matches"`
	Team1Wins      int    `json:"team1_wins"`
	Team2Wins      int    `json:"team2_wins"`
	Draws          int    `json:"draws"`
	Team1Goals     int    `json:"team1_goals"`
	Team2Goals     int    `json:"team2_goals"`
	BiggestVictory string `json:"biggest_victory"`
	BiggestDefeat  string `json:"biggest_defeat"`
}

// SeasonStats is the same set of fixtures from team1's perspective.
// CleanSheets counts fixtures where either side failed to score.
type SeasonStats struct {
	MatchesPlayed    int     `json:"matches_played"`
	Wins             int     `json:"wins"`
	Draws            int     `json:"draws"`
	Losses           int     `json:"losses"`
	GoalsFor         int     `json:"goals_for"`
	GoalsAgainst     int     `json:"goals_against"`
	CleanSheets      int     `json:"clean_sheets"`
	FailedToScore    int     `json:"failed_to_score"`
	AvgGoalsScored   float64 `json:"avg_goals_scored"`
	AvgGoalsConceded float64 `json:"avg_goals_conceded"`
	BiggestVictory   string  `json:"biggest_victory"`
	BiggestDefeat    string  `json:"biggest_defeat"`
}

// Stats is the head-to-head aggregate for team1 against team2.
type Stats struct {
	Team1   string         `json:"team1"`
	Team2   string         `json:"team2"`
	Matches []MatchSummary `json:"matches"`
	Overall OverallStats   `json:"overall_stats"`
	Season  SeasonStats    `json:"season_stats"`
}
