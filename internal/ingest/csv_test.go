package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
)

const header = "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n"

func TestParseCSVValidRows(t *testing.T) {
	input := header +
		"2024-08-17,Arsenal,Wolves,1,0,2,0\n" +
		"2024-08-18,Chelsea,Man City,0,1,0,2\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 2 || len(res.Rejected) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	m := res.Matches[1]
	if m.HomeTeam != "Chelsea" || m.AwayTeam != "Man City" || m.HTAwayScore != 1 || m.AwayScore != 2 {
		t.Fatalf("unexpected match %+v", m)
	}
}

func TestParseCSVHeaderIsCaseInsensitiveAndReordered(t *testing.T) {
	input := "\ufeffHome_Team , Away_Team,Date,Home_Score,Away_Score,HT_Home_Score,HT_Away_Score,Referee\n" +
		"A,B,2024-01-01,3,1,1,1,Someone\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected one match, got %+v", res)
	}
	m := res.Matches[0]
	if m.Date != "2024-01-01" || m.HomeScore != 3 || m.AwayScore != 1 || m.HTHomeScore != 1 {
		t.Fatalf("unexpected match %+v", m)
	}
}

func TestParseCSVMissingHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("date,home_team,away_team\nx,y,z\n"))
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "home_score") {
		t.Fatalf("expected missing column named, got %v", err)
	}

	if _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for empty file, got %v", err)
	}
}

func TestParseCSVRejectsBadRows(t *testing.T) {
	input := header +
		"2024-01-01,A,B,0,0,1,0\n" +
		",A,B,0,0,1,0\n" +
		"2024-01-02,,B,0,0,1,0\n" +
		"2024-01-03,A,A,0,0,1,0\n" +
		"2024-01-04,C,D,0,0,2,2\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 accepted matches, got %d", len(res.Matches))
	}
	if len(res.Rejected) != 3 {
		t.Fatalf("expected 3 rejected rows, got %+v", res.Rejected)
	}
	if res.Rejected[0].Line != 3 || res.Rejected[0].Field != "date" {
		t.Fatalf("unexpected first rejection %+v", res.Rejected[0])
	}
	if res.Rejected[1].Field != "home_team" {
		t.Fatalf("unexpected second rejection %+v", res.Rejected[1])
	}
	if res.Rejected[2].Message != "home and away teams must differ" {
		t.Fatalf("unexpected third rejection %+v", res.Rejected[2])
	}
}

func TestParseCSVCoercesScores(t *testing.T) {
	input := header + "2024-01-01,A,B,x,-1,two,3\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected coerced row to be accepted, got %+v", res)
	}
	m := res.Matches[0]
	if m.HTHomeScore != 0 || m.HTAwayScore != 0 || m.HomeScore != 0 || m.AwayScore != 3 {
		t.Fatalf("unexpected coerced scores %+v", m)
	}
	if len(res.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %+v", res.Warnings)
	}
}

func TestParseCSVClampsHalftime(t *testing.T) {
	input := header + "2024-01-01,A,B,3,2,1,2\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := res.Matches[0]
	if m.HTHomeScore != 1 || m.HTAwayScore != 2 {
		t.Fatalf("expected clamped halftime, got %+v", m)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Field != ColHTHomeScore {
		t.Fatalf("expected one clamp warning, got %+v", res.Warnings)
	}
}

func TestParseCSVSkipsBlankAndShortRows(t *testing.T) {
	input := header +
		"\n" +
		" , , , , , , \n" +
		"2024-01-01,A,B\n"

	res, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected short row accepted with zero scores, got %+v", res)
	}
	if len(res.Warnings) != 4 {
		t.Fatalf("expected a warning per missing score, got %+v", res.Warnings)
	}
}

func TestRowErrorHelpers(t *testing.T) {
	var err error = &RowError{Line: 4, Field: "date", Message: "is required"}
	if err.Error() != "line 4: date: is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	re, ok := AsRowError(err)
	if !ok || re.Line != 4 {
		t.Fatalf("expected row error, got %+v", re)
	}
	if _, ok := AsRowError(errors.New("other")); ok {
		t.Fatal("expected non-row error to be rejected")
	}
	plain := &RowError{Line: 2, Message: "bad quote"}
	if plain.Error() != "line 2: bad quote" {
		t.Fatalf("unexpected message %q", plain.Error())
	}
}
