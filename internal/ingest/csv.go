package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
)

// Column names recognised in the header row.
const (
	ColDate        = "date"
	ColHomeTeam    = "home_team"
	ColAwayTeam    = "away_team"
	ColHTHomeScore = "ht_home_score"
	ColHTAwayScore = "ht_away_score"
	ColHomeScore   = "home_score"
	ColAwayScore   = "away_score"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColDate, ColHomeTeam, ColAwayTeam,
	ColHTHomeScore, ColHTAwayScore, ColHomeScore, ColAwayScore,
}

// Result is the outcome of parsing one file. Rejected rows are excluded from Matches;
// rows with warnings are included after correction.
type Result struct {
	Matches  []matches.MatchResult `json:"-"`
	Rejected []RowError            `json:"rejected"`
	Warnings []RowError            `json:"warnings"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseCSV reads match rows from r. Only a missing header or an unreadable stream fails the
// whole file; bad rows are reported in Result and skipped.
func ParseCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("%w: empty file", domain.ErrMalformedInput)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: read header: %w", domain.ErrMalformedInput, err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Matches:  make([]matches.MatchResult, 0),
		Rejected: make([]RowError, 0),
		Warnings: make([]RowError, 0),
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Rejected = append(res.Rejected, RowError{Line: perr.StartLine, Message: perr.Err.Error()})
				continue
			}
			return Result{}, fmt.Errorf("read csv: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		m, warnings, rowErr := parseRow(line, record, columns)
		res.Warnings = append(res.Warnings, warnings...)
		if rowErr != nil {
			res.Rejected = append(res.Rejected, *rowErr)
			continue
		}
		res.Matches = append(res.Matches, m)
	}
	return res, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrMalformedInput, strings.Join(missing, ", "))
	}
	return columns, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(line int, record []string, columns map[string]int) (matches.MatchResult, []RowError, *RowError) {
	field := func(col string) string {
		i := columns[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var warnings []RowError
	score := func(col string) int {
		raw := field(col)
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			warnings = append(warnings, RowError{Line: line, Field: col, Message: fmt.Sprintf("invalid score %q, using 0", raw)})
			return 0
		}
		return v
	}

	m := matches.MatchResult{
		Date:        field(ColDate),
		HomeTeam:    field(ColHomeTeam),
		AwayTeam:    field(ColAwayTeam),
		HTHomeScore: score(ColHTHomeScore),
		HTAwayScore: score(ColHTAwayScore),
		HomeScore:   score(ColHomeScore),
		AwayScore:   score(ColAwayScore),
	}
	if m.HTHomeScore > m.HomeScore {
		warnings = append(warnings, RowError{Line: line, Field: ColHTHomeScore, Message: fmt.Sprintf("halftime score %d exceeds final %d, clamped", m.HTHomeScore, m.HomeScore)})
		m.HTHomeScore = m.HomeScore
	}
	if m.HTAwayScore > m.AwayScore {
		warnings = append(warnings, RowError{Line: line, Field: ColHTAwayScore, Message: fmt.Sprintf("halftime score %d exceeds final %d, clamped", m.HTAwayScore, m.AwayScore)})
		m.HTAwayScore = m.AwayScore
	}

	if err := validate.Struct(m); err != nil {
		return matches.MatchResult{}, warnings, rowError(line, err)
	}
	return m, warnings, nil
}

func rowError(line int, err error) *RowError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &RowError{Line: line, Message: err.Error()}
	}
	fe := verrs[0]
	msg := fmt.Sprintf("failed %s validation", fe.Tag())
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "nefield":
		msg = "home and away teams must differ"
	}
	return &RowError{Line: line, Field: fe.Field(), Message: msg}
}
