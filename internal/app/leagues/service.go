package leagues

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/league-stats-service/internal/app/standings"
	"github.com/preston-bernstein/league-stats-service/internal/domain"
	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
	domainstandings "github.com/preston-bernstein/league-stats-service/internal/domain/standings"
	"github.com/preston-bernstein/league-stats-service/internal/ingest"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
)

// Store persists the league registry and per-league data.
type Store interface {
	ListLeagues(ctx context.Context) ([]domainleagues.League, error)
	SaveLeagues(ctx context.Context, registry []domainleagues.League) error
	LoadLeague(ctx context.Context, id string) (domainleagues.LeagueData, bool, error)
	SaveLeague(ctx context.Context, id string, data domainleagues.LeagueData) error
	DeleteLeague(ctx context.Context, id string) error
}

// Publisher receives league change events.
type Publisher interface {
	Publish(evt domainleagues.Event)
}

// IngestRecorder receives per-file row counts.
type IngestRecorder interface {
	RecordIngest(accepted, rejected, warnings int)
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ImportReport summarizes one CSV upload.
type ImportReport struct {
	League    domainleagues.League           `json:"league"`
	Accepted  int                            `json:"accepted"`
	Rejected  []ingest.RowError              `json:"rejected"`
	Warnings  []ingest.RowError              `json:"warnings"`
	Standings []domainstandings.TeamStanding `json:"standings"`
}

// Service coordinates league operations. Read-modify-write sequences on the
// registry are serialized; reads go straight to the store.
type Service struct {
	mu           sync.Mutex
	store        Store
	publisher    Publisher
	recorder     IngestRecorder
	logger       *slog.Logger
	seasonPrefix string
	now          func() time.Time
	newID        func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher sets where change events go.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRecorder sets the ingest metrics sink.
func WithRecorder(r IngestRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the fallback logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithSeasonPrefix sets the prefix used for season labels.
func WithSeasonPrefix(prefix string) Option {
	return func(s *Service) { s.seasonPrefix = prefix }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides id generation for leagues created without an id.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		seasonPrefix: "Season",
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the registry; empty when nothing has been stored.
func (s *Service) List(ctx context.Context) ([]domainleagues.League, error) {
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = []domainleagues.League{}
	}
	return registry, nil
}

// Create registers an empty league. A blank id gets a generated one.
func (s *Service) Create(ctx context.Context, id string) (domainleagues.League, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = s.newID()
	}
	if err := validateID(id); err != nil {
		return domainleagues.League{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		return domainleagues.League{}, err
	}
	if _, ok := find(registry, id); ok {
		return domainleagues.League{}, fmt.Errorf("%w: league %s", domain.ErrConflict, id)
	}

	league := domainleagues.NewLeague(id, s.seasonPrefix)
	empty := domainleagues.LeagueData{
		Matches:   []matches.MatchResult{},
		Standings: []domainstandings.TeamStanding{},
		TeamForms: []domainstandings.TeamForm{},
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveLeague(ctx, id, empty); err != nil {
		return domainleagues.League{}, err
	}
	if err := s.store.SaveLeagues(ctx, append(registry, league)); err != nil {
		return domainleagues.League{}, err
	}
	logging.Info(s.log(ctx), "league created", logging.FieldLeague, id)
	return league, nil
}

// Get returns one registry entry with its stored data.
func (s *Service) Get(ctx context.Context, id string) (domainleagues.League, domainleagues.LeagueData, error) {
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		return domainleagues.League{}, domainleagues.LeagueData{}, err
	}
	idx, ok := find(registry, id)
	if !ok {
		return domainleagues.League{}, domainleagues.LeagueData{}, fmt.Errorf("%w: league %s", domain.ErrNotFound, id)
	}
	data, _, err := s.store.LoadLeague(ctx, id)
	if err != nil {
		return domainleagues.League{}, domainleagues.LeagueData{}, err
	}
	return registry[idx], withEmptySlices(data), nil
}

// ImportCSV replaces a league's matches with the rows parsed from r and rebuilds its tables.
// The league is registered if it does not exist yet.
func (s *Service) ImportCSV(ctx context.Context, id string, r io.Reader) (ImportReport, error) {
	id = strings.TrimSpace(id)
	if err := validateID(id); err != nil {
		return ImportReport{}, err
	}

	parsed, err := ingest.ParseCSV(r)
	if err != nil {
		return ImportReport{}, err
	}
	if s.recorder != nil {
		s.recorder.RecordIngest(len(parsed.Matches), len(parsed.Rejected), len(parsed.Warnings))
	}
	if len(parsed.Matches) == 0 {
		return ImportReport{}, fmt.Errorf("%w: no valid match rows (%d rejected)", domain.ErrMalformedInput, len(parsed.Rejected))
	}

	table := standings.Compute(parsed.Matches)

	s.mu.Lock()
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		s.mu.Unlock()
		return ImportReport{}, err
	}
	idx, ok := find(registry, id)
	if !ok {
		registry = append(registry, domainleagues.NewLeague(id, s.seasonPrefix))
		idx = len(registry) - 1
	}
	data := domainleagues.LeagueData{
		Matches:   parsed.Matches,
		Standings: table.Standings,
		TeamForms: table.Forms,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveLeague(ctx, id, data); err != nil {
		s.mu.Unlock()
		return ImportReport{}, err
	}
	registry[idx] = registry[idx].WithPodium(table.Standings)
	league := registry[idx]
	if err := s.store.SaveLeagues(ctx, registry); err != nil {
		s.mu.Unlock()
		return ImportReport{}, err
	}
	s.mu.Unlock()

	logging.Info(s.log(ctx), "league imported",
		logging.FieldLeague, id,
		logging.FieldCount, len(parsed.Matches),
		logging.FieldRejected, len(parsed.Rejected),
	)
	s.publish(domainleagues.Event{
		Type:      domainleagues.EventUpdated,
		LeagueID:  id,
		League:    &league,
		Standings: table.Standings,
		At:        data.UpdatedAt,
	})

	return ImportReport{
		League:    league,
		Accepted:  len(parsed.Matches),
		Rejected:  parsed.Rejected,
		Warnings:  parsed.Warnings,
		Standings: table.Standings,
	}, nil
}

// Complete marks a league's season as finished.
func (s *Service) Complete(ctx context.Context, id string) (domainleagues.League, error) {
	s.mu.Lock()
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		s.mu.Unlock()
		return domainleagues.League{}, err
	}
	idx, ok := find(registry, id)
	if !ok {
		s.mu.Unlock()
		return domainleagues.League{}, fmt.Errorf("%w: league %s", domain.ErrNotFound, id)
	}
	registry[idx].Status = domainleagues.StatusCompleted
	league := registry[idx]
	if err := s.store.SaveLeagues(ctx, registry); err != nil {
		s.mu.Unlock()
		return domainleagues.League{}, err
	}
	s.mu.Unlock()

	s.publish(domainleagues.Event{Type: domainleagues.EventUpdated, LeagueID: id, League: &league, At: s.now().UTC()})
	return league, nil
}

// Delete removes a league and its data.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	idx, ok := find(registry, id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: league %s", domain.ErrNotFound, id)
	}
	registry = append(registry[:idx], registry[idx+1:]...)
	if err := s.store.SaveLeagues(ctx, registry); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.store.DeleteLeague(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	logging.Info(s.log(ctx), "league deleted", logging.FieldLeague, id)
	s.publish(domainleagues.Event{Type: domainleagues.EventDeleted, LeagueID: id, At: s.now().UTC()})
	return nil
}

// Dataset combines every stored league. It fails with ErrNoData when the registry is empty.
func (s *Service) Dataset(ctx context.Context) (domainleagues.Dataset, error) {
	registry, err := s.store.ListLeagues(ctx)
	if err != nil {
		return domainleagues.Dataset{}, err
	}
	if len(registry) == 0 {
		return domainleagues.Dataset{}, domain.ErrNoData
	}

	ds := domainleagues.Dataset{
		Matches: make([]matches.MatchResult, 0),
		Tables:  make([]domainleagues.LeagueTable, 0, len(registry)),
	}
	for _, league := range registry {
		data, found, err := s.store.LoadLeague(ctx, league.ID)
		if err != nil {
			return domainleagues.Dataset{}, err
		}
		if !found {
			continue
		}
		for _, m := range data.Matches {
			if m.Competition == "" {
				m.Competition = league.ID
			}
			ds.Matches = append(ds.Matches, m)
		}
		ds.Tables = append(ds.Tables, domainleagues.LeagueTable{LeagueID: league.ID, Standings: data.Standings})
	}
	return ds, nil
}

// AllMatches returns every stored match with its league as competition.
func (s *Service) AllMatches(ctx context.Context) ([]matches.MatchResult, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Matches, nil
}

// Standings returns each stored league's current table.
func (s *Service) Standings(ctx context.Context) ([]domainleagues.LeagueTable, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Tables, nil
}

// Teams returns the sorted distinct team names across every league.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	all, err := s.AllMatches(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	teams := make([]string, 0)
	for _, m := range all {
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if _, ok := seen[team]; ok {
				continue
			}
			seen[team] = struct{}{}
			teams = append(teams, team)
		}
	}
	sort.Strings(teams)
	return teams, nil
}

func (s *Service) publish(evt domainleagues.Event) {
	if s.publisher != nil {
		s.publisher.Publish(evt)
	}
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

func validateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: league id must be 1-64 letters, digits, '-' or '_'", domain.ErrInvalidArgument)
	}
	return nil
}

func find(registry []domainleagues.League, id string) (int, bool) {
	for i, l := range registry {
		if l.ID == id {
			return i, true
		}
	}
	return -1, false
}

func withEmptySlices(data domainleagues.LeagueData) domainleagues.LeagueData {
	if data.Matches == nil {
		data.Matches = []matches.MatchResult{}
	}
	if data.Standings == nil {
		data.Standings = []domainstandings.TeamStanding{}
	}
	if data.TeamForms == nil {
		data.TeamForms = []domainstandings.TeamForm{}
	}
	return data
}

// IsClientError reports whether err should be surfaced to callers as their mistake.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrMissingParameter) ||
		errors.Is(err, domain.ErrMalformedInput) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrNoData)
}
