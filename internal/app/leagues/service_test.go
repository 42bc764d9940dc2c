package leagues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/store"
)

const sampleCSV = "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n" +
	"2024-08-17,Arsenal,Wolves,1,0,2,0\n" +
	"2024-08-24,Wolves,Chelsea,0,1,2,6\n" +
	"2024-08-31,Chelsea,Arsenal,1,1,1,1\n" +
	"2024-09-07,Arsenal,Arsenal,0,0,0,0\n"

type stubPublisher struct {
	mu     sync.Mutex
	events []domainleagues.Event
}

func (p *stubPublisher) Publish(evt domainleagues.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

type stubRecorder struct {
	accepted, rejected, warnings int
}

func (r *stubRecorder) RecordIngest(accepted, rejected, warnings int) {
	r.accepted += accepted
	r.rejected += rejected
	r.warnings += warnings
}

type failingStore struct {
	*store.LeagueStore
	listErr error
	saveErr error
}

func (f *failingStore) ListLeagues(ctx context.Context) ([]domainleagues.League, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.LeagueStore.ListLeagues(ctx)
}

func (f *failingStore) SaveLeague(ctx context.Context, id string, data domainleagues.LeagueData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.LeagueStore.SaveLeague(ctx, id, data)
}

func newTestService(opts ...Option) (*Service, *stubPublisher) {
	pub := &stubPublisher{}
	fixed := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	base := []Option{
		WithPublisher(pub),
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "generated-id" }),
	}
	svc := NewService(store.NewLeagueStore(store.NewMemoryStore()), append(base, opts...)...)
	return svc, pub
}

func TestListEmpty(t *testing.T) {
	svc, _ := newTestService()
	registry, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registry == nil || len(registry) != 0 {
		t.Fatalf("expected empty non-nil registry, got %+v", registry)
	}
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService(WithSeasonPrefix("Temporada"))
	ctx := context.Background()

	league, err := svc.Create(ctx, "premier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if league.ID != "premier" || league.Season != "Temporada premier" || league.Status != domainleagues.StatusInProgress {
		t.Fatalf("unexpected league %+v", league)
	}

	if _, err := svc.Create(ctx, "premier"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	generated, err := svc.Create(ctx, "  ")
	if err != nil || generated.ID != "generated-id" {
		t.Fatalf("expected generated id, got %+v err=%v", generated, err)
	}

	if _, err := svc.Create(ctx, "bad/id"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid id error, got %v", err)
	}

	got, data, err := svc.Get(ctx, "premier")
	if err != nil || got.ID != "premier" {
		t.Fatalf("unexpected get %+v err=%v", got, err)
	}
	if data.Matches == nil || len(data.Matches) != 0 {
		t.Fatalf("expected empty matches for new league, got %+v", data)
	}
}

func TestCreateUsesUUIDByDefault(t *testing.T) {
	svc := NewService(store.NewLeagueStore(store.NewMemoryStore()))
	league, err := svc.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(league.ID) != 36 || strings.Count(league.ID, "-") != 4 {
		t.Fatalf("expected uuid id, got %q", league.ID)
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImportCSV(t *testing.T) {
	rec := &stubRecorder{}
	svc, pub := newTestService(WithRecorder(rec))
	ctx := context.Background()

	report, err := svc.ImportCSV(ctx, "premier", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Accepted != 3 || len(report.Rejected) != 1 {
		t.Fatalf("unexpected report counts %+v", report)
	}
	if len(report.Standings) != 3 || report.Standings[0].Team != "Chelsea" {
		t.Fatalf("unexpected standings %+v", report.Standings)
	}
	if report.League.Winner != "Chelsea" || report.League.SecondPlace != "Arsenal" || report.League.ThirdPlace != "Wolves" {
		t.Fatalf("unexpected podium %+v", report.League)
	}
	if rec.accepted != 3 || rec.rejected != 1 {
		t.Fatalf("expected ingest recorded, got %+v", rec)
	}

	registry, _ := svc.List(ctx)
	if len(registry) != 1 || registry[0].Winner != "Chelsea" {
		t.Fatalf("expected registry updated, got %+v", registry)
	}
	_, data, err := svc.Get(ctx, "premier")
	if err != nil || len(data.Matches) != 3 || len(data.TeamForms) != 3 {
		t.Fatalf("expected stored league data, got %+v err=%v", data, err)
	}
	if !data.UpdatedAt.Equal(time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected clock time on data, got %v", data.UpdatedAt)
	}

	if len(pub.events) != 1 || pub.events[0].Type != domainleagues.EventUpdated || pub.events[0].LeagueID != "premier" {
		t.Fatalf("expected one update event, got %+v", pub.events)
	}
}

func TestImportCSVReplacesMatches(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, _ = svc.ImportCSV(ctx, "premier", strings.NewReader(sampleCSV))

	second := "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n" +
		"2025-01-01,Leeds,Burnley,0,0,1,0\n"
	report, err := svc.ImportCSV(ctx, "premier", strings.NewReader(second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Standings) != 2 {
		t.Fatalf("expected tables rebuilt from new upload only, got %+v", report.Standings)
	}
	// Fewer than three teams: podium keeps the previous values.
	if report.League.Winner != "Chelsea" {
		t.Fatalf("expected podium untouched for short table, got %+v", report.League)
	}
}

func TestImportCSVErrors(t *testing.T) {
	svc, pub := newTestService()
	ctx := context.Background()

	if _, err := svc.ImportCSV(ctx, "", strings.NewReader(sampleCSV)); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid id, got %v", err)
	}
	if _, err := svc.ImportCSV(ctx, "premier", strings.NewReader("a,b\n1,2\n")); !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected malformed header, got %v", err)
	}
	onlyBad := "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n,A,B,0,0,0,0\n"
	if _, err := svc.ImportCSV(ctx, "premier", strings.NewReader(onlyBad)); !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected no valid rows error, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no events for failed imports, got %+v", pub.events)
	}
	registry, _ := svc.List(ctx)
	if len(registry) != 0 {
		t.Fatalf("expected registry untouched, got %+v", registry)
	}
}

func TestImportCSVStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	fs := &failingStore{LeagueStore: store.NewLeagueStore(store.NewMemoryStore()), saveErr: boom}
	svc := NewService(fs)
	if _, err := svc.ImportCSV(context.Background(), "premier", strings.NewReader(sampleCSV)); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if IsClientError(boom) {
		t.Fatal("store failures are not client errors")
	}
}

func TestCompleteAndDelete(t *testing.T) {
	svc, pub := newTestService()
	ctx := context.Background()
	_, _ = svc.ImportCSV(ctx, "premier", strings.NewReader(sampleCSV))

	league, err := svc.Complete(ctx, "premier")
	if err != nil || league.Status != domainleagues.StatusCompleted {
		t.Fatalf("unexpected complete result %+v err=%v", league, err)
	}
	if _, err := svc.Complete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := svc.Delete(ctx, "premier"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if err := svc.Delete(ctx, "premier"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	last := pub.events[len(pub.events)-1]
	if last.Type != domainleagues.EventDeleted || last.LeagueID != "premier" {
		t.Fatalf("expected delete event, got %+v", last)
	}
	if _, err := svc.AllMatches(ctx); !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected no data after delete, got %v", err)
	}
}

func TestDatasetCombinesLeagues(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Dataset(ctx); !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData on empty registry, got %v", err)
	}

	_, _ = svc.ImportCSV(ctx, "premier", strings.NewReader(sampleCSV))
	cup := "date,home_team,away_team,ht_home_score,ht_away_score,home_score,away_score\n" +
		"2024-10-01,Arsenal,Leeds,0,0,3,0\n"
	_, _ = svc.ImportCSV(ctx, "cup", strings.NewReader(cup))

	all, err := svc.AllMatches(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(all))
	}
	if all[0].Competition != "premier" || all[3].Competition != "cup" {
		t.Fatalf("expected competitions from league ids, got %q %q", all[0].Competition, all[3].Competition)
	}

	tables, _ := svc.Standings(ctx)
	if len(tables) != 2 || tables[1].LeagueID != "cup" {
		t.Fatalf("unexpected tables %+v", tables)
	}

	teams, _ := svc.Teams(ctx)
	want := []string{"Arsenal", "Chelsea", "Leeds", "Wolves"}
	if fmt.Sprint(teams) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, teams)
	}
}

func TestDatasetStoreError(t *testing.T) {
	boom := errors.New("unreachable")
	svc := NewService(&failingStore{LeagueStore: store.NewLeagueStore(store.NewMemoryStore()), listErr: boom})
	if _, err := svc.Dataset(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestConcurrentImportsDoNotLoseLeagues(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.ImportCSV(ctx, fmt.Sprintf("league-%d", i), strings.NewReader(sampleCSV)); err != nil {
				t.Errorf("import %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	registry, _ := svc.List(ctx)
	if len(registry) != 10 {
		t.Fatalf("expected 10 leagues, got %d", len(registry))
	}
}

func TestIsClientError(t *testing.T) {
	for _, err := range []error{domain.ErrInvalidArgument, domain.ErrNoData, fmt.Errorf("x: %w", domain.ErrConflict)} {
		if !IsClientError(err) {
			t.Fatalf("expected %v to be a client error", err)
		}
	}
}
