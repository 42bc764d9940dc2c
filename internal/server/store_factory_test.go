package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/config"
	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
)

func TestStoreFactoryDefaultsToMemory(t *testing.T) {
	rec := metrics.NewRecorder()
	s, err := newStoreFactory(nil, rec).build(context.Background(), config.StoreConfig{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if rec.StoreCalls(config.StoreMemory) != 1 {
		t.Fatalf("expected ping recorded under memory backend, got %d", rec.StoreCalls(config.StoreMemory))
	}
}

func TestStoreFactoryBuildsFSStore(t *testing.T) {
	dir := t.TempDir()
	s, err := newStoreFactory(nil, nil).build(context.Background(), config.StoreConfig{
		Backend: config.StoreFS,
		DataDir: dir,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer s.Close()

	registry := []domainleagues.League{{ID: "premier", Season: "2024-premier"}}
	if err := s.SaveLeagues(context.Background(), registry); err != nil {
		t.Fatalf("save leagues: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read data dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected blobs written under %s", dir)
	}
}

func TestStoreFactoryBuildsSQLiteStoreInNestedDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leagues.db")
	s, err := newStoreFactory(nil, nil).build(context.Background(), config.StoreConfig{
		Backend:    config.StoreSQLite,
		SQLitePath: path,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sqlite file at %s: %v", path, err)
	}
	registry, err := s.ListLeagues(context.Background())
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(registry) != 0 {
		t.Fatalf("expected empty registry, got %d", len(registry))
	}
}

func TestStoreFactoryErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.StoreConfig
		want string
	}{
		{"redis without url", config.StoreConfig{Backend: config.StoreRedis}, "REDIS_URL"},
		{"postgres without url", config.StoreConfig{Backend: config.StorePostgres}, "DATABASE_URL"},
		{"redis bad url", config.StoreConfig{Backend: config.StoreRedis, RedisURL: "not-a-url"}, "parse url"},
		{"unknown backend", config.StoreConfig{Backend: "cassandra"}, "unknown store backend"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newStoreFactory(nil, nil).build(context.Background(), tc.cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
