package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
)

// Key layout shared by every backend.
const (
	LeaguesKey      = "leagues"
	leagueKeyPrefix = "league_"
)

// LeagueKey is the blob key holding one league's data.
func LeagueKey(id string) string {
	return leagueKeyPrefix + id
}

// Blobs is a key-value store of JSON documents. Implementations must be safe for concurrent use.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// LeagueStore maps the league registry and per-league data onto a Blobs backend.
type LeagueStore struct {
	blobs Blobs
}

// NewLeagueStore wraps blobs.
func NewLeagueStore(blobs Blobs) *LeagueStore {
	return &LeagueStore{blobs: blobs}
}

// ListLeagues returns the registry; nil when it has never been written.
func (s *LeagueStore) ListLeagues(ctx context.Context) ([]leagues.League, error) {
	var out []leagues.League
	if _, err := s.load(ctx, LeaguesKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveLeagues replaces the registry.
func (s *LeagueStore) SaveLeagues(ctx context.Context, registry []leagues.League) error {
	if registry == nil {
		registry = []leagues.League{}
	}
	return s.save(ctx, LeaguesKey, registry)
}

// LoadLeague returns the data for one league. found is false when no blob exists.
func (s *LeagueStore) LoadLeague(ctx context.Context, id string) (leagues.LeagueData, bool, error) {
	var data leagues.LeagueData
	found, err := s.load(ctx, LeagueKey(id), &data)
	if err != nil || !found {
		return leagues.LeagueData{}, found, err
	}
	return data, true, nil
}

// SaveLeague replaces one league's data.
func (s *LeagueStore) SaveLeague(ctx context.Context, id string, data leagues.LeagueData) error {
	return s.save(ctx, LeagueKey(id), data)
}

// DeleteLeague removes one league's data. Missing data is not an error.
func (s *LeagueStore) DeleteLeague(ctx context.Context, id string) error {
	if err := s.blobs.Delete(ctx, LeagueKey(id)); err != nil {
		return fmt.Errorf("delete %s: %w", LeagueKey(id), err)
	}
	return nil
}

// Ping checks the backend is reachable.
func (s *LeagueStore) Ping(ctx context.Context) error {
	return s.blobs.Ping(ctx)
}

// Close releases backend resources.
func (s *LeagueStore) Close() error {
	return s.blobs.Close()
}

func (s *LeagueStore) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.blobs.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *LeagueStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.blobs.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
