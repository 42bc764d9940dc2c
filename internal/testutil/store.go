package testutil

import (
	"testing"

	"github.com/preston-bernstein/league-stats-service/internal/store"
)

// NewFSLeagueStore returns a league store writing blobs under a temp dir, and the dir.
func NewFSLeagueStore(t *testing.T) (*store.LeagueStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := store.NewFSStore(dir)
	if err != nil {
		t.Fatalf("create fs store: %v", err)
	}
	return store.NewLeagueStore(fs), dir
}
