package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFSStoreRequiresDir(t *testing.T) {
	if _, err := NewFSStore(""); err == nil {
		t.Fatal("expected error for empty data dir")
	}
}

func TestFSStoreEscapesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	path := s.BlobPath(LeagueKey("../../etc/passwd"))
	if !strings.HasPrefix(path, filepath.Join(dir, blobDir)) {
		t.Fatalf("expected blob path inside data dir, got %s", path)
	}
	if strings.Contains(filepath.Base(path), "/") {
		t.Fatalf("expected escaped file name, got %s", path)
	}
}

func TestFSStoreWritesManifest(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	ctx := context.Background()

	_ = s.Put(ctx, LeaguesKey, []byte(`[]`))
	_ = s.Put(ctx, LeagueKey("premier"), []byte(`{}`))

	m, err := s.Manifest()
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(m.Keys) != 2 {
		t.Fatalf("expected 2 manifest keys, got %+v", m.Keys)
	}
	if _, ok := m.Keys[LeagueKey("premier")]; !ok {
		t.Fatalf("expected league key in manifest, got %+v", m.Keys)
	}

	_ = s.Delete(ctx, LeagueKey("premier"))
	m, _ = s.Manifest()
	if _, ok := m.Keys[LeagueKey("premier")]; ok {
		t.Fatalf("expected deleted key removed from manifest, got %+v", m.Keys)
	}

	if _, err := os.Stat(filepath.Join(dir, manifestFile+".tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp manifest to be renamed away, got %v", err)
	}
}

func TestFSStoreManifestMissingIsEmpty(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	m, err := s.Manifest()
	if err != nil {
		t.Fatalf("expected no error for missing manifest, got %v", err)
	}
	if len(m.Keys) != 0 || m.Version != 1 {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}

func TestFSStorePingFailsWhenDirRemoved(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	if err := os.RemoveAll(filepath.Join(dir, blobDir)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error after data dir removal")
	}
}
