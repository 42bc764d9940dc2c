package server

import (
	"context"

	"github.com/preston-bernstein/league-stats-service/internal/importer"
)

// Importer defines the background inbox behaviour needed by the server.
type Importer interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() importer.Status
}
