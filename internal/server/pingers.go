package server

import (
	"context"
	"errors"
	"fmt"
)

// chunkCounter is satisfied by *engine.Engine.
type chunkCounter interface {
	TotalChunks() int
}

// IndexPinger reports the engine not ready when no language index holds a
// single chunk, which usually means the corpus directory is wrong.
type IndexPinger struct {
	// engine reports the chunk total.
	engine chunkCounter
}

// NewIndexPinger constructs an IndexPinger for e.
func NewIndexPinger(e chunkCounter) *IndexPinger {
	return &IndexPinger{engine: e}
}

// Name returns the dependency label used in readiness responses.
func (p *IndexPinger) Name() string { return "index" }

// Ping fails when every index is empty.
func (p *IndexPinger) Ping(_ context.Context) error {
	if p.engine.TotalChunks() == 0 {
		return errors.New("no chunks indexed for any language")
	}
	return nil
}

// dbPinger is satisfied by *store.SQLiteStore.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// StorePinger probes the reply log database.
type StorePinger struct {
	// db is the store to probe.
	db dbPinger
}

// NewStorePinger constructs a StorePinger for db.
func NewStorePinger(db dbPinger) *StorePinger {
	return &StorePinger{db: db}
}

// Name returns the dependency label used in readiness responses.
func (p *StorePinger) Name() string { return "reply_log" }

// Ping checks the database connection.
func (p *StorePinger) Ping(ctx context.Context) error {
	if err := p.db.Ping(ctx); err != nil {
		return fmt.Errorf("reply log unreachable: %w", err)
	}
	return nil
}
