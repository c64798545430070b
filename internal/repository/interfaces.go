package repository

import (
	"context"
	"time"

	"euchre-server/internal/domain"
)

// RoomStore is the single persistence seam the rest of the module
// depends on: one durable map of room name -> full Room object, per
// spec §5's "single storage-layer map keyed by room name, atomically
// overwritten per commit." Grounded on the interface/backend split in
// New-Voyager-gameserver's server/game/persist.go (PersistHandState),
// narrowed to this domain's single-table shape.
type RoomStore interface {
	// Save atomically overwrites the stored snapshot for room.Name.
	Save(ctx context.Context, room *domain.Room) error
	// Load returns the stored room, or (nil, nil) if none exists.
	Load(ctx context.Context, name string) (*domain.Room, error)
	// Delete removes the stored snapshot for name, if any.
	Delete(ctx context.Context, name string) error
	// List returns every stored room name, for cold-start restore.
	List(ctx context.Context) ([]string, error)
	// ReapExpired deletes every stored room older than ttl and returns
	// the names removed.
	ReapExpired(ctx context.Context, ttl time.Duration) ([]string, error)
}
