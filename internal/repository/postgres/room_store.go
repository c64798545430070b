package postgres

import (
	"context"
	"encoding/json"
	"time"

	"euchre-server/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomSnapshot is the single-table persisted form of a domain.Room: the
// room name as primary key and the full object as a JSON blob, matching
// spec §6's "one record mapping room name -> full Room object" and the
// teacher's use of datatypes.JSON for DraftState.BlueBans-shaped blobs.
type RoomSnapshot struct {
	Name      string         `gorm:"primaryKey"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

// RoomStore is the gorm-backed implementation of repository.RoomStore,
// grounded on the teacher's internal/repository/postgres/room_repo.go
// CRUD shape, collapsed to a single blob column per room.
type RoomStore struct {
	db *gorm.DB
}

func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Save(ctx context.Context, room *domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	snapshot := RoomSnapshot{Name: room.Name, Data: datatypes.JSON(data), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Save(&snapshot).Error
}

func (s *RoomStore) Load(ctx context.Context, name string) (*domain.Room, error) {
	var snapshot RoomSnapshot
	err := s.db.WithContext(ctx).First(&snapshot, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	var room domain.Room
	if err := json.Unmarshal(snapshot.Data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomStore) Delete(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Delete(&RoomSnapshot{}, "name = ?", name).Error
}

func (s *RoomStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&RoomSnapshot{}).Pluck("name", &names).Error
	return names, err
}

// ReapExpired decodes every stored snapshot's CreatedAt (the same field
// domain.Room.Expired checks) rather than filtering on the row's own
// UpdatedAt column, so a room that hasn't mutated recently but was
// created within ttl is not reaped early, keeping this backend's
// expiry rule identical to memory.RoomStore's.
func (s *RoomStore) ReapExpired(ctx context.Context, ttl time.Duration) ([]string, error) {
	var snapshots []RoomSnapshot
	if err := s.db.WithContext(ctx).Find(&snapshots).Error; err != nil {
		return nil, err
	}

	var names []string
	for _, snapshot := range snapshots {
		var room domain.Room
		if err := json.Unmarshal(snapshot.Data, &room); err != nil {
			continue
		}
		if room.Expired(ttl) {
			names = append(names, snapshot.Name)
		}
	}
	if len(names) > 0 {
		if err := s.db.WithContext(ctx).Delete(&RoomSnapshot{}, "name IN ?", names).Error; err != nil {
			return nil, err
		}
	}
	return names, nil
}
