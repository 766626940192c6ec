package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lol-team-randomizer/backend/internal/engine"
	"github.com/lol-team-randomizer/backend/internal/room"
)

// roomRecord is the rooms table row. Roster fields are JSON columns:
// mutation is always whole-field overwrite, so there is nothing to gain
// from normalizing them out.
type roomRecord struct {
	Code             string    `gorm:"primaryKey;size:6"`
	CreatedAt        time.Time `gorm:"index"`
	Owner            string
	Players          []byte `gorm:"type:jsonb"`
	GeneratedTeam    []byte `gorm:"type:jsonb"`
	IncludeChampions bool
	MaxPlayers       int
	ConnectedPlayers []byte `gorm:"type:jsonb"`
}

func (roomRecord) TableName() string { return "rooms" }

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&roomRecord{}); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Create(ctx context.Context, r room.Room) error {
	rec, err := encodeRoom(r)
	if err != nil {
		return err
	}
	err = p.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return room.ErrAlreadyExists
	}
	return err
}

func (p *Postgres) Get(ctx context.Context, code string) (room.Room, error) {
	var rec roomRecord
	err := p.db.WithContext(ctx).First(&rec, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room.Room{}, room.ErrNotFound
	}
	if err != nil {
		return room.Room{}, err
	}
	return decodeRoom(rec)
}

// Update holds a row lock across the read and the write, giving the
// mutate closure the atomicity room.Store demands.
func (p *Postgres) Update(ctx context.Context, code string, mutate func(room.Room) (room.Room, error)) (room.Room, error) {
	var updated room.Room
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec roomRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "code = ?", code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room.ErrNotFound
		}
		if err != nil {
			return err
		}

		current, err := decodeRoom(rec)
		if err != nil {
			return err
		}
		updated, err = mutate(current)
		if err != nil {
			return err
		}
		updated.ID = code

		next, err := encodeRoom(updated)
		if err != nil {
			return err
		}
		return tx.Save(&next).Error
	})
	if err != nil {
		return room.Room{}, err
	}
	return updated, nil
}

func (p *Postgres) DeleteExpired(ctx context.Context, olderThan time.Time) (int, error) {
	res := p.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Delete(&roomRecord{})
	return int(res.RowsAffected), res.Error
}

func encodeRoom(r room.Room) (roomRecord, error) {
	players, err := json.Marshal(r.Players)
	if err != nil {
		return roomRecord{}, err
	}
	connected, err := json.Marshal(r.ConnectedPlayers)
	if err != nil {
		return roomRecord{}, err
	}
	rec := roomRecord{
		Code:             r.ID,
		CreatedAt:        r.CreatedAt,
		Owner:            r.Owner,
		Players:          players,
		IncludeChampions: r.IncludeChampions,
		MaxPlayers:       r.MaxPlayers,
		ConnectedPlayers: connected,
	}
	if r.GeneratedTeam != nil {
		team, err := json.Marshal(r.GeneratedTeam)
		if err != nil {
			return roomRecord{}, err
		}
		rec.GeneratedTeam = team
	}
	return rec, nil
}

func decodeRoom(rec roomRecord) (room.Room, error) {
	r := room.Room{
		ID:               rec.Code,
		CreatedAt:        rec.CreatedAt,
		Owner:            rec.Owner,
		IncludeChampions: rec.IncludeChampions,
		MaxPlayers:       rec.MaxPlayers,
	}
	if err := json.Unmarshal(rec.Players, &r.Players); err != nil {
		return room.Room{}, err
	}
	if err := json.Unmarshal(rec.ConnectedPlayers, &r.ConnectedPlayers); err != nil {
		return room.Room{}, err
	}
	if len(rec.GeneratedTeam) > 0 {
		var team []engine.Player
		if err := json.Unmarshal(rec.GeneratedTeam, &team); err != nil {
			return room.Room{}, err
		}
		r.GeneratedTeam = team
	}
	return r, nil
}
