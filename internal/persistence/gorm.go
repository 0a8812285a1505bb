package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type entry struct {
	Key       string         `gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (entry) TableName() string { return "kv_entries" }

type gormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (Backend, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &gormBackend{db: db}, nil
}

func (g *gormBackend) Name() string { return "postgres" }

func (g *gormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	if err := g.db.WithContext(ctx).First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(e.Value), nil
}

func (g *gormBackend) Put(ctx context.Context, key string, value []byte) error {
	e := entry{Key: key, Value: datatypes.JSON(value)}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

func (g *gormBackend) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&entry{}, "key = ?", key).Error
}
