package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shindan/internal/models/db_models"
)

// StorageRepositoryInterface is the key/value contract the persistence layer
// runs on. Every operation may fail (capacity, availability, corrupt rows);
// callers treat success as best-effort, never as guaranteed.
type StorageRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

func NewStorageRepository(db *gorm.DB) StorageRepositoryInterface {
	return &StorageRepository{db: db}
}

// StorageRepository is the postgres backend, one row per key.
type StorageRepository struct {
	db *gorm.DB
}

func (s *StorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var record db_models.KvRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (s *StorageRepository) Set(ctx context.Context, key string, value string) error {
	record := db_models.KvRecord{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *StorageRepository) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&db_models.KvRecord{}).Error
	if err != nil {
		return fmt.Errorf("kv remove %q: %w", key, err)
	}
	return nil
}

func (s *StorageRepository) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("1 = 1").Delete(&db_models.KvRecord{}).Error
	if err != nil {
		return fmt.Errorf("kv clear: %w", err)
	}
	return nil
}
