package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-formspec/pkg/definition"
)

// Store reads and writes form definitions.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("store: dsn is required")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}
	if err := db.AutoMigrate(&formRecord{}, &fieldRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save validates form and stores it, replacing any form with the same id.
func (s *Store) Save(ctx context.Context, form definition.Form) error {
	form.ID = strings.TrimSpace(form.ID)
	if err := form.Validate(); err != nil {
		return err
	}
	record := toRecord(form)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing formRecord
		err := tx.Where("form_id = ?", form.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("form_record_id = ?", existing.ID).Delete(&fieldRecord{}).Error; err != nil {
				return fmt.Errorf("store: replace fields of %q: %w", form.ID, err)
			}
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("store: lookup %q: %w", form.ID, err)
		}
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("store: save %q: %w", form.ID, err)
		}
		return nil
	})
}

// SaveAll stores every form of a definition store.
func (s *Store) SaveAll(ctx context.Context, forms *definition.Store) error {
	for _, id := range forms.IDs() {
		form, _ := forms.Form(id)
		if err := s.Save(ctx, form); err != nil {
			return err
		}
	}
	return nil
}

// Definition loads the form stored under id. Unknown ids return ErrNotFound.
func (s *Store) Definition(ctx context.Context, id string) (definition.Form, error) {
	id = strings.TrimSpace(id)
	var record formRecord
	err := s.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("form_id = ?", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return definition.Form{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return definition.Form{}, fmt.Errorf("store: load %q: %w", id, err)
	}
	return record.definition(), nil
}

// List returns stored form ids in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&formRecord{}).Order("form_id ASC").Pluck("form_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return ids, nil
}

// Delete removes the form stored under id and its fields.
func (s *Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record formRecord
		err := tx.Where("form_id = ?", id).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("store: lookup %q: %w", id, err)
		}
		if err := tx.Where("form_record_id = ?", record.ID).Delete(&fieldRecord{}).Error; err != nil {
			return fmt.Errorf("store: delete fields of %q: %w", id, err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return fmt.Errorf("store: delete %q: %w", id, err)
		}
		return nil
	})
}
