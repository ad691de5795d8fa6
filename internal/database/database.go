// Package database persists analysis output. Results are stored as the
// JSON the engines produced; the store never reads into the blobs.
package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"propwell/server/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.UnderwritingRecord{},
		&models.AnalysisRecord{},
	)
}

func (d *Database) SaveUnderwritingRecord(record *models.UnderwritingRecord) error {
	if err := d.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to save underwriting record: %w", err)
	}
	return nil
}

// GetRecentUnderwritingRecords returns the latest saved runs, newest
// first.
func (d *Database) GetRecentUnderwritingRecords(limit int) ([]models.UnderwritingRecord, error) {
	var records []models.UnderwritingRecord
	err := d.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list underwriting records: %w", err)
	}
	return records, nil
}

func (d *Database) SaveAnalysisRecord(record *models.AnalysisRecord) error {
	if err := d.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}
	return nil
}

func (d *Database) GetRecentAnalysisRecords(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := d.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	return records, nil
}

func (d *Database) GetAnalysisRecord(id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := d.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis record: %w", err)
	}
	return &record, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
