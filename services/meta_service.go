package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coin-reward-system/models"
)

// MetaService is the generic key-value checkpoint store.
type MetaService struct {
	DB *gorm.DB
}

func NewMetaService(db *gorm.DB) *MetaService {
	return &MetaService{DB: db}
}

// Get returns the stored value, or "" if the key has never been set.
func (s *MetaService) Get(key string) (string, error) {
	var row models.Meta
	if err := s.DB.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

// Set upserts the key in one statement.
func (s *MetaService) Set(key, value string) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Meta{Key: key, Value: value}).Error
}
