package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is a single-row table of storefront configuration.
type SiteSettings struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SiteName     *string   `gorm:"column:site_name"`
	LineOA       *string   `gorm:"column:line_oa"`
	Announcement *string   `gorm:"column:announcement"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *SiteSettings) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
