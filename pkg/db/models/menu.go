package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/enums"
)

// Menu represents a storefront cookie listing.
type Menu struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Slug         string             `gorm:"column:slug;not null;uniqueIndex"`
	Name         string             `gorm:"column:name;not null"`
	Description  string             `gorm:"column:description"`
	Price        decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	Category     enums.MenuCategory `gorm:"column:category;type:text;not null"`
	Status       enums.MenuStatus   `gorm:"column:status;type:text;not null;default:'available'"`
	IsBestSeller bool               `gorm:"column:is_best_seller;not null;default:false"`
	ImageURL     *string            `gorm:"column:image_url"`
	Tags         pq.StringArray     `gorm:"column:tags;type:text[]"`
	Rating       float64            `gorm:"column:rating;not null;default:5"`
	SortOrder    int                `gorm:"column:sort_order;not null;default:0"`
	Gallery      []GalleryItem      `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Menu) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
