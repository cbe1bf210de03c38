package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/enums"
)

// GalleryItem is a row in the shared gallery table. Rows with type=gallery and
// a menu id are secondary product images; rows with type=review carry customer
// review fields instead.
type GalleryItem struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	MenuID       *uuid.UUID        `gorm:"column:menu_id;type:uuid;index"`
	Type         enums.GalleryType `gorm:"column:type;type:text;not null;default:'gallery'"`
	ImageURL     string            `gorm:"column:image_url;not null"`
	Title        *string           `gorm:"column:title"`
	Caption      *string           `gorm:"column:caption"`
	CustomerName *string           `gorm:"column:customer_name"`
	Rating       *int              `gorm:"column:rating"`
	IsFeatured   bool              `gorm:"column:is_featured;not null;default:false"`
	SortOrder    int               `gorm:"column:sort_order;not null;default:0"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (g *GalleryItem) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (GalleryItem) TableName() string {
	return "gallery"
}
