package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem captures a frozen snapshot of each cart line at order time. The
// name and unit price are copied, not referenced, so later menu edits or
// deletions never alter historical orders.
type OrderItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	MenuID           *uuid.UUID      `gorm:"column:menu_id;type:uuid"`
	MenuNameSnapshot string          `gorm:"column:menu_name_snapshot;not null"`
	UnitPrice        decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity         int             `gorm:"column:quantity;not null"`
	Subtotal         decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
