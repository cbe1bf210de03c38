package models

import "time"

// OrderCodeCounter holds the last allocated order-code sequence per calendar
// year. Incrementing it inside the checkout transaction serializes concurrent
// allocations on the row lock.
type OrderCodeCounter struct {
	Year      int       `gorm:"column:year;primaryKey;autoIncrement:false"`
	LastSeq   int64     `gorm:"column:last_seq;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderCodeCounter) TableName() string {
	return "order_code_counters"
}
