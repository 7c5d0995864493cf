package models

import "time"

// Configuration is a key/value business setting (fee thresholds, daily
// limits, fraud parameters). Values are strings; typed parsing happens in
// the config store, which also caches reads and invalidates on write.
type Configuration struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"not null" json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
