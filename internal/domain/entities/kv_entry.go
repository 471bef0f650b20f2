package entities

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is a persisted key-value pair of tracker state
type KVEntry struct {
	Key       string         `gorm:"type:varchar(64);primary_key" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}
