package models

// Meta is a small key-value checkpoint store. The weekly reset scheduler
// keeps its last-run date here so it stays idempotent across restarts
// and coarse polling.
type Meta struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}
