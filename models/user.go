package models

import "time"

// User is the two-tier coin ledger row. Users are created implicitly the
// first time anything references them (upsert-on-read), so no operation
// ever fails for lack of a row.
type User struct {
	UserID     string    `gorm:"primaryKey" json:"user_id"`
	NormalCoin int64     `gorm:"not null;default:0" json:"normal_coin"` // reset weekly
	VipCoin    int64     `gorm:"not null;default:0" json:"vip_coin"`    // admin-granted, never reset
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
