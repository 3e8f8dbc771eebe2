package models

import "time"

// DailyLink is the single outbound reward link issued to a user for a
// platform on a given calendar day. A new day supersedes it implicitly;
// there is no explicit expiry to clean up.
type DailyLink struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_daily_link_slot,priority:1;not null" json:"user_id"`
	Date      string    `gorm:"uniqueIndex:idx_daily_link_slot,priority:2;not null" json:"date"` // "YYYY-MM-DD"
	Platform  string    `gorm:"uniqueIndex:idx_daily_link_slot,priority:3;not null" json:"platform"`
	Link      string    `gorm:"not null" json:"link"` // public short URL
	Subid     string    `gorm:"index;not null" json:"subid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
