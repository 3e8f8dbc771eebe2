package models

import "time"

// ClaimStatus tracks whether a reward opportunity has been paid out
type ClaimStatus string

const (
	ClaimStatusGenerated ClaimStatus = "generated"
	ClaimStatusAwarded   ClaimStatus = "awarded"
)

// Claim = one reward opportunity tied to a unique subid token.
// Created as "generated" when a daily link is issued; flips to "awarded"
// exactly once when a valid claim request lands. Terminal after that:
// re-processing an awarded claim is a no-op, not an error.
type Claim struct {
	ID           string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string      `gorm:"uniqueIndex:idx_claim_slot,priority:1;not null" json:"user_id"`
	Date         string      `gorm:"uniqueIndex:idx_claim_slot,priority:2;not null" json:"date"` // "YYYY-MM-DD"
	Platform     string      `gorm:"uniqueIndex:idx_claim_slot,priority:3;not null" json:"platform"`
	Subid        string      `gorm:"uniqueIndex:idx_claim_slot,priority:4;uniqueIndex:idx_claim_subid;not null" json:"subid"`
	Status       ClaimStatus `gorm:"not null;default:'generated'" json:"status"`
	CoinsAwarded int64       `gorm:"not null;default:0" json:"coins_awarded"`
	IP           *string     `gorm:"index" json:"ip,omitempty"` // set at award time, used for per-IP dedup
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
}
