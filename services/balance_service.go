package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coin-reward-system/models"
)

// BalanceService owns the per-user two-tier coin ledger.
// Every mutation upserts the user row first, so callers never have to
// create users explicitly.
type BalanceService struct {
	DB *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{DB: db}
}

// ensureUser inserts a zero-balance row if the user is unknown.
func (s *BalanceService) ensureUser(tx *gorm.DB, userID string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.User{UserID: userID}).Error
}

// GetUser fetches the ledger row, creating it with zero balances if absent.
func (s *BalanceService) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUser(tx, userID); err != nil {
			return err
		}
		return tx.First(&user, "user_id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetNormalCoin sets the normal balance to an absolute value. Negative
// inputs are clamped to zero; balances are never negative.
func (s *BalanceService) SetNormalCoin(userID string, amount int64) error {
	return s.setCoin(userID, "normal_coin", amount)
}

// SetVipCoin sets the vip balance to an absolute value, clamped at zero.
func (s *BalanceService) SetVipCoin(userID string, amount int64) error {
	return s.setCoin(userID, "vip_coin", amount)
}

func (s *BalanceService) setCoin(userID, column string, amount int64) error {
	if amount < 0 {
		amount = 0
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUser(tx, userID); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update(column, amount).Error
	})
}

// AddNormalCoin applies a relative delta to the normal balance. If the
// delta would take the balance below zero it is clamped to zero.
func (s *BalanceService) AddNormalCoin(userID string, delta int64) error {
	return s.addCoin(userID, "normal_coin", delta)
}

// AddVipCoin applies a relative delta to the vip balance, clamped at zero.
func (s *BalanceService) AddVipCoin(userID string, delta int64) error {
	return s.addCoin(userID, "vip_coin", delta)
}

func (s *BalanceService) addCoin(userID, column string, delta int64) error {
	// The clamp runs inside a single UPDATE expression so concurrent
	// deltas (and the weekly reset's bulk zero) never clobber each
	// other through a stale read. column is one of the two fixed
	// balance columns, never caller input.
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUser(tx, userID); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update(column, gorm.Expr(
				"CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END",
				delta, delta)).Error
	})
}

// ResetAllNormalCoins zeroes every user's normal balance in one bulk
// write. Vip balances are untouched. Used by the weekly reset.
func (s *BalanceService) ResetAllNormalCoins() (int64, error) {
	result := s.DB.Model(&models.User{}).Where("normal_coin <> 0").
		Update("normal_coin", 0)
	return result.RowsAffected, result.Error
}

// SumAwardedBetween totals coins awarded to a user over an inclusive
// date range. Powers the weekly/monthly earning summaries.
func (s *BalanceService) SumAwardedBetween(userID, fromDate, toDate string) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Claim{}).
		Where("user_id = ? AND status = ? AND date BETWEEN ? AND ?",
			userID, models.ClaimStatusAwarded, fromDate, toDate).
		Select("COALESCE(SUM(coins_awarded), 0)").
		Scan(&total).Error
	return total, err
}
