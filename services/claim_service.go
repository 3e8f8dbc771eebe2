package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coin-reward-system/models"
)

// AwardOutcome distinguishes a fresh credit from an idempotent replay.
type AwardOutcome string

const (
	AwardCredited       AwardOutcome = "credited"
	AwardAlreadyAwarded AwardOutcome = "already_awarded"
)

// AwardResult is the successful end of the award pipeline. Failures are
// returned as the sentinel errors in errors.go instead.
type AwardResult struct {
	Outcome AwardOutcome `json:"outcome"`
	Coins   CoinQuote    `json:"coins"`
}

// ClaimService validates and atomically awards claims. The whole
// validate-and-mutate sequence runs under one in-process critical
// section: it serializes the subid axis and, implicitly, the
// (user, platform, day) and (ip, platform, day) axes it reads. The path
// is short and synchronous, so a single mutex is enough.
type ClaimService struct {
	DB *gorm.DB

	mu sync.Mutex
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{DB: db}
}

// Award runs the claim validation pipeline in order, short-circuiting on
// the first failure, and credits the user's normal balance on success.
// Re-processing an already-awarded claim returns AwardAlreadyAwarded
// with no mutation.
func (s *ClaimService) Award(platform, subid, uid, requestIP string, now time.Time) (*AwardResult, error) {
	if platform == "" || subid == "" || uid == "" {
		return nil, ErrInvalidRequest
	}
	date := DateOf(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A link issued on a prior day has no DailyLink row under today's
	// date, which is how stale links are rejected without an explicit
	// expiry timestamp.
	var link models.DailyLink
	if err := s.DB.First(&link, "user_id = ? AND date = ? AND platform = ?",
		uid, date, platform).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredLink
		}
		return nil, err
	}
	var claim models.Claim
	if err := s.DB.First(&claim, "subid = ?", subid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredLink
		}
		return nil, err
	}
	if claim.UserID != uid || claim.Platform != platform || claim.Date != date {
		return nil, ErrInvalidOrExpiredLink
	}

	// One successful award per IP per platform per day, regardless of
	// which user owns the link. The claim
	// being processed is excluded so replays fall through to the
	// idempotency check below.
	var ipCount int64
	if err := s.DB.Model(&models.Claim{}).
		Where("ip = ? AND date = ? AND platform = ? AND status = ? AND subid <> ?",
			requestIP, date, platform, models.ClaimStatusAwarded, subid).
		Count(&ipCount).Error; err != nil {
		return nil, err
	}
	if ipCount > 0 {
		return nil, ErrIPAlreadyClaimed
	}

	awarded, err := s.countAwarded(uid, date, platform, subid)
	if err != nil {
		return nil, err
	}
	if awarded >= int64(PlatformDailyQuota[platform]) {
		return nil, ErrQuotaExceeded
	}

	if claim.Status == models.ClaimStatusAwarded {
		return &AwardResult{
			Outcome: AwardAlreadyAwarded,
			Coins:   CoinQuote{Total: claim.CoinsAwarded},
		}, nil
	}

	// Priced at award time, not at issuance time.
	quote := ComputeCoins(platform, now)

	// Credit and status flip commit together or not at all: a credit
	// without the flip double-pays on retry, a flip without the credit
	// loses the reward.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.User{UserID: uid}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("user_id = ?", uid).
			Update("normal_coin", gorm.Expr("normal_coin + ?", quote.Total)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Claim{}).Where("id = ?", claim.ID).
			Updates(map[string]interface{}{
				"status":        models.ClaimStatusAwarded,
				"coins_awarded": quote.Total,
				"ip":            requestIP,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &AwardResult{Outcome: AwardCredited, Coins: quote}, nil
}

func (s *ClaimService) countAwarded(uid, date, platform, excludeSubid string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Claim{}).
		Where("user_id = ? AND date = ? AND platform = ? AND status = ? AND subid <> ?",
			uid, date, platform, models.ClaimStatusAwarded, excludeSubid).
		Count(&count).Error
	return count, err
}

// RemainingToday reports how many awards each platform still allows the
// user today. Shown alongside issued links.
func (s *ClaimService) RemainingToday(userID string, now time.Time) (map[string]int, error) {
	date := DateOf(now)
	remaining := make(map[string]int, len(PlatformDailyQuota))
	for platform, quota := range PlatformDailyQuota {
		var count int64
		if err := s.DB.Model(&models.Claim{}).
			Where("user_id = ? AND date = ? AND platform = ? AND status = ?",
				userID, date, platform, models.ClaimStatusAwarded).
			Count(&count).Error; err != nil {
			return nil, err
		}
		left := quota - int(count)
		if left < 0 {
			left = 0
		}
		remaining[platform] = left
	}
	return remaining, nil
}

// ClaimFilter narrows the admin claim-log listing.
type ClaimFilter struct {
	UserID   string
	Platform string
	Status   string
	FromDate string
	ToDate   string
}

// ListClaims returns the newest claims matching the filter, capped at 500.
func (s *ClaimService) ListClaims(f ClaimFilter) ([]models.Claim, error) {
	query := s.DB.Model(&models.Claim{})
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Platform != "" {
		query = query.Where("platform = ?", f.Platform)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.FromDate != "" {
		query = query.Where("date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		query = query.Where("date <= ?", f.ToDate)
	}

	var claims []models.Claim
	err := query.Order("created_at DESC").Limit(500).Find(&claims).Error
	return claims, err
}
