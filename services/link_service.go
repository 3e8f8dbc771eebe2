package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coin-reward-system/models"
)

// LinkService issues the one daily reward link per (user, platform, day).
// URL shortening is delegated to the external Shortener collaborator.
type LinkService struct {
	DB           *gorm.DB
	Shortener    Shortener
	BaseClaimURL string

	slots *keyedMutex
}

func NewLinkService(db *gorm.DB, shortener Shortener, baseClaimURL string) *LinkService {
	return &LinkService{
		DB:           db,
		Shortener:    shortener,
		BaseClaimURL: baseClaimURL,
		slots:        newKeyedMutex(),
	}
}

// IssueDailyLink returns the existing link for (userID, platform, today)
// unchanged, or mints a new one: fresh opaque subid, shortened claim URL,
// and a DailyLink plus its companion generated Claim written in a single
// transaction. Concurrent calls for the same slot serialize, so exactly
// one pair ever exists per slot.
func (s *LinkService) IssueDailyLink(userID, platform string, now time.Time) (*models.DailyLink, error) {
	if userID == "" || !KnownPlatform(platform) {
		return nil, ErrUnknownPlatform
	}
	date := DateOf(now)

	unlock := s.slots.Lock(userID + "|" + platform + "|" + date)
	defer unlock()

	var existing models.DailyLink
	err := s.DB.First(&existing, "user_id = ? AND date = ? AND platform = ?",
		userID, date, platform).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subid := uuid.NewString()
	longURL := fmt.Sprintf("%s?platform=%s&subid=%s&uid=%s",
		s.BaseClaimURL,
		url.QueryEscape(platform),
		url.QueryEscape(subid),
		url.QueryEscape(userID),
	)
	shortURL, err := s.Shortener.Shorten(platform, longURL)
	if err != nil {
		return nil, err
	}

	entry := models.DailyLink{
		ID:       uuid.NewString(),
		UserID:   userID,
		Date:     date,
		Platform: platform,
		Link:     shortURL,
		Subid:    subid,
	}
	claim := models.Claim{
		ID:       uuid.NewString(),
		UserID:   userID,
		Date:     date,
		Platform: platform,
		Subid:    subid,
		Status:   models.ClaimStatusGenerated,
	}

	// Link and claim must land together; a link without its claim (or the
	// reverse) breaks award validation later.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Create(&claim).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
