package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"coin-reward-system/models"
)

var issueTime = time.Date(2025, 5, 14, 9, 0, 0, 0, time.UTC)

func TestIssueDailyLinkCreatesLinkAndClaimTogether(t *testing.T) {
	db := newTestDB(t)
	shortener := &fakeShortener{}
	s := NewLinkService(db, shortener, "http://localhost:3000/claim")

	entry, err := s.IssueDailyLink("u1", "yeumoney", issueTime)
	if err != nil {
		t.Fatalf("IssueDailyLink: %v", err)
	}
	if entry.Date != "2025-05-14" {
		t.Errorf("entry date = %s, want 2025-05-14", entry.Date)
	}
	if !strings.HasPrefix(entry.Link, "https://short.example/yeumoney/") {
		t.Errorf("entry link = %s, want shortened URL", entry.Link)
	}
	if entry.Subid == "" {
		t.Error("entry has empty subid")
	}

	var claim models.Claim
	if err := db.First(&claim, "subid = ?", entry.Subid).Error; err != nil {
		t.Fatalf("companion claim missing: %v", err)
	}
	if claim.Status != models.ClaimStatusGenerated {
		t.Errorf("claim status = %s, want generated", claim.Status)
	}
	if claim.UserID != "u1" || claim.Platform != "yeumoney" || claim.Date != "2025-05-14" {
		t.Errorf("claim slot = %s/%s/%s, want u1/yeumoney/2025-05-14", claim.UserID, claim.Platform, claim.Date)
	}
}

func TestIssueDailyLinkIdempotentSameDay(t *testing.T) {
	db := newTestDB(t)
	shortener := &fakeShortener{}
	s := NewLinkService(db, shortener, "http://localhost:3000/claim")

	first, err := s.IssueDailyLink("u1", "yeumoney", issueTime)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := s.IssueDailyLink("u1", "yeumoney", issueTime.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if second.Subid != first.Subid || second.Link != first.Link {
		t.Fatal("second issuance minted a new link for the same slot")
	}
	if shortener.calls != 1 {
		t.Fatalf("shortener called %d times, want 1", shortener.calls)
	}

	var claims int64
	if err := db.Model(&models.Claim{}).Count(&claims).Error; err != nil {
		t.Fatalf("count claims: %v", err)
	}
	if claims != 1 {
		t.Fatalf("found %d claims after replayed issuance, want 1", claims)
	}
}

func TestIssueDailyLinkNewDaySupersedes(t *testing.T) {
	db := newTestDB(t)
	s := NewLinkService(db, &fakeShortener{}, "http://localhost:3000/claim")

	today, err := s.IssueDailyLink("u1", "yeumoney", issueTime)
	if err != nil {
		t.Fatalf("issue today: %v", err)
	}
	tomorrow, err := s.IssueDailyLink("u1", "yeumoney", issueTime.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("issue tomorrow: %v", err)
	}

	if tomorrow.Subid == today.Subid {
		t.Fatal("next-day issuance reused the previous subid")
	}

	var links int64
	if err := db.Model(&models.DailyLink{}).Where("user_id = ?", "u1").Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 2 {
		t.Fatalf("found %d links across two days, want 2", links)
	}
}

func TestIssueDailyLinkDistinctSlots(t *testing.T) {
	db := newTestDB(t)
	s := NewLinkService(db, &fakeShortener{}, "http://localhost:3000/claim")

	a, _ := s.IssueDailyLink("u1", "yeumoney", issueTime)
	b, err := s.IssueDailyLink("u1", "link4m", issueTime)
	if err != nil {
		t.Fatalf("issue second platform: %v", err)
	}
	if a.Subid == b.Subid {
		t.Fatal("different platforms shared a subid")
	}
}

func TestIssueDailyLinkShortenerFailureCreatesNothing(t *testing.T) {
	db := newTestDB(t)
	s := NewLinkService(db, &fakeShortener{fail: ErrShortenerUnavailable}, "http://localhost:3000/claim")

	_, err := s.IssueDailyLink("u1", "yeumoney", issueTime)
	if !errors.Is(err, ErrShortenerUnavailable) {
		t.Fatalf("err = %v, want ErrShortenerUnavailable", err)
	}

	var links, claims int64
	_ = db.Model(&models.DailyLink{}).Count(&links).Error
	_ = db.Model(&models.Claim{}).Count(&claims).Error
	if links != 0 || claims != 0 {
		t.Fatalf("failed issuance left %d links and %d claims behind", links, claims)
	}
}

func TestIssueDailyLinkUnknownPlatform(t *testing.T) {
	s := NewLinkService(newTestDB(t), &fakeShortener{}, "http://localhost:3000/claim")

	if _, err := s.IssueDailyLink("u1", "nosuch", issueTime); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("err = %v, want ErrUnknownPlatform", err)
	}
	if _, err := s.IssueDailyLink("", "yeumoney", issueTime); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("err for empty user = %v, want ErrUnknownPlatform", err)
	}
}

func TestConcurrentIssuanceYieldsOnePair(t *testing.T) {
	db := newTestDB(t)
	shortener := &fakeShortener{}
	s := NewLinkService(db, shortener, "http://localhost:3000/claim")

	const workers = 8
	var wg sync.WaitGroup
	subids := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := s.IssueDailyLink("u1", "yeumoney", issueTime)
			if err != nil {
				t.Errorf("concurrent issue: %v", err)
				return
			}
			subids[i] = entry.Subid
		}(i)
	}
	wg.Wait()

	for _, subid := range subids {
		if subid != subids[0] {
			t.Fatal("concurrent issuance returned different subids")
		}
	}

	var links, claims int64
	_ = db.Model(&models.DailyLink{}).Count(&links).Error
	_ = db.Model(&models.Claim{}).Count(&claims).Error
	if links != 1 || claims != 1 {
		t.Fatalf("found %d links / %d claims after concurrent issuance, want 1/1", links, claims)
	}
}

func TestEnvShortener(t *testing.T) {
	t.Setenv("SHORTENER_YEUMONEY_API", "https://yeumoney.example/api?token=abc&url=")

	s := NewEnvShortener()
	short, err := s.Shorten("yeumoney", "http://localhost:3000/claim?platform=yeumoney&subid=x&uid=u1")
	if err != nil {
		t.Fatalf("Shorten: %v", err)
	}
	if !strings.HasPrefix(short, "https://yeumoney.example/api?token=abc&url=") {
		t.Fatalf("short url = %s, want configured prefix", short)
	}
	if strings.Contains(short, "subid=x") {
		t.Fatal("long URL not escaped into the shortener endpoint")
	}

	if _, err := s.Shorten("link4m", "http://example.com"); !errors.Is(err, ErrShortenerUnavailable) {
		t.Fatalf("unconfigured platform err = %v, want ErrShortenerUnavailable", err)
	}
}
