package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coin-reward-system/models"
)

// newTestDB opens a private in-memory database per test. The named
// shared-cache DSN keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Claim{},
		&models.DailyLink{},
		&models.Meta{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// fakeShortener records calls and hands back deterministic short links.
type fakeShortener struct {
	calls int
	fail  error
}

func (f *fakeShortener) Shorten(platform, longURL string) (string, error) {
	f.calls++
	if f.fail != nil {
		return "", f.fail
	}
	return fmt.Sprintf("https://short.example/%s/%d", platform, f.calls), nil
}
