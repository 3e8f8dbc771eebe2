package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// MetaKeyLastWeeklyReset holds the date the weekly reset last ran.
const MetaKeyLastWeeklyReset = "last_weekly_reset"

// ResetWeekday is the weekly boundary: normal coins reset on Monday.
const ResetWeekday = time.Weekday(time.Monday)

// ResetService zeroes every normal balance once per week. The checkpoint
// in Meta makes it safe to evaluate far more often than it fires, and
// safe across restarts.
type ResetService struct {
	Balances *BalanceService
	Meta     *MetaService
	Clock    clockwork.Clock
}

func NewResetService(balances *BalanceService, meta *MetaService, clock clockwork.Clock) *ResetService {
	return &ResetService{Balances: balances, Meta: meta, Clock: clock}
}

// RunIfDue performs the reset only when today is the boundary weekday
// and the checkpoint does not already record today. Vip balances are
// never touched.
func (s *ResetService) RunIfDue() error {
	now := s.Clock.Now()
	if now.Weekday() != ResetWeekday {
		return nil
	}
	today := DateOf(now)

	last, err := s.Meta.Get(MetaKeyLastWeeklyReset)
	if err != nil {
		return err
	}
	if last == today {
		return nil
	}

	rows, err := s.Balances.ResetAllNormalCoins()
	if err != nil {
		return err
	}
	if err := s.Meta.Set(MetaKeyLastWeeklyReset, today); err != nil {
		return err
	}

	log.Printf("🔄 Weekly reset: zeroed normal coins for %d user(s) (%s)", rows, today)
	return nil
}

// StartScheduler polls RunIfDue every minute.
func (s *ResetService) StartScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.RunIfDue(); err != nil {
				log.Printf("[ResetScheduler] error: %v", err)
			}
		}),
	)
}
