// Package scheduler runs the service's recurring jobs on cron: the
// once-a-minute expiry prune and the periodic time-of-day reminder sweep.
package scheduler

import (
	"time"

	"github.com/agriswayam/go-notification-service/internal/generator"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/store"
	"github.com/robfig/cron/v3"
)

const (
	pruneSchedule     = "@every 1m"
	timeBasedSchedule = "@every 30m"
)

// NotificationScheduler owns the cron timers for the notification store.
type NotificationScheduler struct {
	cron  *cron.Cron
	store *store.Store
	log   *logger.Logger
}

// NewNotificationScheduler creates a scheduler driving the given store.
func NewNotificationScheduler(store *store.Store, log *logger.Logger) *NotificationScheduler {
	return &NotificationScheduler{
		cron:  cron.New(),
		store: store,
		log:   log,
	}
}

// Start registers the recurring jobs and starts the cron runner.
func (s *NotificationScheduler) Start() error {
	s.log.Info("Starting notification scheduler")

	if _, err := s.cron.AddFunc(pruneSchedule, s.pruneExpired); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(timeBasedSchedule, s.timeBasedSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Notification scheduler started")
	return nil
}

// Stop cancels the timers. Must be called on shutdown so no cron goroutine
// outlives the store.
func (s *NotificationScheduler) Stop() {
	s.log.Info("Stopping notification scheduler")
	s.cron.Stop()
}

// pruneExpired drops stored notifications whose expiry has passed. The
// visibility filter already rejects expired notifications at creation time;
// this sweep catches ones that expired after being stored.
func (s *NotificationScheduler) pruneExpired() {
	if removed := s.store.PruneExpired(); removed > 0 {
		s.log.Info("Expiry sweep complete", "removed", removed)
	}
}

// timeBasedSweep feeds the time-of-day reminders due right now to the store.
func (s *NotificationScheduler) timeBasedSweep() {
	for _, req := range generator.TimeBased(time.Now()) {
		s.store.Add(req)
	}
}
