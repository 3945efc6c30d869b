// Package reminders arms one-shot habit reminders and keeps a short history
// of the notifications that were delivered.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

// DefaultMaxAge is how long delivered notifications stay in the history when
// the caller does not ask for another window.
const DefaultMaxAge = 5 * time.Minute

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	HabitID   string    `json:"habit_id"`
	HabitName string    `json:"habit_name"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tag       string    `json:"tag"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivers a notification to the user. Supported reports whether the
// channel is usable at all; an unsupported notifier is skipped with a warning.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	Supported() bool
}

type Scheduler struct {
	notifier Notifier
	jobs     chan Notification
	now      func() time.Time

	mu      sync.Mutex
	seq     uint64
	timers  map[string]map[uint64]*time.Timer
	history []Notification
}

func NewScheduler(notifier Notifier, queueSize int) *Scheduler {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &Scheduler{
		notifier: notifier,
		jobs:     make(chan Notification, queueSize),
		now:      time.Now,
		timers:   make(map[string]map[uint64]*time.Timer),
	}
}

// Start runs the delivery worker until ctx is cancelled. Pending timers are
// stopped on shutdown.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		log.Info().Msg("reminder worker started")
		for {
			select {
			case n := <-s.jobs:
				s.deliver(ctx, n)
			case <-ctx.Done():
				s.stopAll()
				log.Info().Msg("reminder worker shutting down")
				return
			}
		}
	}()
}

// ScheduleReminder arms a reminder minutesBefore ahead of scheduledTime.
// It returns false when that instant is not in the future.
func (s *Scheduler) ScheduleReminder(userID, habitName, habitID string, scheduledTime time.Time, minutesBefore int) bool {
	if minutesBefore < 0 {
		minutesBefore = 0
	}
	notifyAt := scheduledTime.Add(-time.Duration(minutesBefore) * time.Minute)
	wait := notifyAt.Sub(s.now())
	if wait <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := s.seq
	if s.timers[userID] == nil {
		s.timers[userID] = make(map[uint64]*time.Timer)
	}
	s.timers[userID][id] = time.AfterFunc(wait, func() {
		s.release(userID, id)
		s.enqueue(Notification{
			UserID:    userID,
			HabitID:   habitID,
			HabitName: habitName,
			Title:     fmt.Sprintf("Reminder: %s", habitName),
			Body:      fmt.Sprintf("Time to do your habit: %s", habitName),
			Tag:       habitID,
		})
	})

	metrics.RemindersArmedTotal.Inc()
	return true
}

func (s *Scheduler) release(userID string, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.timers[userID], id)
	if len(s.timers[userID]) == 0 {
		delete(s.timers, userID)
	}
}

func (s *Scheduler) enqueue(n Notification) {
	select {
	case s.jobs <- n:
	default:
		metrics.RemindersDeliveredTotal.WithLabelValues("dropped").Inc()
		log.Warn().Str("habit_id", n.HabitID).Msg("reminder queue full, dropping notification")
	}
}

func (s *Scheduler) deliver(ctx context.Context, n Notification) {
	if !s.notifier.Supported() {
		metrics.RemindersDeliveredTotal.WithLabelValues("unsupported").Inc()
		log.Warn().Str("habit_id", n.HabitID).Msg("notifications not supported, skipping reminder")
		return
	}

	n.ID = uuid.NewString()
	n.Timestamp = s.now()

	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("habit_id", n.HabitID).Msg("failed to deliver reminder")
		return
	}
	metrics.RemindersDeliveredTotal.WithLabelValues("sent").Inc()

	s.mu.Lock()
	s.history = append(s.history, n)
	s.mu.Unlock()
}

// ClearOldNotifications drops the user's history entries that are maxAge old
// or older. Other users' entries are left alone.
func (s *Scheduler) ClearOldNotifications(userID string, maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.history[:0]
	for _, n := range s.history {
		if n.UserID != userID || now.Sub(n.Timestamp) < maxAge {
			kept = append(kept, n)
		}
	}
	s.history = kept
}

// Notifications returns the delivered notifications of a user, oldest first.
func (s *Scheduler) Notifications(userID string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Notification{}
	for _, n := range s.history {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Scheduler) Pending(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers[userID])
}

// CancelUser stops every armed reminder of a user.
func (s *Scheduler) CancelUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers[userID] {
		t.Stop()
	}
	delete(s.timers, userID)
}

func (s *Scheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, timers := range s.timers {
		for _, t := range timers {
			t.Stop()
		}
		delete(s.timers, userID)
	}
}
