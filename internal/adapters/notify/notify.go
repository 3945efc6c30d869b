// Package notify holds the delivery channels behind the reminder scheduler.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/kanso-habits/internal/core/reminders"
)

var (
	_ reminders.Notifier = (*LogNotifier)(nil)
	_ reminders.Notifier = (*RedisNotifier)(nil)
	_ reminders.Notifier = Multi(nil)
)

// LogNotifier writes reminders to the structured log. It is always available.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(ctx context.Context, msg reminders.Notification) error {
	n.logger.Info().
		Str("user_id", msg.UserID).
		Str("habit_id", msg.HabitID).
		Str("title", msg.Title).
		Msg(msg.Body)
	return nil
}

func (n *LogNotifier) Supported() bool { return true }

// RedisNotifier publishes reminders as JSON on notifications:<userID> so any
// connected client can pick them up.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func Channel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (n *RedisNotifier) Notify(ctx context.Context, msg reminders.Notification) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, Channel(msg.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Supported() bool { return n.client != nil }

// Multi fans a notification out to every supported notifier.
type Multi []reminders.Notifier

func (m Multi) Notify(ctx context.Context, msg reminders.Notification) error {
	var errs []error
	for _, n := range m {
		if !n.Supported() {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Supported() bool {
	for _, n := range m {
		if n.Supported() {
			return true
		}
	}
	return false
}
