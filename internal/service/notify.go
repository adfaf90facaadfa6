package service

import (
	"context"
	"fmt"
	"time"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// notifyTimeout bounds every outbound notification operation. The simulated
// sender finishes well inside it; a real Telegram sender gets cut off here
// instead of hanging a request forever.
const notifyTimeout = 10 * time.Second

// NotifyStore defines the store operations the notification service depends on.
type NotifyStore interface {
	Users() []domain.User
	NotificationConfig() domain.NotificationConfig
	SetNotificationConfig(ctx context.Context, cfg domain.NotificationConfig) error
}

// TestResult is the outcome of a bot-token connectivity check.
type TestResult struct {
	OK      bool          `json:"ok"`
	Elapsed time.Duration `json:"-"`
}

// BroadcastResult is the outcome of a mass message send.
type BroadcastResult struct {
	// Delivered counts recipients the message reached.
	Delivered int `json:"delivered"`
	// Skipped counts configured recipients without a linked chat id.
	Skipped int `json:"skipped"`
}

// NotifyService owns the broadcast configuration and the outbound message
// path. The wire itself is behind Sender, so the service logic is identical
// whether sends are simulated or real.
type NotifyService struct {
	store  NotifyStore
	sender Sender
}

// NewNotifyService constructs a NotifyService using the provided sender.
func NewNotifyService(store NotifyStore, sender Sender) *NotifyService {
	return &NotifyService{store: store, sender: sender}
}

// Config returns the current broadcast configuration.
func (s *NotifyService) Config(ctx context.Context) (domain.NotificationConfig, error) {
	_ = ctx
	return s.store.NotificationConfig(), nil
}

// SaveConfig overwrites the broadcast configuration wholesale.
// Recipient ids are not validated against the roster: dangling recipients
// are tolerated and simply never receive anything.
func (s *NotifyService) SaveConfig(ctx context.Context, cfg domain.NotificationConfig) error {
	if cfg.Recipients == nil {
		cfg.Recipients = []string{}
	}
	if err := s.store.SetNotificationConfig(ctx, cfg); err != nil {
		return fmt.Errorf("service.NotifyService.SaveConfig: %w", err)
	}
	return nil
}

// TestBot checks that the configured bot token can reach the messaging
// service. Fails with ErrValidation when no token is configured.
func (s *NotifyService) TestBot(ctx context.Context) (TestResult, error) {
	cfg := s.store.NotificationConfig()
	if cfg.BotToken == "" {
		return TestResult{}, fmt.Errorf("service.NotifyService.TestBot: %w: no bot token configured", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	start := time.Now()
	if err := s.sender.Check(ctx, cfg.BotToken); err != nil {
		return TestResult{}, fmt.Errorf("service.NotifyService.TestBot: %w", err)
	}
	return TestResult{OK: true, Elapsed: time.Since(start)}, nil
}

// Broadcast sends message to every configured recipient with a linked chat
// id. Recipients without one are counted as skipped, not failed. Fails with
// ErrValidation when the message is empty or nobody is configured.
func (s *NotifyService) Broadcast(ctx context.Context, message string) (BroadcastResult, error) {
	if message == "" {
		return BroadcastResult{}, fmt.Errorf("service.NotifyService.Broadcast: %w: message is empty", domain.ErrValidation)
	}

	cfg := s.store.NotificationConfig()
	if len(cfg.Recipients) == 0 {
		return BroadcastResult{}, fmt.Errorf("service.NotifyService.Broadcast: %w: no recipients configured", domain.ErrValidation)
	}

	chatID := make(map[string]string)
	for _, u := range s.store.Users() {
		if u.TelegramChatID != "" {
			chatID[u.ID] = u.TelegramChatID
		}
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	var result BroadcastResult
	for _, userID := range cfg.Recipients {
		id, ok := chatID[userID]
		if !ok {
			result.Skipped++
			continue
		}
		if err := s.sender.Send(ctx, cfg.BotToken, id, message); err != nil {
			return result, fmt.Errorf("service.NotifyService.Broadcast: recipient %s: %w", userID, err)
		}
		result.Delivered++
	}
	return result, nil
}
