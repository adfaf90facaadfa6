package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tb "gopkg.in/telebot.v3"
)

// Sender is the outbound notification wire. Check verifies a bot token can
// reach the messaging service; Send delivers one message to one chat.
// Both must respect ctx cancellation.
type Sender interface {
	Check(ctx context.Context, token string) error
	Send(ctx context.Context, token, chatID, message string) error
}

// SimulatedSender stands in for the real messaging service: every operation
// succeeds after a fixed delay, or earlier if ctx is cancelled. It is the
// default sender so the console works without any Telegram credentials.
type SimulatedSender struct {
	Delay time.Duration
}

// NewSimulatedSender returns a SimulatedSender with the given per-operation delay.
func NewSimulatedSender(delay time.Duration) *SimulatedSender {
	return &SimulatedSender{Delay: delay}
}

func (s *SimulatedSender) wait(ctx context.Context) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *SimulatedSender) Check(ctx context.Context, _ string) error {
	return s.wait(ctx)
}

func (s *SimulatedSender) Send(ctx context.Context, _, _, _ string) error {
	return s.wait(ctx)
}

// TelegramSender delivers through the real Telegram Bot API.
// It builds a short-lived offline-polling bot per operation: this console
// only pushes messages, it never consumes updates, so there is no long-lived
// bot instance to manage.
type TelegramSender struct{}

// NewTelegramSender returns a Sender backed by the Telegram Bot API.
func NewTelegramSender() *TelegramSender {
	return &TelegramSender{}
}

// newBot constructs a bot client for token. tb.NewBot calls getMe, so a
// successful construction doubles as the token connectivity check.
func (s *TelegramSender) newBot(ctx context.Context, token string) (*tb.Bot, error) {
	deadline := 10 * time.Second
	if d, ok := ctx.Deadline(); ok {
		deadline = time.Until(d)
	}
	bot, err := tb.NewBot(tb.Settings{
		Token:  token,
		Client: &http.Client{Timeout: deadline},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return bot, nil
}

func (s *TelegramSender) Check(ctx context.Context, token string) error {
	_, err := s.newBot(ctx, token)
	return err
}

func (s *TelegramSender) Send(ctx context.Context, token, chatID, message string) error {
	bot, err := s.newBot(ctx, token)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: bad chat id %q: %w", chatID, err)
	}
	if _, err := bot.Send(&tb.User{ID: id}, message); err != nil {
		return fmt.Errorf("telegram: send to %s: %w", chatID, err)
	}
	return nil
}
