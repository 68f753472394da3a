// Package notify delivers one-way operational alerts to an admin chat.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram sends alert messages to a single admin chat. Delivery is
// best-effort: failures are logged and never propagated.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// NewTelegram returns nil (alerting disabled) when token or chat id is unset.
func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

func (t *Telegram) Notify(ctx context.Context, msg string) {
	if t == nil {
		return
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, msg)); err != nil {
		t.log.Warn("telegram alert failed", zap.Error(err))
	}
}
