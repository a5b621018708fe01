package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers short operational messages.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil when the bot is not configured or cannot authenticate.
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	if cfg.Token == "" || cfg.ChatID == 0 {
		log.Println("⚠️  TELEGRAM_TOKEN / TELEGRAM_CHAT_ID not set, refresh notifications disabled")
		return nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Printf("❌ telegram bot init failed: %v (notifications disabled)", err)
		return nil
	}
	log.Printf("✅ Telegram notifier ready (@%s)", api.Self.UserName)
	return &TelegramNotifier{api: api, chatID: cfg.ChatID}
}

func (t *TelegramNotifier) Notify(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
