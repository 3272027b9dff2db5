package notifier

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate mockery --name BotAPI --filename botapi.go

// BotAPI sends Telegram requests.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender sends HTML formatted messages to single Telegram chat.
type TelegramSender struct {
	bot    BotAPI
	chatID string
}

// NewTelegramSender returns new TelegramSender. ChatID is either numeric chat ID or @channel username.
func NewTelegramSender(bot BotAPI, chatID string) *TelegramSender {
	return &TelegramSender{
		bot:    bot,
		chatID: chatID,
	}
}

// Send sends text message to sender's chat.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.newMessage(text)
	if err != nil {
		return err
	}

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("can't send telegram message: %w", err)
	}

	return nil
}

func (s *TelegramSender) newMessage(text string) (tgbotapi.MessageConfig, error) {
	var msg tgbotapi.MessageConfig

	if strings.HasPrefix(s.chatID, "@") {
		msg = tgbotapi.NewMessageToChannel(s.chatID, text)
	} else {
		chatID, err := strconv.ParseInt(s.chatID, 10, 64)
		if err != nil {
			return msg, fmt.Errorf("can't parse telegram chat ID %q: %w", s.chatID, err)
		}
		msg = tgbotapi.NewMessage(chatID, text)
	}

	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	return msg, nil
}
