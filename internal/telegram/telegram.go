// Package telegram sends a shared list to a Telegram chat through a bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

var ErrNotConfigured = errors.New("telegram: bot token and chat id are required")

type Sender struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New authorizes the bot (getMe) against the public API.
func New(token string, chatID int64) (*Sender, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{})
}

// NewWithEndpoint is New with a custom endpoint format ("<base>/bot%s/%s") and client.
func NewWithEndpoint(token, endpoint string, chatID int64, client *http.Client) (*Sender, error) {
	token = strings.TrimSpace(token)
	if token == "" || chatID == 0 {
		return nil, ErrNotConfigured
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &Sender{api: api, chatID: chatID}, nil
}

// BotName is the authorized bot's username.
func (s *Sender) BotName() string {
	return s.api.Self.UserName
}

// SendList posts the list as a checklist followed by its share link.
func (s *Sender) SendList(ctx context.Context, l model.ShoppingList, link string) error {
	msg := tgbotapi.NewMessage(s.chatID, Message(l, link))
	msg.DisableWebPagePreview = true
	sent, err := s.api.Send(msg)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	pslog.Ctx(ctx).Info("list sent to telegram", "list", l.ID, "chat", s.chatID, "message", sent.MessageID)
	return nil
}

// Message renders the plain-text body sent to the chat.
func Message(l model.ShoppingList, link string) string {
	var b strings.Builder
	b.WriteString(l.Name)
	b.WriteString("\n")
	for _, it := range l.Items {
		mark := "☐"
		if it.Completed {
			mark = "☑"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, it.Text)
	}
	if link = strings.TrimSpace(link); link != "" {
		b.WriteString("\n")
		b.WriteString(link)
	}
	return strings.TrimRight(b.String(), "\n")
}
