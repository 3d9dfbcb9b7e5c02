// Package notify announces platform events to a Telegram chat so that
// operators see new donations and comments without watching the dashboard.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/sumarplus/backend/internal/models"
)

// TelegramNotifier sends formatted announcements to a fixed chat. Sending is
// decoupled from the request path through a bounded queue: enqueueing never
// blocks, and announcements are dropped (and counted) when the queue is full.
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	logger  *logrus.Logger
	queue   chan string
	dropped atomic.Int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64, logger *logrus.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Telegram notifier authorized on account %s", api.Self.UserName)

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
		queue:  make(chan string, 64),
	}, nil
}

// Start drains the queue until the context is cancelled. It blocks, so it
// should be launched in a separate goroutine.
func (n *TelegramNotifier) Start(ctx context.Context) {
	n.logger.Info("Telegram notifier started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Telegram notifier stopped")
			return
		case text := <-n.queue:
			n.send(text)
		}
	}
}

// Dropped reports how many announcements were discarded because the queue
// was full.
func (n *TelegramNotifier) Dropped() int64 {
	return n.dropped.Load()
}

// DonationReceived announces a new donation.
func (n *TelegramNotifier) DonationReceived(campaign *models.Campaign, donation *models.Donation) {
	who := "An anonymous donor"
	if donation.Donor != nil {
		who = donation.Donor.FirstName
	}
	n.enqueue(fmt.Sprintf("\U0001f4b0 *%s* donated %d.%02d %s to *%s*",
		who, donation.Amount/100, donation.Amount%100, campaign.Currency, campaign.Title))
}

// CommentPosted announces a new public comment. Private comments are not
// announced.
func (n *TelegramNotifier) CommentPosted(campaign *models.Campaign, comment *models.Comment) {
	if !comment.IsPublic {
		return
	}
	who := "someone"
	if comment.Author != nil {
		who = comment.Author.FirstName
	}
	n.enqueue(fmt.Sprintf("\U0001f4ac New comment on *%s* by %s", campaign.Title, who))
}

func (n *TelegramNotifier) enqueue(text string) {
	select {
	case n.queue <- text:
	default:
		n.dropped.Inc()
	}
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.api.Send(msg); err != nil {
		n.logger.WithError(err).Error("Failed to send Telegram notification")
	}
}
