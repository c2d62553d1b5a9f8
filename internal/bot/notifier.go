package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/render"
	apperrors "github.com/sofiko-bakery/consultant-bot/internal/errors"
	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
)

// Sender is the slice of the telebot API the notifier needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotNotifier delivers payment reminders as Telegram messages. The sender
// is bound after the bot is constructed, since the reminder scheduler has to
// exist before the bot that ultimately delivers its jobs.
type TelebotNotifier struct {
	mu     sync.RWMutex
	sender Sender
}

// NewTelebotNotifier returns an unbound notifier.
func NewTelebotNotifier() *TelebotNotifier {
	return &TelebotNotifier{}
}

// Bind attaches the telebot sender used for delivery.
func (n *TelebotNotifier) Bind(sender Sender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sender = sender
}

// Notify sends the reminder text to the user the job belongs to.
func (n *TelebotNotifier) Notify(_ context.Context, job reminder.Job) error {
	n.mu.RLock()
	sender := n.sender
	n.mu.RUnlock()

	if sender == nil {
		return errors.New("telegram sender is not bound")
	}

	recipient := &telebot.User{ID: job.UserID}

	if _, err := sender.Send(recipient, render.ReminderMessage(job), telebot.ModeMarkdown); err != nil {
		return apperrors.NewDeliveryError(fmt.Errorf("send reminder to user %d: %w", job.UserID, err))
	}

	return nil
}
